package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "dealership/internal/config"
	"dealership/internal/domain"
	"dealership/internal/domain/models"
)

// OrderRepository loads the order header plus line items an invoice is
// generated from.
type OrderRepository struct {
	DB *sql.DB
}

func (r OrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r OrderRepository) GetByID(ctx context.Context, id int64) (models.Order, error) {
	db := r.db()
	if db == nil {
		return models.Order{}, sql.ErrConnDone
	}

	var o models.Order
	err := db.QueryRowContext(ctx, `
		SELECT id, number, customer_name, COALESCE(customer_email,''), DATE(created_at), status
		FROM orders
		WHERE id=?`, id).Scan(
		&o.ID, &o.Number, &o.CustomerName, &o.CustomerEmail, &o.CreatedAt, &o.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, domain.NotFoundError{Resource: "order", Err: err}
		}
		return models.Order{}, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT car_id, description, quantity, unit_price_cents
		FROM order_lines
		WHERE order_id=?
		ORDER BY id ASC`, id)
	if err != nil {
		return models.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.CarID, &l.Description, &l.Quantity, &l.UnitPriceCents); err != nil {
			return models.Order{}, err
		}
		o.Lines = append(o.Lines, l)
	}
	return o, rows.Err()
}
