package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "dealership/internal/config"
	"dealership/internal/domain"
	"dealership/internal/domain/models"
)

// StockRepository loads inbound stock batches for stock invoices.
type StockRepository struct {
	DB *sql.DB
}

func (r StockRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StockRepository) GetByID(ctx context.Context, id int64) (models.StockBatch, error) {
	db := r.db()
	if db == nil {
		return models.StockBatch{}, sql.ErrConnDone
	}

	var b models.StockBatch
	err := db.QueryRowContext(ctx, `
		SELECT id, number, supplier_name, DATE(received_at)
		FROM stock_batches
		WHERE id=?`, id).Scan(&b.ID, &b.Number, &b.SupplierName, &b.ReceivedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StockBatch{}, domain.NotFoundError{Resource: "stock batch", Err: err}
		}
		return models.StockBatch{}, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT car_id, description, quantity, unit_price_cents
		FROM stock_batch_lines
		WHERE batch_id=?
		ORDER BY id ASC`, id)
	if err != nil {
		return models.StockBatch{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.CarID, &l.Description, &l.Quantity, &l.UnitPriceCents); err != nil {
			return models.StockBatch{}, err
		}
		b.Lines = append(b.Lines, l)
	}
	return b, rows.Err()
}
