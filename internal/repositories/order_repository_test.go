package repositories

import (
	"context"
	"testing"

	"dealership/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOrderGetByIDLoadsHeaderAndLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM orders").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "customer_name", "customer_email", "created_at", "status"}).
			AddRow(7, "INV-2024-0007", "A. Perera", "a@example.com", "2024-03-10", "paid"))
	mock.ExpectQuery("FROM order_lines").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"car_id", "description", "quantity", "unit_price_cents"}).
			AddRow(1, "Toyota Vitz RS 2018", 1, 1250000).
			AddRow(0, "Delivery prep", 2, 7500))

	repo := OrderRepository{DB: db}
	order, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if order.Number != "INV-2024-0007" || order.CustomerName != "A. Perera" {
		t.Fatalf("header mismatch: %+v", order)
	}
	if len(order.Lines) != 2 || order.Lines[1].Quantity != 2 {
		t.Fatalf("lines mismatch: %+v", order.Lines)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOrderGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM orders").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "customer_name", "customer_email", "created_at", "status"}))

	repo := OrderRepository{DB: db}
	_, err = repo.GetByID(context.Background(), 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestStockGetByIDLoadsBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM stock_batches").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "supplier_name", "received_at"}).
			AddRow(3, "SB-2024-0003", "Lanka Auto Imports", "2024-02-28"))
	mock.ExpectQuery("FROM stock_batch_lines").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"car_id", "description", "quantity", "unit_price_cents"}).
			AddRow(5, "Honda Fit 2020", 3, 1700000))

	repo := StockRepository{DB: db}
	batch, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if batch.SupplierName != "Lanka Auto Imports" || len(batch.Lines) != 1 {
		t.Fatalf("batch mismatch: %+v", batch)
	}
}

func TestStockGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM stock_batches").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "supplier_name", "received_at"}))

	repo := StockRepository{DB: db}
	_, err = repo.GetByID(context.Background(), 42)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
