package product

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

var productRowColumns = []string{"id", "name", "description", "price", "stock", "category", "is_active", "created_at", "updated_at"}

func TestPostgresList_AttachesVariants(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(productRowColumns).
		AddRow(1, "Sandalwood Jar", "soy", "549.00", 5, "Jar Candles", true, "t", "u").
		AddRow(2, "Rose Pillar", nil, "450.00", 3, "Pillar Candles", true, "t", "u")
	mock.ExpectQuery("FROM products").WithArgs("").WillReturnRows(rows)

	mock.ExpectQuery("FROM product_images").
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "url", "position"}).
			AddRow(1, "/a.jpg", 0).
			AddRow(1, "/b.jpg", 1))
	mock.ExpectQuery("FROM product_colors").
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "hex", "image_url"}).
			AddRow(2, "Blush", "#f4c2c2", nil))

	products, err := repo.List("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if !products[0].Price.Equal(decimal.RequireFromString("549")) {
		t.Fatalf("unexpected price %s", products[0].Price)
	}
	if len(products[0].Images) != 2 || len(products[1].Colors) != 1 {
		t.Fatalf("variants not attached: %+v", products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products").WithArgs(9).WillReturnRows(sqlmock.NewRows(productRowColumns))

	if _, err := repo.GetByID(9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresSetColors_ReplacesInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs(2).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("DELETE FROM product_colors").WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO product_colors").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.SetColors(2, []Color{{Name: "Crimson", Hex: "#dc143c"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").WithArgs(7).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	if err := repo.SetColors(7, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
