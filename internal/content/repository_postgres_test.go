package content

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "image_url", "link", "alt", "position", "created_at"}).
		AddRow(1, "/banner/a.jpg", "/products?category=Jar%20Candles", nil, 0, "2026-03-01T00:00:00Z").
		AddRow(2, "/banner/b.jpg", nil, "Gift sets", 1, nil)
	mock.ExpectQuery("FROM banners").WithArgs(10).WillReturnRows(rows)

	items, err := repo.List(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[1].Alt != "Gift sets" || items[1].Link != "" {
		t.Fatalf("unexpected banners: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestServiceList_DegradesOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM banners").WillReturnError(errors.New(`relation "banners" does not exist`))

	svc := NewService(NewPostgresRepository(db), slog.New(slog.NewTextHandler(io.Discard, nil)))
	items := svc.List(0)
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestPostgresDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM banners").WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := NewPostgresRepository(db).Delete(5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
