package activity

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresSaveGeneratesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO user_activity").WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Save(context.Background(), Record{
		UserID:      "alice",
		CommandText: "add two apples",
		Intent:      "add_to_cart",
		ProductID:   "p_apple",
		Quantity:    2,
		Confidence:  1,
		Success:     true,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ts := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "command_text", "intent", "product_id", "product_name", "category", "quantity", "confidence", "success", "ts"}).
		AddRow("r1", "alice", "add two apples", "add_to_cart", "p_apple", "Organic Apple", "produce", 2, 1.0, true, ts).
		AddRow("r2", "alice", "xyzzy", "search_product", nil, nil, nil, 1, 0.0, false, ts)
	mock.ExpectQuery("FROM user_activity").WithArgs("alice", 10).WillReturnRows(rows)

	records, err := repo.ListByUser(context.Background(), "alice", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].ProductID != "" {
		t.Fatalf("expected empty product id for NULL, got %q", records[1].ProductID)
	}
}

func TestPostgresPurchaseHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ts := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"product_id", "product_name", "category", "ts"}).
		AddRow("p_apple", "Organic Apple", "produce", ts)
	mock.ExpectQuery("FROM user_activity").WithArgs("alice", 20).WillReturnRows(rows)

	history, err := repo.PurchaseHistory(context.Background(), "alice", 20)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Category != "produce" {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestPostgresDeleteByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM user_activity").WithArgs("alice").WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteByUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}
}
