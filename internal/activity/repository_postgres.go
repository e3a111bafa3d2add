package activity

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertActivityQuery = `
		INSERT INTO user_activity (id, user_id, command_text, intent, product_id, product_name, category, quantity, confidence, success, ts)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	listActivityQuery = `
		SELECT id, user_id, command_text, intent, product_id, product_name, category, quantity, confidence, success, ts
		FROM user_activity
		WHERE user_id = $1
		ORDER BY ts DESC
		LIMIT $2
	`
	purchaseHistoryQuery = `
		SELECT product_id, product_name, category, ts
		FROM user_activity
		WHERE user_id = $1 AND intent = 'add_to_cart' AND product_id <> ''
		ORDER BY ts DESC
		LIMIT $2
	`
	deleteActivityQuery = `DELETE FROM user_activity WHERE user_id = $1`
	insertFeedbackQuery = `
		INSERT INTO feedback (id, user_id, command_text, was_correct, actual_product, ts)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, insertActivityQuery,
		rec.ID,
		rec.UserID,
		rec.CommandText,
		rec.Intent,
		rec.ProductID,
		rec.ProductName,
		rec.Category,
		rec.Quantity,
		rec.Confidence,
		rec.Success,
		rec.Timestamp,
	)
	return err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, listActivityQuery, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var rec Record
		var productID, productName, category sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.CommandText,
			&rec.Intent,
			&productID,
			&productName,
			&category,
			&rec.Quantity,
			&rec.Confidence,
			&rec.Success,
			&rec.Timestamp,
		); err != nil {
			continue
		}
		rec.ProductID = productID.String
		rec.ProductName = productName.String
		rec.Category = category.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) PurchaseHistory(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, purchaseHistoryQuery, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		var entry HistoryEntry
		var productName, category sql.NullString
		if err := rows.Scan(&entry.ProductID, &productName, &category, &entry.Timestamp); err != nil {
			continue
		}
		entry.ProductName = productName.String
		entry.Category = category.String
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, deleteActivityQuery, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SaveFeedback(ctx context.Context, fb Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.Timestamp.IsZero() {
		fb.Timestamp = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, insertFeedbackQuery,
		fb.ID,
		fb.UserID,
		fb.CommandText,
		fb.WasCorrect,
		fb.ActualProduct,
		fb.Timestamp,
	)
	return err
}
