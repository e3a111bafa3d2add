package activity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository stores voice command activity and feedback.
type Repository interface {
	Save(ctx context.Context, rec Record) error
	// ListByUser returns up to limit records, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Record, error)
	// PurchaseHistory returns add_to_cart records with a resolved product,
	// newest first, as personalization input.
	PurchaseHistory(ctx context.Context, userID string, limit int) ([]HistoryEntry, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	SaveFeedback(ctx context.Context, fb Feedback) error
}

// InMemoryRepository is used for tests and for running without a database.
type InMemoryRepository struct {
	mu       sync.RWMutex
	records  []Record
	feedback []Feedback
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) PurchaseHistory(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]HistoryEntry, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		rec := r.records[i]
		if rec.UserID != userID || rec.Intent != "add_to_cart" || rec.ProductID == "" {
			continue
		}
		out = append(out, HistoryEntry{
			ProductID:   rec.ProductID,
			ProductName: rec.ProductName,
			Category:    rec.Category,
			Timestamp:   rec.Timestamp,
		})
	}
	return out, nil
}

func (r *InMemoryRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	var deleted int64
	for _, rec := range r.records {
		if rec.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return deleted, nil
}

func (r *InMemoryRepository) SaveFeedback(ctx context.Context, fb Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.Timestamp.IsZero() {
		fb.Timestamp = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback = append(r.feedback, fb)
	return nil
}
