package activity

import "time"

// Record is one interpreted voice command, persisted by the HTTP layer
// after every /voice/parse call. The interpreter itself never writes these.
type Record struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CommandText string    `json:"command_text"`
	Intent      string    `json:"intent"`
	ProductID   string    `json:"product_id,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	Category    string    `json:"category,omitempty"`
	Quantity    int       `json:"quantity"`
	Confidence  float64   `json:"confidence"`
	Success     bool      `json:"success"`
	Timestamp   time.Time `json:"timestamp"`
}

// HistoryEntry is the slimmed purchase-history row handed to the
// personalization recommender.
type HistoryEntry struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
}

// Feedback captures a user's verdict on a voice interpretation.
type Feedback struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CommandText   string    `json:"command_text"`
	WasCorrect    bool      `json:"was_correct"`
	ActualProduct string    `json:"actual_product,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// SuccessConfidence is the confidence threshold above which a command
// counts as successful in history statistics.
const SuccessConfidence = 0.7
