package models

import "time"

// Transaction is a single income or expense entry.
//
// CategoryID is an opaque reference: deleting a category does not cascade, so
// a transaction may point at a category that no longer exists. Readers must
// tolerate that and fall back to an "unknown category" display.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	CategoryID  string    `json:"category_id"`
	Type        string    `json:"type"` // income | expense
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
