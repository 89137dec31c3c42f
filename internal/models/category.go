package models

import "time"

// Entry types shared by categories and transactions.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ValidType reports whether t is one of the known entry types.
// Callers are expected to lowercase t first.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Category groups transactions for a single owner.
// (UserID, Name) is unique, enforced by the storage layer.
type Category struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // income | expense
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
