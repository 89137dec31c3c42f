package service

import (
	"errors"
	"time"
)

// CategoryInput is the field set for creating a category.
type CategoryInput struct {
	Name  string
	Type  string
	Icon  string
	Color string
}

// CategoryUpdate carries optional field changes; nil means "keep as is".
type CategoryUpdate struct {
	Name  *string
	Type  *string
	Icon  *string
	Color *string
}

// TransactionInput is the full field set for creating or replacing a
// transaction. All fields except Description are required.
type TransactionInput struct {
	Amount      float64
	Type        string
	CategoryID  string
	Date        time.Time
	Description string
}

// Sort orders accepted by the dashboard transaction page.
const (
	SortByDate   = "date"   // date descending
	SortByAmount = "amount" // amount descending
)

// PageQuery restricts and orders the dashboard transaction page.
// MonthKey ("YYYY-MM") limits the working set to one bucket; empty means all.
type PageQuery struct {
	MonthKey string
	SortBy   string
	Page     int // 1-based
}

// Domain errors shared across services.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidToken          = errors.New("invalid token")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrMailDelivery          = errors.New("could not send reset email")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
