package service

import (
	"context"
	"time"

	"finance_tracker/internal/models"
	"finance_tracker/internal/repository"

	"github.com/google/uuid"
)

type TransactionService struct {
	transactions repository.Transactions
}

func NewTransactionService(transactions repository.Transactions) *TransactionService {
	return &TransactionService{transactions: transactions}
}

var _ Transactions = (*TransactionService)(nil)

// List returns the owner's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, ownerID int) ([]models.Transaction, error) {
	return s.transactions.ListByOwner(ctx, ownerID)
}

// Create validates and persists a new transaction. The category reference is
// not checked for existence; readers tolerate orphans.
func (s *TransactionService) Create(ctx context.Context, ownerID int, in TransactionInput) (*models.Transaction, error) {
	typ, err := validateTransactionInput(&in)
	if err != nil {
		return nil, err
	}

	t := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		CategoryID:  in.CategoryID,
		Type:        typ,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.transactions.Create(ctx, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Get returns an owned transaction or repository.ErrNotFound.
func (s *TransactionService) Get(ctx context.Context, ownerID int, id string) (*models.Transaction, error) {
	return s.transactions.GetByID(ctx, ownerID, id)
}

// Update replaces the full field set of an owned transaction; the same fields
// are required as on create.
func (s *TransactionService) Update(ctx context.Context, ownerID int, id string, in TransactionInput) (*models.Transaction, error) {
	typ, err := validateTransactionInput(&in)
	if err != nil {
		return nil, err
	}

	t, err := s.transactions.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	t.CategoryID = in.CategoryID
	t.Type = typ
	t.Amount = in.Amount
	t.Description = in.Description
	t.Date = in.Date.UTC()

	if err := s.transactions.Update(ctx, *t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes an owned transaction and returns the removed record.
func (s *TransactionService) Delete(ctx context.Context, ownerID int, id string) (*models.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.transactions.Delete(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return t, nil
}

// validateTransactionInput enforces the required field set and returns the
// normalized type.
func validateTransactionInput(in *TransactionInput) (string, error) {
	if in.Amount <= 0 {
		return "", &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	typ, err := normalizeType(in.Type)
	if err != nil {
		return "", err
	}
	if in.CategoryID == "" {
		return "", &ValidationError{Field: "categoryId", Reason: "is required"}
	}
	if in.Date.IsZero() {
		return "", &ValidationError{Field: "date", Reason: "is required"}
	}
	return typ, nil
}
