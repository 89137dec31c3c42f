package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finance_tracker/internal/models"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ Transactions = (*TransactionRepository)(nil)

const (
	insertTransactionSQL = `INSERT INTO transactions (id, user_id, category_id, type, amount, description, date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	listTransactionsSQL = `SELECT id, user_id, category_id, type, amount, description, date, created_at FROM transactions WHERE user_id = ? ORDER BY created_at DESC`

	selectTransactionSQL = `SELECT id, user_id, category_id, type, amount, description, date, created_at FROM transactions WHERE id = ? AND user_id = ?`

	updateTransactionSQL = `UPDATE transactions SET category_id = ?, type = ?, amount = ?, description = ?, date = ? WHERE id = ? AND user_id = ?`

	deleteTransactionSQL = `DELETE FROM transactions WHERE id = ? AND user_id = ?`
)

// ListByOwner returns all transactions owned by ownerID, newest first.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, listTransactionsSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Transaction, 0, 64)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new transaction. The category reference is stored as-is;
// it is not checked against the categories table.
func (r *TransactionRepository) Create(ctx context.Context, t models.Transaction) error {
	_, err := r.db.ExecContext(ctx, insertTransactionSQL,
		t.ID, t.UserID, t.CategoryID, t.Type, t.Amount, t.Description, t.Date.UTC(), t.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID returns the transaction only if it is owned by ownerID.
func (r *TransactionRepository) GetByID(ctx context.Context, ownerID int, id string) (*models.Transaction, error) {
	row := r.db.QueryRowContext(ctx, selectTransactionSQL, id, ownerID)
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select transaction %q: %w", id, err)
	}
	t.Date = t.Date.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

// Update replaces the mutable fields of an owned transaction.
func (r *TransactionRepository) Update(ctx context.Context, t models.Transaction) error {
	res, err := r.db.ExecContext(ctx, updateTransactionSQL,
		t.CategoryID, t.Type, t.Amount, t.Description, t.Date.UTC(), t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("update transaction %q: %w", t.ID, err)
	}
	return requireRowAffected(res)
}

// Delete removes an owned transaction.
func (r *TransactionRepository) Delete(ctx context.Context, ownerID int, id string) error {
	res, err := r.db.ExecContext(ctx, deleteTransactionSQL, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete transaction %q: %w", id, err)
	}
	return requireRowAffected(res)
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var t models.Transaction
	if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt); err != nil {
		return models.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	t.Date = t.Date.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
