package repository

import (
	"context"
	"database/sql"
	"time"

	"finance_tracker/internal/models"
)

// Users persists account identities and reset tickets.
type Users interface {
	Create(ctx context.Context, username, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	SetResetTicket(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error
	ClearResetTicket(ctx context.Context, userID int) error
	// FindByResetTicket returns the user whose stored ticket hash matches and
	// whose expiry is after now. Returns (nil, nil) when no such user exists.
	FindByResetTicket(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	// UpdatePassword replaces the password hash and clears the reset ticket.
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
}

// Categories is the owner-scoped category ledger.
type Categories interface {
	ListByOwner(ctx context.Context, ownerID int) ([]models.Category, error)
	Create(ctx context.Context, c models.Category) error
	GetByID(ctx context.Context, ownerID int, id string) (*models.Category, error)
	Update(ctx context.Context, c models.Category) error
	Delete(ctx context.Context, ownerID int, id string) error
}

// Transactions is the owner-scoped transaction ledger.
type Transactions interface {
	ListByOwner(ctx context.Context, ownerID int) ([]models.Transaction, error)
	Create(ctx context.Context, t models.Transaction) error
	GetByID(ctx context.Context, ownerID int, id string) (*models.Transaction, error)
	Update(ctx context.Context, t models.Transaction) error
	Delete(ctx context.Context, ownerID int, id string) error
}

type Repository struct {
	Users        Users
	Categories   Categories
	Transactions Transactions
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:        NewUserRepository(db),
		Categories:   NewCategoryRepository(db),
		Transactions: NewTransactionRepository(db),
	}
}
