package service

import (
	"context"
	"time"

	"finance_tracker/internal/mailer"
	"finance_tracker/internal/models"
	"finance_tracker/internal/repository"
)

// Authorization handles registration, login, token verification and the
// password-reset flow. Register and Login return a session token plus the
// public user fields.
type Authorization interface {
	Register(ctx context.Context, username, email, password string) (string, models.PublicUser, error)
	Login(ctx context.Context, email, password string) (string, models.PublicUser, error)
	ParseToken(accessToken string) (int, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// Categories is the owner-scoped category ledger.
type Categories interface {
	List(ctx context.Context, ownerID int) ([]models.Category, error)
	Create(ctx context.Context, ownerID int, in CategoryInput) (*models.Category, error)
	Get(ctx context.Context, ownerID int, id string) (*models.Category, error)
	Update(ctx context.Context, ownerID int, id string, in CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, ownerID int, id string) (*models.Category, error)
}

// Transactions is the owner-scoped transaction ledger.
type Transactions interface {
	List(ctx context.Context, ownerID int) ([]models.Transaction, error)
	Create(ctx context.Context, ownerID int, in TransactionInput) (*models.Transaction, error)
	Get(ctx context.Context, ownerID int, id string) (*models.Transaction, error)
	Update(ctx context.Context, ownerID int, id string, in TransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, ownerID int, id string) (*models.Transaction, error)
}

// Dashboard derives summary and month-bucketed views from the owner's full
// transaction set. Nothing is persisted; every call recomputes from scratch.
type Dashboard interface {
	Summary(ctx context.Context, ownerID int) (Summary, error)
	Monthly(ctx context.Context, ownerID int) ([]MonthBucket, error)
	Page(ctx context.Context, ownerID int, q PageQuery) (TransactionPage, error)
}

// AuthConfig carries the token issuer settings from the config layer.
type AuthConfig struct {
	SigningKey    string
	TokenTTL      time.Duration
	ClientBaseURL string // base for password-reset links
}

type Service struct {
	Authorization
	Categories
	Transactions
	Dashboard
}

// NewService wires the repository layer and the mail sink into concrete services.
func NewService(repos *repository.Repository, mail mailer.Mailer, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, mail, auth),
		Categories:    NewCategoryService(repos.Categories),
		Transactions:  NewTransactionService(repos.Transactions),
		Dashboard:     NewDashboardService(repos.Transactions),
	}
}
