package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finance_tracker/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`

	selectUserByEmailSQL = `SELECT id, username, email, password_hash, reset_token_hash, reset_expires_at, created_at FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, username, email, password_hash, reset_token_hash, reset_expires_at, created_at FROM users WHERE id = ?`
	selectUserByResetSQL = `SELECT id, username, email, password_hash, reset_token_hash, reset_expires_at, created_at FROM users WHERE reset_token_hash = ? AND reset_expires_at > ?`

	setResetTicketSQL   = `UPDATE users SET reset_token_hash = ?, reset_expires_at = ? WHERE id = ?`
	clearResetTicketSQL = `UPDATE users SET reset_token_hash = NULL, reset_expires_at = NULL WHERE id = ?`
	updatePasswordSQL   = `UPDATE users SET password_hash = ?, reset_token_hash = NULL, reset_expires_at = NULL WHERE id = ?`
)

// Create inserts a new user and returns its ID.
// The UNIQUE index on email is the only duplicate check; a violation is
// reported as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, email, passwordHash, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user %q: %w", email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}
	return int(lastID), nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return u, nil
}

// GetByID fetches a user by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

// SetResetTicket stores the hashed reset token and its expiry on the user row.
func (r *UserRepository) SetResetTicket(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx, setResetTicketSQL, tokenHash, expiresAt.UTC(), userID)
	if err != nil {
		return fmt.Errorf("set reset ticket for user %d: %w", userID, err)
	}
	return requireRowAffected(res)
}

// ClearResetTicket removes any stored reset ticket from the user row.
func (r *UserRepository) ClearResetTicket(ctx context.Context, userID int) error {
	if _, err := r.db.ExecContext(ctx, clearResetTicketSQL, userID); err != nil {
		return fmt.Errorf("clear reset ticket for user %d: %w", userID, err)
	}
	return nil
}

// FindByResetTicket returns the user whose stored ticket hash matches and is
// not yet expired. Returns (nil, nil) when nothing matches.
func (r *UserRepository) FindByResetTicket(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByResetSQL, tokenHash, now.UTC()))
	if err != nil {
		return nil, fmt.Errorf("select user by reset ticket: %w", err)
	}
	return u, nil
}

// UpdatePassword replaces the password hash and clears the reset ticket in one
// statement.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, updatePasswordSQL, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password for user %d: %w", userID, err)
	}
	return requireRowAffected(res)
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		resetHash sql.NullString
		resetExp  sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &resetHash, &resetExp, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if resetHash.Valid {
		u.ResetTokenHash = resetHash.String
	}
	if resetExp.Valid {
		t := resetExp.Time.UTC()
		u.ResetExpiresAt = &t
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// requireRowAffected maps a zero-row update onto ErrNotFound.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
