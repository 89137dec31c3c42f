package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance_tracker/internal/mailer"
	"finance_tracker/internal/models"
	"finance_tracker/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = time.Hour
	resetTicketTTL  = time.Hour
	resetTokenBytes = 32
)

// AuthService handles user auth logic and the password-reset flow.
type AuthService struct {
	users repository.Users
	mail  mailer.Mailer
	cfg   AuthConfig
}

func NewAuthService(users repository.Users, mail mailer.Mailer, cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, mail: mail, cfg: cfg}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// Register hashes the password, creates the user and issues a session token.
// A taken email surfaces as repository.ErrDuplicateEmail from the storage
// layer's uniqueness constraint.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, models.PublicUser, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" {
		return "", models.PublicUser{}, &ValidationError{Field: "username", Reason: "is required"}
	}
	if email == "" {
		return "", models.PublicUser{}, &ValidationError{Field: "email", Reason: "is required"}
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", models.PublicUser{}, &ValidationError{Field: "password", Reason: err.Error()}
	}

	id, err := s.users.Create(ctx, username, email, hash)
	if err != nil {
		return "", models.PublicUser{}, err
	}

	token, err := s.issueToken(id)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, models.PublicUser{ID: id, Username: username, Email: email}, nil
}

// Login validates credentials and returns a token plus public user fields.
// A missing account and a wrong password both map to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.PublicUser, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return "", models.PublicUser{}, err
	}
	if u == nil {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, u.Public(), nil
}

// ParseToken parses a JWT and returns the caller's user ID.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// RequestPasswordReset starts the forgot-password flow. When the email is
// unknown it returns nil so the handler can answer with the same generic
// message either way. When the mail sink fails, the stored ticket is cleared
// and ErrMailDelivery is surfaced.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return err
	}
	if u == nil {
		return nil // no enumeration signal
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(resetTicketTTL)
	if err := s.users.SetResetTicket(ctx, u.ID, hashResetToken(token), expiresAt); err != nil {
		return err
	}

	resetURL := strings.TrimRight(s.cfg.ClientBaseURL, "/") + "/reset-password/" + token
	if err := s.mail.SendPasswordReset(ctx, u.Email, resetURL); err != nil {
		// Roll the ticket back; a link that was never delivered must not stay live.
		if clearErr := s.users.ClearResetTicket(ctx, u.ID); clearErr != nil {
			return errors.Join(fmt.Errorf("%w: %v", ErrMailDelivery, err), clearErr)
		}
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// ResetPassword consumes a one-time reset token and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return &ValidationError{Field: "password", Reason: err.Error()}
	}

	u, err := s.users.FindByResetTicket(ctx, hashResetToken(token), time.Now().UTC())
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidOrExpiredToken
	}

	// UpdatePassword also clears the ticket, so the token is single-use.
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}

// newResetToken returns a random token; only its hash is persisted.
func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
