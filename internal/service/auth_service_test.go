package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finance_tracker/internal/models"
	"finance_tracker/internal/repository"
)

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn          func(username, email, hash string) (int, error)
	GetByEmailFn      func(email string) (*models.User, error)
	GetByIDFn         func(id int) (*models.User, error)
	SetResetTicketFn  func(userID int, tokenHash string, expiresAt time.Time) error
	FindByResetFn     func(tokenHash string, now time.Time) (*models.User, error)
	UpdatePasswordFn  func(userID int, hash string) error
	clearTicketCalls  []int
	setTicketHashes   []string
	updatePasswordFor []int
}

func (m *mockUserRepo) Create(_ context.Context, username, email, hash string) (int, error) {
	return m.CreateFn(username, email, hash)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return m.GetByEmailFn(email)
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	return m.GetByIDFn(id)
}

func (m *mockUserRepo) SetResetTicket(_ context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	m.setTicketHashes = append(m.setTicketHashes, tokenHash)
	return m.SetResetTicketFn(userID, tokenHash, expiresAt)
}

func (m *mockUserRepo) ClearResetTicket(_ context.Context, userID int) error {
	m.clearTicketCalls = append(m.clearTicketCalls, userID)
	return nil
}

func (m *mockUserRepo) FindByResetTicket(_ context.Context, tokenHash string, now time.Time) (*models.User, error) {
	return m.FindByResetFn(tokenHash, now)
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, userID int, hash string) error {
	m.updatePasswordFor = append(m.updatePasswordFor, userID)
	return m.UpdatePasswordFn(userID, hash)
}

// mockMailer records sends and can be told to fail.
type mockMailer struct {
	sendErr  error
	lastTo   string
	lastURL  string
	numSends int
}

func (m *mockMailer) SendPasswordReset(_ context.Context, to, resetURL string) error {
	m.numSends++
	m.lastTo = to
	m.lastURL = resetURL
	return m.sendErr
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		SigningKey:    "test-key",
		TokenTTL:      time.Hour,
		ClientBaseURL: "http://localhost:3000",
	}
}

// --- Register tests ---

func TestAuthService_Register_HashesPasswordAndIssuesToken(t *testing.T) {
	var storedHash string
	mock := &mockUserRepo{
		CreateFn: func(username, email, hash string) (int, error) {
			if username != "alice" || email != "alice@example.com" {
				t.Fatalf("unexpected create args: %q %q", username, email)
			}
			storedHash = hash
			return 42, nil
		},
	}
	svc := NewAuthService(mock, &mockMailer{}, testAuthConfig())

	token, user, err := svc.Register(context.Background(), "alice", "Alice@Example.com", "s3cr3t")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != 42 || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if storedHash == "s3cr3t" {
		t.Error("password stored without hashing")
	}
	if err := verifyPassword(storedHash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected user id 42 in token, got %d", id)
	}
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, email, hash string) (int, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc := NewAuthService(mock, &mockMailer{}, testAuthConfig())

	_, _, err := svc.Register(context.Background(), "bob", "bob@example.com", "   ")
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmailPassesThrough(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, email, hash string) (int, error) {
			return 0, repository.ErrDuplicateEmail
		},
	}
	svc := NewAuthService(mock, &mockMailer{}, testAuthConfig())

	_, _, err := svc.Register(context.Background(), "bob", "taken@example.com", "pass123")
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

// --- Login tests ---

func TestAuthService_Login(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	known := &models.User{ID: 7, Username: "diana", Email: "diana@example.com", PasswordHash: hash}

	cases := []struct {
		name     string
		email    string
		password string
		user     *models.User
		wantErr  error
	}{
		{name: "success", email: "diana@example.com", password: "letmein", user: known},
		{name: "wrong password", email: "diana@example.com", password: "nope", user: known, wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "ghost@example.com", password: "letmein", user: nil, wantErr: ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockUserRepo{
				GetByEmailFn: func(email string) (*models.User, error) { return tc.user, nil },
			}
			svc := NewAuthService(mock, &mockMailer{}, testAuthConfig())

			token, user, err := svc.Login(context.Background(), tc.email, tc.password)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID != 7 {
				t.Fatalf("unexpected user: %+v", user)
			}
			if id, err := svc.ParseToken(token); err != nil || id != 7 {
				t.Fatalf("token round trip failed: id=%d err=%v", id, err)
			}
		})
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenTTL = -time.Minute // already expired at issue time
	svc := NewAuthService(&mockUserRepo{}, &mockMailer{}, AuthConfig{
		SigningKey: cfg.SigningKey, ClientBaseURL: cfg.ClientBaseURL,
	})
	expiredSvc := &AuthService{users: &mockUserRepo{}, mail: &mockMailer{}, cfg: cfg}

	token, err := expiredSvc.issueToken(7)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

// --- Password-reset tests ---

func TestAuthService_RequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) { return nil, nil },
	}
	mail := &mockMailer{}
	svc := NewAuthService(mock, mail, testAuthConfig())

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mail.numSends != 0 {
		t.Fatalf("expected no mail, got %d sends", mail.numSends)
	}
	if len(mock.setTicketHashes) != 0 {
		t.Fatalf("expected no ticket stored, got %d", len(mock.setTicketHashes))
	}
}

func TestAuthService_RequestPasswordReset_StoresHashAndMailsPlaintext(t *testing.T) {
	user := &models.User{ID: 7, Email: "diana@example.com"}
	mock := &mockUserRepo{
		GetByEmailFn:     func(email string) (*models.User, error) { return user, nil },
		SetResetTicketFn: func(userID int, tokenHash string, expiresAt time.Time) error { return nil },
	}
	mail := &mockMailer{}
	svc := NewAuthService(mock, mail, testAuthConfig())

	if err := svc.RequestPasswordReset(context.Background(), "diana@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mail.numSends != 1 || mail.lastTo != "diana@example.com" {
		t.Fatalf("expected one mail to diana, got %+v", mail)
	}

	// the URL carries the plaintext token; the repo got only its hash
	idx := strings.LastIndex(mail.lastURL, "/")
	if idx < 0 {
		t.Fatalf("no token in reset URL %q", mail.lastURL)
	}
	plaintext := mail.lastURL[idx+1:]
	if len(mock.setTicketHashes) != 1 {
		t.Fatalf("expected one stored ticket, got %d", len(mock.setTicketHashes))
	}
	if mock.setTicketHashes[0] == plaintext {
		t.Fatal("plaintext token stored instead of its hash")
	}
	if mock.setTicketHashes[0] != hashResetToken(plaintext) {
		t.Fatal("stored hash does not match hash of mailed token")
	}
}

func TestAuthService_RequestPasswordReset_MailFailureRollsBackTicket(t *testing.T) {
	user := &models.User{ID: 7, Email: "diana@example.com"}
	mock := &mockUserRepo{
		GetByEmailFn:     func(email string) (*models.User, error) { return user, nil },
		SetResetTicketFn: func(userID int, tokenHash string, expiresAt time.Time) error { return nil },
	}
	mail := &mockMailer{sendErr: errors.New("smtp down")}
	svc := NewAuthService(mock, mail, testAuthConfig())

	err := svc.RequestPasswordReset(context.Background(), "diana@example.com")
	if !errors.Is(err, ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
	if len(mock.clearTicketCalls) != 1 || mock.clearTicketCalls[0] != 7 {
		t.Fatalf("expected ticket rollback for user 7, got %v", mock.clearTicketCalls)
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("valid token replaces password", func(t *testing.T) {
		user := &models.User{ID: 7, Email: "diana@example.com"}
		var gotHash string
		mock := &mockUserRepo{
			FindByResetFn: func(tokenHash string, now time.Time) (*models.User, error) {
				if tokenHash != hashResetToken("the-token") {
					t.Fatalf("lookup used %q, not the token hash", tokenHash)
				}
				return user, nil
			},
			UpdatePasswordFn: func(userID int, hash string) error {
				gotHash = hash
				return nil
			},
		}
		svc := NewAuthService(mock, &mockMailer{}, testAuthConfig())

		if err := svc.ResetPassword(context.Background(), "the-token", "newpass"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(mock.updatePasswordFor) != 1 || mock.updatePasswordFor[0] != 7 {
			t.Fatalf("expected password update for user 7, got %v", mock.updatePasswordFor)
		}
		if err := verifyPassword(gotHash, "newpass"); err != nil {
			t.Errorf("new hash does not verify: %v", err)
		}
	})

	t.Run("unknown or expired token", func(t *testing.T) {
		mock := &mockUserRepo{
			FindByResetFn: func(tokenHash string, now time.Time) (*models.User, error) { return nil, nil },
		}
		svc := NewAuthService(mock, &mockMailer{}, testAuthConfig())

		err := svc.ResetPassword(context.Background(), "bogus", "newpass")
		if !errors.Is(err, ErrInvalidOrExpiredToken) {
			t.Fatalf("expected ErrInvalidOrExpiredToken, got %v", err)
		}
	})

	t.Run("empty new password", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepo{}, &mockMailer{}, testAuthConfig())

		err := svc.ResetPassword(context.Background(), "the-token", " ")
		if !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
