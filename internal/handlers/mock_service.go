package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"finance_tracker/internal/models"
	"finance_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Hand-written mocks for handler tests. Each mock exposes func fields so a
// test wires only the calls it expects.

type mockAuth struct {
	RegisterFn             func(username, email, password string) (string, models.PublicUser, error)
	LoginFn                func(email, password string) (string, models.PublicUser, error)
	ParseTokenFn           func(token string) (int, error)
	RequestPasswordResetFn func(email string) error
	ResetPasswordFn        func(token, newPassword string) error
}

func (m *mockAuth) Register(_ context.Context, username, email, password string) (string, models.PublicUser, error) {
	return m.RegisterFn(username, email, password)
}

func (m *mockAuth) Login(_ context.Context, email, password string) (string, models.PublicUser, error) {
	return m.LoginFn(email, password)
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	if m.ParseTokenFn != nil {
		return m.ParseTokenFn(token)
	}
	// default: tokens are numeric user ids, anything else is rejected
	return strconv.Atoi(token)
}

func (m *mockAuth) RequestPasswordReset(_ context.Context, email string) error {
	return m.RequestPasswordResetFn(email)
}

func (m *mockAuth) ResetPassword(_ context.Context, token, newPassword string) error {
	return m.ResetPasswordFn(token, newPassword)
}

type mockCategories struct {
	ListFn   func(ownerID int) ([]models.Category, error)
	CreateFn func(ownerID int, in service.CategoryInput) (*models.Category, error)
	GetFn    func(ownerID int, id string) (*models.Category, error)
	UpdateFn func(ownerID int, id string, in service.CategoryUpdate) (*models.Category, error)
	DeleteFn func(ownerID int, id string) (*models.Category, error)
}

func (m *mockCategories) List(_ context.Context, ownerID int) ([]models.Category, error) {
	return m.ListFn(ownerID)
}

func (m *mockCategories) Create(_ context.Context, ownerID int, in service.CategoryInput) (*models.Category, error) {
	return m.CreateFn(ownerID, in)
}

func (m *mockCategories) Get(_ context.Context, ownerID int, id string) (*models.Category, error) {
	return m.GetFn(ownerID, id)
}

func (m *mockCategories) Update(_ context.Context, ownerID int, id string, in service.CategoryUpdate) (*models.Category, error) {
	return m.UpdateFn(ownerID, id, in)
}

func (m *mockCategories) Delete(_ context.Context, ownerID int, id string) (*models.Category, error) {
	return m.DeleteFn(ownerID, id)
}

type mockTransactions struct {
	ListFn   func(ownerID int) ([]models.Transaction, error)
	CreateFn func(ownerID int, in service.TransactionInput) (*models.Transaction, error)
	GetFn    func(ownerID int, id string) (*models.Transaction, error)
	UpdateFn func(ownerID int, id string, in service.TransactionInput) (*models.Transaction, error)
	DeleteFn func(ownerID int, id string) (*models.Transaction, error)
}

func (m *mockTransactions) List(_ context.Context, ownerID int) ([]models.Transaction, error) {
	return m.ListFn(ownerID)
}

func (m *mockTransactions) Create(_ context.Context, ownerID int, in service.TransactionInput) (*models.Transaction, error) {
	return m.CreateFn(ownerID, in)
}

func (m *mockTransactions) Get(_ context.Context, ownerID int, id string) (*models.Transaction, error) {
	return m.GetFn(ownerID, id)
}

func (m *mockTransactions) Update(_ context.Context, ownerID int, id string, in service.TransactionInput) (*models.Transaction, error) {
	return m.UpdateFn(ownerID, id, in)
}

func (m *mockTransactions) Delete(_ context.Context, ownerID int, id string) (*models.Transaction, error) {
	return m.DeleteFn(ownerID, id)
}

type mockDashboard struct {
	SummaryFn func(ownerID int) (service.Summary, error)
	MonthlyFn func(ownerID int) ([]service.MonthBucket, error)
	PageFn    func(ownerID int, q service.PageQuery) (service.TransactionPage, error)
}

func (m *mockDashboard) Summary(_ context.Context, ownerID int) (service.Summary, error) {
	return m.SummaryFn(ownerID)
}

func (m *mockDashboard) Monthly(_ context.Context, ownerID int) ([]service.MonthBucket, error) {
	return m.MonthlyFn(ownerID)
}

func (m *mockDashboard) Page(_ context.Context, ownerID int, q service.PageQuery) (service.TransactionPage, error) {
	return m.PageFn(ownerID, q)
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	if s.Authorization == nil {
		s.Authorization = &mockAuth{}
	}
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// authHeader sets a bearer token the default mockAuth accepts as that user id.
func authHeader(req *http.Request, userID int) {
	req.Header.Set("Authorization", "Bearer "+strconv.Itoa(userID))
}

func bytesReader(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}
