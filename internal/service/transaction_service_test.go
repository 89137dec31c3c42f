package service

import (
	"context"
	"testing"
	"time"

	"finance_tracker/internal/models"
	"finance_tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTransactionRepo is an in-test mock for repository.Transactions.
type mockTransactionRepo struct {
	ListByOwnerFn func(ownerID int) ([]models.Transaction, error)
	CreateFn      func(t models.Transaction) error
	GetByIDFn     func(ownerID int, id string) (*models.Transaction, error)
	UpdateFn      func(t models.Transaction) error
	DeleteFn      func(ownerID int, id string) error
}

func (m *mockTransactionRepo) ListByOwner(_ context.Context, ownerID int) ([]models.Transaction, error) {
	return m.ListByOwnerFn(ownerID)
}
func (m *mockTransactionRepo) Create(_ context.Context, t models.Transaction) error {
	return m.CreateFn(t)
}
func (m *mockTransactionRepo) GetByID(_ context.Context, ownerID int, id string) (*models.Transaction, error) {
	return m.GetByIDFn(ownerID, id)
}
func (m *mockTransactionRepo) Update(_ context.Context, t models.Transaction) error {
	return m.UpdateFn(t)
}
func (m *mockTransactionRepo) Delete(_ context.Context, ownerID int, id string) error {
	return m.DeleteFn(ownerID, id)
}

func validTransactionInput() TransactionInput {
	return TransactionInput{
		Amount:      49.90,
		Type:        "expense",
		CategoryID:  "cat-1",
		Date:        time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		Description: "weekly shop",
	}
}

func TestTransactionService_Create(t *testing.T) {
	var stored models.Transaction
	mock := &mockTransactionRepo{
		CreateFn: func(tr models.Transaction) error {
			stored = tr
			return nil
		},
	}
	svc := NewTransactionService(mock)

	in := validTransactionInput()
	in.Type = "EXPENSE"
	got, err := svc.Create(context.Background(), 7, in)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, 7, got.UserID)
	assert.Equal(t, models.TypeExpense, got.Type, "type should be normalized")
	assert.Equal(t, "cat-1", got.CategoryID)
	assert.Equal(t, 49.90, got.Amount)
	assert.Equal(t, *got, stored)
}

func TestTransactionService_Create_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TransactionInput)
		field  string
	}{
		{name: "zero amount", mutate: func(in *TransactionInput) { in.Amount = 0 }, field: "amount"},
		{name: "negative amount", mutate: func(in *TransactionInput) { in.Amount = -5 }, field: "amount"},
		{name: "bad type", mutate: func(in *TransactionInput) { in.Type = "transfer" }, field: "type"},
		{name: "missing category", mutate: func(in *TransactionInput) { in.CategoryID = "" }, field: "categoryId"},
		{name: "missing date", mutate: func(in *TransactionInput) { in.Date = time.Time{} }, field: "date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTransactionService(&mockTransactionRepo{
				CreateFn: func(tr models.Transaction) error {
					t.Fatal("Create should not reach the repository")
					return nil
				},
			})

			in := validTransactionInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), 7, in)
			require.True(t, IsValidation(err), "expected validation error, got %v", err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestTransactionService_Update_ReplacesFieldSet(t *testing.T) {
	existing := models.Transaction{
		ID: "tx-1", UserID: 7, CategoryID: "cat-1", Type: models.TypeExpense,
		Amount: 10, Description: "old", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	var stored models.Transaction
	svc := NewTransactionService(&mockTransactionRepo{
		GetByIDFn: func(ownerID int, id string) (*models.Transaction, error) {
			tr := existing
			return &tr, nil
		},
		UpdateFn: func(tr models.Transaction) error {
			stored = tr
			return nil
		},
	})

	in := TransactionInput{
		Amount:      250,
		Type:        "income",
		CategoryID:  "cat-2",
		Date:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Description: "refund",
	}
	got, err := svc.Update(context.Background(), 7, "tx-1", in)
	require.NoError(t, err)
	assert.Equal(t, "tx-1", got.ID, "identity is preserved")
	assert.Equal(t, 7, got.UserID)
	assert.Equal(t, models.TypeIncome, got.Type)
	assert.Equal(t, "cat-2", got.CategoryID)
	assert.Equal(t, 250.0, got.Amount)
	assert.Equal(t, "refund", got.Description)
	assert.Equal(t, *got, stored)
}

func TestTransactionService_Update_NotFound(t *testing.T) {
	svc := NewTransactionService(&mockTransactionRepo{
		GetByIDFn: func(ownerID int, id string) (*models.Transaction, error) {
			return nil, repository.ErrNotFound
		},
	})

	_, err := svc.Update(context.Background(), 7, "missing", validTransactionInput())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTransactionService_Delete_ReturnsRemovedRecord(t *testing.T) {
	existing := models.Transaction{ID: "tx-1", UserID: 7, Type: models.TypeExpense, Amount: 10}
	svc := NewTransactionService(&mockTransactionRepo{
		GetByIDFn: func(ownerID int, id string) (*models.Transaction, error) {
			tr := existing
			return &tr, nil
		},
		DeleteFn: func(ownerID int, id string) error { return nil },
	})

	got, err := svc.Delete(context.Background(), 7, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, existing, *got)
}

func TestTransactionService_Delete_NotFound(t *testing.T) {
	svc := NewTransactionService(&mockTransactionRepo{
		GetByIDFn: func(ownerID int, id string) (*models.Transaction, error) {
			return nil, repository.ErrNotFound
		},
	})

	_, err := svc.Delete(context.Background(), 7, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
