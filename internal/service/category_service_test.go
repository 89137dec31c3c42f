package service

import (
	"context"
	"testing"

	"finance_tracker/internal/models"
	"finance_tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCategoryRepo is an in-test mock for repository.Categories.
type mockCategoryRepo struct {
	ListByOwnerFn func(ownerID int) ([]models.Category, error)
	CreateFn      func(c models.Category) error
	GetByIDFn     func(ownerID int, id string) (*models.Category, error)
	UpdateFn      func(c models.Category) error
	DeleteFn      func(ownerID int, id string) error
}

func (m *mockCategoryRepo) ListByOwner(_ context.Context, ownerID int) ([]models.Category, error) {
	return m.ListByOwnerFn(ownerID)
}
func (m *mockCategoryRepo) Create(_ context.Context, c models.Category) error { return m.CreateFn(c) }
func (m *mockCategoryRepo) GetByID(_ context.Context, ownerID int, id string) (*models.Category, error) {
	return m.GetByIDFn(ownerID, id)
}
func (m *mockCategoryRepo) Update(_ context.Context, c models.Category) error { return m.UpdateFn(c) }
func (m *mockCategoryRepo) Delete(_ context.Context, ownerID int, id string) error {
	return m.DeleteFn(ownerID, id)
}

func TestCategoryService_Create(t *testing.T) {
	var stored models.Category
	mock := &mockCategoryRepo{
		CreateFn: func(c models.Category) error {
			stored = c
			return nil
		},
	}
	svc := NewCategoryService(mock)

	got, err := svc.Create(context.Background(), 7, CategoryInput{
		Name: "  Groceries ",
		Type: "Expense",
		Icon: "cart",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID, "storage id should be assigned")
	assert.Equal(t, 7, got.UserID)
	assert.Equal(t, "Groceries", got.Name, "name should be trimmed")
	assert.Equal(t, models.TypeExpense, got.Type, "type should be normalized")
	assert.Equal(t, defaultCategoryColor, got.Color, "blank color falls back to default")
	assert.Equal(t, *got, stored)
}

func TestCategoryService_Create_Validation(t *testing.T) {
	cases := []struct {
		name  string
		in    CategoryInput
		field string
	}{
		{name: "blank name", in: CategoryInput{Name: "   ", Type: "income"}, field: "name"},
		{name: "missing type", in: CategoryInput{Name: "Salary"}, field: "type"},
		{name: "bad type", in: CategoryInput{Name: "Salary", Type: "transfer"}, field: "type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewCategoryService(&mockCategoryRepo{
				CreateFn: func(c models.Category) error {
					t.Fatal("Create should not reach the repository")
					return nil
				},
			})
			_, err := svc.Create(context.Background(), 7, tc.in)
			require.True(t, IsValidation(err), "expected validation error, got %v", err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{
		CreateFn: func(c models.Category) error { return repository.ErrDuplicateCategory },
	})

	_, err := svc.Create(context.Background(), 7, CategoryInput{Name: "Groceries", Type: "expense"})
	assert.ErrorIs(t, err, repository.ErrDuplicateCategory)
}

func TestCategoryService_Update_MergesOnlyProvidedFields(t *testing.T) {
	existing := models.Category{
		ID: "cat-1", UserID: 7, Name: "Groceries", Type: models.TypeExpense,
		Icon: "cart", Color: "#ff0000",
	}
	var stored models.Category
	mock := &mockCategoryRepo{
		GetByIDFn: func(ownerID int, id string) (*models.Category, error) {
			assert.Equal(t, 7, ownerID)
			assert.Equal(t, "cat-1", id)
			c := existing
			return &c, nil
		},
		UpdateFn: func(c models.Category) error {
			stored = c
			return nil
		},
	}
	svc := NewCategoryService(mock)

	newName := "Food"
	got, err := svc.Update(context.Background(), 7, "cat-1", CategoryUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)
	assert.Equal(t, models.TypeExpense, got.Type, "type untouched")
	assert.Equal(t, "cart", got.Icon, "icon untouched")
	assert.Equal(t, "#ff0000", got.Color, "color untouched")
	assert.Equal(t, *got, stored)
}

func TestCategoryService_Update_RejectsBlankRename(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{
		GetByIDFn: func(ownerID int, id string) (*models.Category, error) {
			return &models.Category{ID: id, UserID: ownerID, Name: "Groceries", Type: models.TypeExpense}, nil
		},
		UpdateFn: func(c models.Category) error {
			t.Fatal("Update should not reach the repository")
			return nil
		},
	})

	blank := "  "
	_, err := svc.Update(context.Background(), 7, "cat-1", CategoryUpdate{Name: &blank})
	assert.True(t, IsValidation(err), "expected validation error, got %v", err)
}

func TestCategoryService_Update_NotFound(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{
		GetByIDFn: func(ownerID int, id string) (*models.Category, error) {
			return nil, repository.ErrNotFound
		},
	})

	name := "Food"
	_, err := svc.Update(context.Background(), 7, "missing", CategoryUpdate{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCategoryService_Delete_ReturnsRemovedRecord(t *testing.T) {
	existing := models.Category{ID: "cat-1", UserID: 7, Name: "Groceries", Type: models.TypeExpense}
	deleted := false
	svc := NewCategoryService(&mockCategoryRepo{
		GetByIDFn: func(ownerID int, id string) (*models.Category, error) {
			c := existing
			return &c, nil
		},
		DeleteFn: func(ownerID int, id string) error {
			deleted = true
			return nil
		},
	})

	got, err := svc.Delete(context.Background(), 7, "cat-1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, existing, *got)
}
