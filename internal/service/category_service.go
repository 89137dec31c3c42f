package service

import (
	"context"
	"strings"
	"time"

	"finance_tracker/internal/models"
	"finance_tracker/internal/repository"

	"github.com/google/uuid"
)

const defaultCategoryColor = "#000000"

type CategoryService struct {
	categories repository.Categories
}

func NewCategoryService(categories repository.Categories) *CategoryService {
	return &CategoryService{categories: categories}
}

var _ Categories = (*CategoryService)(nil)

// List returns the owner's categories, newest first.
func (s *CategoryService) List(ctx context.Context, ownerID int) ([]models.Category, error) {
	return s.categories.ListByOwner(ctx, ownerID)
}

// Create validates and persists a new category. The duplicate-name decision is
// left to the storage constraint, not a pre-check.
func (s *CategoryService) Create(ctx context.Context, ownerID int, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	typ, err := normalizeType(in.Type)
	if err != nil {
		return nil, err
	}

	color := in.Color
	if color == "" {
		color = defaultCategoryColor
	}

	c := models.Category{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Name:      name,
		Type:      typ,
		Icon:      in.Icon,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Get returns an owned category or repository.ErrNotFound.
func (s *CategoryService) Get(ctx context.Context, ownerID int, id string) (*models.Category, error) {
	return s.categories.GetByID(ctx, ownerID, id)
}

// Update applies the provided field changes onto the owned category and
// re-validates the result. A rename colliding with another category of the
// same owner surfaces as repository.ErrDuplicateCategory from the constraint.
func (s *CategoryService) Update(ctx context.Context, ownerID int, id string, in CategoryUpdate) (*models.Category, error) {
	c, err := s.categories.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		c.Name = name
	}
	if in.Type != nil {
		typ, err := normalizeType(*in.Type)
		if err != nil {
			return nil, err
		}
		c.Type = typ
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	if in.Color != nil {
		c.Color = *in.Color
	}

	if err := s.categories.Update(ctx, *c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes an owned category and returns the removed record.
// Transactions referencing it are deliberately left untouched.
func (s *CategoryService) Delete(ctx context.Context, ownerID int, id string) (*models.Category, error) {
	c, err := s.categories.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Delete(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return c, nil
}

// normalizeType lowercases and validates an entry type.
func normalizeType(t string) (string, error) {
	typ := strings.ToLower(strings.TrimSpace(t))
	if !models.ValidType(typ) {
		return "", &ValidationError{Field: "type", Reason: "must be income or expense"}
	}
	return typ, nil
}
