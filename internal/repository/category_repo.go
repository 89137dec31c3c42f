package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finance_tracker/internal/models"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ Categories = (*CategoryRepository)(nil)

const (
	insertCategorySQL = `INSERT INTO categories (id, user_id, name, type, icon, color, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`

	listCategoriesSQL = `SELECT id, user_id, name, type, icon, color, created_at FROM categories WHERE user_id = ? ORDER BY created_at DESC`

	selectCategorySQL = `SELECT id, user_id, name, type, icon, color, created_at FROM categories WHERE id = ? AND user_id = ?`

	updateCategorySQL = `UPDATE categories SET name = ?, type = ?, icon = ?, color = ? WHERE id = ? AND user_id = ?`

	deleteCategorySQL = `DELETE FROM categories WHERE id = ? AND user_id = ?`
)

// ListByOwner returns all categories owned by ownerID, newest first.
func (r *CategoryRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Category, 0, 16)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new category. The UNIQUE (user_id, name) index decides
// duplicates; a violation is reported as ErrDuplicateCategory.
func (r *CategoryRepository) Create(ctx context.Context, c models.Category) error {
	_, err := r.db.ExecContext(ctx, insertCategorySQL,
		c.ID, c.UserID, c.Name, c.Type, c.Icon, c.Color, c.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("insert category %q: %w", c.Name, err)
	}
	return nil
}

// GetByID returns the category only if it is owned by ownerID.
// A row owned by someone else is indistinguishable from a missing one.
func (r *CategoryRepository) GetByID(ctx context.Context, ownerID int, id string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx, selectCategorySQL, id, ownerID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select category %q: %w", id, err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

// Update persists the mutable fields of an owned category. A rename that
// collides with another category of the same owner hits the UNIQUE index and
// is reported as ErrDuplicateCategory.
func (r *CategoryRepository) Update(ctx context.Context, c models.Category) error {
	res, err := r.db.ExecContext(ctx, updateCategorySQL,
		c.Name, c.Type, c.Icon, c.Color, c.ID, c.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("update category %q: %w", c.ID, err)
	}
	return requireRowAffected(res)
}

// Delete removes an owned category. Referencing transactions are left alone.
func (r *CategoryRepository) Delete(ctx context.Context, ownerID int, id string) error {
	res, err := r.db.ExecContext(ctx, deleteCategorySQL, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete category %q: %w", id, err)
	}
	return requireRowAffected(res)
}
