// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID, including soft-deleted ones.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindVisible retrieves the non-deleted default and user-owned categories,
	// optionally filtered by type, ordered by name.
	FindVisible(ctx context.Context, userID uuid.UUID, categoryType *entity.TransactionType) ([]*entity.Category, error)

	// ExistsVisibleByName checks if a non-deleted category with the given name and
	// type is visible to the user. excludeID skips the category being renamed.
	ExistsVisibleByName(ctx context.Context, userID uuid.UUID, name string, categoryType entity.TransactionType, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// SoftDelete marks a category as deleted without removing the row.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
