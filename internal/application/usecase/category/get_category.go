// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

// GetCategoryInput represents the input for reading one category.
type GetCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// GetCategoryUseCase returns a category visible to the user.
type GetCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute loads the category.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*entity.Category, error) {
	return findAccessible(ctx, uc.categoryRepo, input.UserID, input.CategoryID, false)
}
