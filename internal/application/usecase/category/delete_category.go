// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase soft-deletes a category. Existing transactions keep
// referencing it; it disappears from selection lists.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	recorder     adapter.ActionRecorder
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, recorder adapter.ActionRecorder) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		recorder:     recorder,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := findAccessible(ctx, uc.categoryRepo, input.UserID, input.CategoryID, true)
	if err != nil {
		return err
	}

	if err := uc.categoryRepo.SoftDelete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	uc.recorder.Record(ctx, &input.UserID, entity.ActionCategoryDeleted, category.Name)

	return nil
}
