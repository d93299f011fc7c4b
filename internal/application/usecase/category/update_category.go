// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
)

// UpdateCategoryInput represents the input for renaming a category.
// The type of a category is fixed at creation.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category rename logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	cache        adapter.SummaryCache
	recorder     adapter.ActionRecorder
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	cache adapter.SummaryCache,
	recorder adapter.ActionRecorder,
) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
		recorder:     recorder,
	}
}

// Execute performs the category rename.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	category, err := findAccessible(ctx, uc.categoryRepo, input.UserID, input.CategoryID, true)
	if err != nil {
		return nil, err
	}

	if name == category.Name {
		return &UpdateCategoryOutput{Category: category}, nil
	}

	exists, err := uc.categoryRepo.ExistsVisibleByName(ctx, input.UserID, name, category.Type, &category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, nameExists()
	}

	oldName := category.Name
	category.Name = name
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	// Summaries carry category names
	_ = uc.cache.InvalidateUser(ctx, input.UserID)

	uc.recorder.Record(ctx, &input.UserID, entity.ActionCategoryChanged, oldName+" -> "+name)

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}
