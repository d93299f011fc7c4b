// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 120

// findAccessible loads a non-deleted category and checks the actor may use it.
// Default categories are readable by everyone; writable requires ownership.
func findAccessible(ctx context.Context, repo adapter.CategoryRepository, userID, categoryID uuid.UUID, write bool) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if category.IsDeleted() {
		return nil, notFound()
	}

	if category.IsDefault {
		if write {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeDefaultCategoryReadOnly,
				"default categories cannot be modified",
				domainerror.ErrDefaultCategoryReadOnly,
			)
		}
		return category, nil
	}

	if !category.IsOwnedBy(userID) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to access this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	return category, nil
}

func notFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}

// validateName checks the name is present and fits the column.
func validateName(name string) error {
	if name == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			nil,
		)
	}
	if len([]rune(name)) > MaxCategoryNameLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return nil
}

func nameExists() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNameExists,
		"a category with this name already exists",
		domainerror.ErrCategoryNameExists,
	)
}
