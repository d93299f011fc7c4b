// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
	"github.com/budgy/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
// A missing owner row surfaces as ErrUserNotFound.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	err := r.db.WithContext(ctx).Create(model.CategoryFromEntity(category)).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domainerror.ErrUserNotFound
	}
	return err
}

// FindByID retrieves a category by its ID. Soft-deleted rows are returned
// with DeletedAt set so callers can tell them apart from missing ones.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindVisible retrieves the default and user-owned categories that are not deleted.
func (r *categoryRepository) FindVisible(ctx context.Context, userID uuid.UUID, categoryType *entity.TransactionType) ([]*entity.Category, error) {
	query := r.visible(ctx, userID)
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}

	var categoryModels []model.CategoryModel
	if err := query.Order("type ASC, name ASC, id ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// ExistsVisibleByName checks for a visible category with the same name and type, ignoring case.
func (r *categoryRepository) ExistsVisibleByName(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	categoryType entity.TransactionType,
	excludeID *uuid.UUID,
) (bool, error) {
	query := r.visible(ctx, userID).
		Where("type = ? AND LOWER(name) = ?", string(categoryType), strings.ToLower(name))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":       category.Name,
			"updated_at": category.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// SoftDelete sets deleted_at; the row stays referenced by its transactions.
func (r *categoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted_at": time.Now().UTC(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// visible scopes a query to non-deleted defaults plus the user's own categories.
func (r *categoryRepository) visible(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("(is_default = ? OR owner_id = ?)", true, userID)
}
