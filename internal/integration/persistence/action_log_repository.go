// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	"github.com/budgy/backend/internal/integration/persistence/model"
)

// ErrActionNotFound is returned when an action name is not in the taxonomy.
var ErrActionNotFound = errors.New("user action not found")

// actionLogRepository implements the adapter.ActionLogRepository interface.
type actionLogRepository struct {
	db *gorm.DB
}

// NewActionLogRepository creates a new action log repository instance.
func NewActionLogRepository(db *gorm.DB) adapter.ActionLogRepository {
	return &actionLogRepository{db: db}
}

// Create appends an audit entry.
func (r *actionLogRepository) Create(ctx context.Context, log *entity.UserActionLog) error {
	return r.db.WithContext(ctx).Create(model.UserActionLogFromEntity(log)).Error
}

// FindActionByName retrieves an entry of the action taxonomy.
func (r *actionLogRepository) FindActionByName(ctx context.Context, name entity.ActionName) (*entity.UserAction, error) {
	var actionModel model.UserActionModel
	result := r.db.WithContext(ctx).Where("name = ?", string(name)).First(&actionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrActionNotFound
		}
		return nil, result.Error
	}
	return actionModel.ToEntity(), nil
}

// FindByFilter retrieves audit entries newest first.
func (r *actionLogRepository) FindByFilter(ctx context.Context, filter adapter.ActionLogFilter, pagination adapter.TransactionPagination) (*adapter.ActionLogListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.UserActionLogModel{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != nil {
		query = query.Where("action_name = ?", string(*filter.Action))
	}
	if filter.Since != nil {
		query = query.Where("timestamp >= ?", *filter.Since)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var logModels []model.UserActionLogModel
	result := query.
		Order("timestamp DESC, id DESC").
		Offset((pagination.Page - 1) * pagination.Limit).
		Limit(pagination.Limit).
		Find(&logModels)
	if result.Error != nil {
		return nil, result.Error
	}

	logs := make([]*entity.UserActionLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToEntity()
	}

	return &adapter.ActionLogListResult{
		Logs:       logs,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}
