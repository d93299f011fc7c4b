// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/budgy/backend/internal/domain/entity"
)

// UserActionModel represents the user_actions taxonomy table.
type UserActionModel struct {
	Name     string `gorm:"type:varchar(50);primaryKey"`
	LogLevel string `gorm:"type:varchar(10);not null"`
}

// TableName returns the table name for the UserActionModel.
func (UserActionModel) TableName() string {
	return "user_actions"
}

// ToEntity converts a UserActionModel to a domain UserAction entity.
func (m *UserActionModel) ToEntity() *entity.UserAction {
	return &entity.UserAction{
		Name:     entity.ActionName(m.Name),
		LogLevel: entity.LogLevel(m.LogLevel),
	}
}

// UserActionLogModel represents the append-only user_action_logs table.
type UserActionLogModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Timestamp  time.Time  `gorm:"not null;index"`
	ActionName string     `gorm:"type:varchar(50);not null;index"`
	LogLevel   string     `gorm:"type:varchar(10);not null"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	Details    string     `gorm:"type:varchar(120)"`

	// Relationships
	Action *UserActionModel `gorm:"foreignKey:ActionName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	User   *UserModel       `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for the UserActionLogModel.
func (UserActionLogModel) TableName() string {
	return "user_action_logs"
}

// ToEntity converts a UserActionLogModel to a domain UserActionLog entity.
func (m *UserActionLogModel) ToEntity() *entity.UserActionLog {
	return &entity.UserActionLog{
		ID:        m.ID,
		Timestamp: m.Timestamp,
		Action:    entity.ActionName(m.ActionName),
		LogLevel:  entity.LogLevel(m.LogLevel),
		UserID:    m.UserID,
		Details:   m.Details,
	}
}

// UserActionLogFromEntity creates a UserActionLogModel from a domain entity.
func UserActionLogFromEntity(log *entity.UserActionLog) *UserActionLogModel {
	return &UserActionLogModel{
		ID:         log.ID,
		Timestamp:  log.Timestamp,
		ActionName: string(log.Action),
		LogLevel:   string(log.LogLevel),
		UserID:     log.UserID,
		Details:    log.Details,
	}
}

// AllModels lists every model managed by AutoMigrate, in dependency order.
func AllModels() []any {
	return []any{
		&TransactionTypeModel{},
		&UserActionModel{},
		&UserModel{},
		&RefreshTokenModel{},
		&CategoryModel{},
		&TransactionModel{},
		&UserActionLogModel{},
	}
}
