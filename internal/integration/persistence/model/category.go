// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budgy/backend/internal/domain/entity"
)

// TransactionTypeModel represents the transaction_types lookup table.
type TransactionTypeModel struct {
	Code string `gorm:"type:varchar(20);primaryKey"`
	Name string `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for the TransactionTypeModel.
func (TransactionTypeModel) TableName() string {
	return "transaction_types"
}

// CategoryModel represents the categories table in the database.
// Default categories have no owner.
type CategoryModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(120);not null"`
	Type      string         `gorm:"type:varchar(20);not null;index"`
	OwnerID   *uuid.UUID     `gorm:"type:uuid;index"`
	IsDefault bool           `gorm:"not null;default:false"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support

	// Relationships
	TransactionType *TransactionTypeModel `gorm:"foreignKey:Type;references:Code;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Owner           *UserModel            `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Type:      entity.TransactionType(m.Type),
		OwnerID:   m.OwnerID,
		IsDefault: m.IsDefault,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var deletedAt gorm.DeletedAt
	if category.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *category.DeletedAt, Valid: true}
	}

	return &CategoryModel{
		ID:        category.ID,
		Name:      category.Name,
		Type:      string(category.Type),
		OwnerID:   category.OwnerID,
		IsDefault: category.IsDefault,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
