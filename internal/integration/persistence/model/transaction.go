// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgy/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date           time.Time       `gorm:"type:date;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Details        string          `gorm:"type:varchar(500)"`
	AttachmentName string          `gorm:"type:varchar(255)"`
	AttachmentKey  string          `gorm:"type:varchar(500)"`
	GeoLat         *float64        `gorm:""`
	GeoLng         *float64        `gorm:""`
	CreatedAt      time.Time       `gorm:"not null"`
	ModifiedAt     time.Time       `gorm:"not null"`

	// Relationships
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var location *entity.GeoLocation
	if m.GeoLat != nil && m.GeoLng != nil {
		location = &entity.GeoLocation{Lat: *m.GeoLat, Lng: *m.GeoLng}
	}

	return &entity.Transaction{
		ID:             m.ID,
		UserID:         m.UserID,
		CategoryID:     m.CategoryID,
		Date:           entity.TruncateToDay(m.Date),
		Amount:         m.Amount,
		Details:        m.Details,
		AttachmentName: m.AttachmentName,
		AttachmentKey:  m.AttachmentKey,
		Location:       location,
		CreatedAt:      m.CreatedAt,
		ModifiedAt:     m.ModifiedAt,
	}
}

// ToEntityWithCategory converts a TransactionModel to a TransactionWithCategory entity.
func (m *TransactionModel) ToEntityWithCategory() *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{
		Transaction: m.ToEntity(),
	}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	m := &TransactionModel{
		ID:             transaction.ID,
		UserID:         transaction.UserID,
		CategoryID:     transaction.CategoryID,
		Date:           transaction.Date,
		Amount:         transaction.Amount,
		Details:        transaction.Details,
		AttachmentName: transaction.AttachmentName,
		AttachmentKey:  transaction.AttachmentKey,
		CreatedAt:      transaction.CreatedAt,
		ModifiedAt:     transaction.ModifiedAt,
	}
	if loc := transaction.Location; loc != nil {
		lat, lng := loc.Lat, loc.Lng
		m.GeoLat = &lat
		m.GeoLng = &lng
	}
	return m
}
