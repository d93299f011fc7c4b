// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a transaction category in the Budgy system.
// Default categories have no owner and are shared by every user.
type Category struct {
	ID        uuid.UUID
	Name      string
	Type      TransactionType
	OwnerID   *uuid.UUID
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new user-owned Category entity.
func NewCategory(name string, categoryType TransactionType, ownerID uuid.UUID) *Category {
	now := time.Now().UTC()
	owner := ownerID

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Type:      categoryType,
		OwnerID:   &owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewDefaultCategory creates a system category visible to every user.
func NewDefaultCategory(name string, categoryType TransactionType) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Type:      categoryType,
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDeleted reports whether the category has been soft-deleted.
func (c *Category) IsDeleted() bool {
	return c.DeletedAt != nil
}

// IsOwnedBy reports whether the category belongs to the given user.
func (c *Category) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID != nil && *c.OwnerID == userID
}

// IsVisibleTo reports whether the user may read or assign the category.
func (c *Category) IsVisibleTo(userID uuid.UUID) bool {
	return c.IsDefault || c.IsOwnedBy(userID)
}

// MarkDeleted soft-deletes the category at the given time.
func (c *Category) MarkDeleted(at time.Time) {
	at = at.UTC()
	c.DeletedAt = &at
	c.UpdatedAt = at
}
