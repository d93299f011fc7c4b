// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budgy/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
	Type string `json:"type" binding:"required,oneof=income expenditure"`
}

// UpdateCategoryRequest represents the request body for category rename.
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// TransactionTypeResponse represents one entry of the fixed type list.
type TransactionTypeResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// TransactionTypeListResponse represents the response for listing transaction types.
type TransactionTypeListResponse struct {
	Types []TransactionTypeResponse `json:"types"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Type:      string(cat.Type),
		IsDefault: cat.IsDefault,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of categories.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	resp := CategoryListResponse{Categories: make([]CategoryResponse, len(categories))}
	for i, cat := range categories {
		resp.Categories[i] = ToCategoryResponse(cat)
	}
	return resp
}

// ToTransactionTypeListResponse lists the fixed transaction types.
func ToTransactionTypeListResponse(types []entity.TransactionType) TransactionTypeListResponse {
	resp := TransactionTypeListResponse{Types: make([]TransactionTypeResponse, len(types))}
	for i, t := range types {
		resp.Types[i] = TransactionTypeResponse{Code: string(t), Name: t.DisplayName()}
	}
	return resp
}
