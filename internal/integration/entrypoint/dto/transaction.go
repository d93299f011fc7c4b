// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgy/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount is accepted as a JSON number or string; its sign is ignored.
type CreateTransactionRequest struct {
	Date       string          `json:"date" binding:"required,datetime=2006-01-02"`
	CategoryID string          `json:"category_id" binding:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"`
	Details    string          `json:"details,omitempty" binding:"omitempty,max=500"`
	Lat        *float64        `json:"lat,omitempty" binding:"omitempty,min=-90,max=90"`
	Lng        *float64        `json:"lng,omitempty" binding:"omitempty,min=-180,max=180"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date          *string          `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	CategoryID    *string          `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Details       *string          `json:"details,omitempty" binding:"omitempty,max=500"`
	Lat           *float64         `json:"lat,omitempty" binding:"omitempty,min=-90,max=90"`
	Lng           *float64         `json:"lng,omitempty" binding:"omitempty,min=-180,max=180"`
	ClearLocation bool             `json:"clear_location,omitempty"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsDefault bool   `json:"is_default"`
	IsDeleted bool   `json:"is_deleted"`
}

// LocationResponse represents the coordinates of a transaction.
type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TransactionResponse represents a single transaction in API responses.
// Amount is the display value; expenditure is shown as a positive number.
type TransactionResponse struct {
	ID             string                       `json:"id"`
	UserID         string                       `json:"user_id"`
	Date           string                       `json:"date"`
	Amount         string                       `json:"amount"`
	SignedAmount   string                       `json:"signed_amount"`
	Type           string                       `json:"type"`
	CategoryID     *string                      `json:"category_id,omitempty"`
	Category       *TransactionCategoryResponse `json:"category,omitempty"`
	Details        string                       `json:"details"`
	AttachmentName string                       `json:"attachment_name,omitempty"`
	HasAttachment  bool                         `json:"has_attachment"`
	Location       *LocationResponse            `json:"location,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`
	ModifiedAt     time.Time                    `json:"modified_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// ToTransactionResponse converts a use case output to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	resp := TransactionResponse{
		ID:             txn.ID.String(),
		UserID:         txn.UserID.String(),
		Date:           txn.Date.Format(time.DateOnly),
		Amount:         txn.Amount.StringFixed(2),
		SignedAmount:   txn.SignedAmount.StringFixed(2),
		Type:           string(txn.Type),
		Details:        txn.Details,
		AttachmentName: txn.AttachmentName,
		HasAttachment:  txn.HasAttachment,
		CreatedAt:      txn.CreatedAt,
		ModifiedAt:     txn.ModifiedAt,
	}

	if txn.Category != nil {
		categoryID := txn.Category.ID.String()
		resp.CategoryID = &categoryID
		resp.Category = &TransactionCategoryResponse{
			ID:        categoryID,
			Name:      txn.Category.Name,
			Type:      string(txn.Category.Type),
			IsDefault: txn.Category.IsDefault,
			IsDeleted: txn.Category.IsDeleted,
		}
	}

	if txn.Location != nil {
		resp.Location = &LocationResponse{Lat: txn.Location.Lat, Lng: txn.Location.Lng}
	}

	return resp
}

// ToTransactionListResponse converts a list output to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	resp := TransactionListResponse{
		Transactions: make([]TransactionResponse, len(output.Transactions)),
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
	for i, txn := range output.Transactions {
		resp.Transactions[i] = ToTransactionResponse(txn)
	}
	return resp
}
