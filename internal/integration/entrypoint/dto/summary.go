// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/budgy/backend/internal/application/usecase/summary"
)

// SummaryItemResponse is one category bar of the monthly chart.
type SummaryItemResponse struct {
	CategoryID       string `json:"category_id"`
	CategoryName     string `json:"category_name"`
	Amount           string `json:"amount"`
	TransactionCount int    `json:"transaction_count"`
}

// MonthlySummaryResponse represents the monthly summary in API responses.
type MonthlySummaryResponse struct {
	Type   string                `json:"type"`
	Period string                `json:"period"`
	Total  string                `json:"total"`
	Items  []SummaryItemResponse `json:"items"`
}

// ToMonthlySummaryResponse converts a summary output to a response DTO.
func ToMonthlySummaryResponse(output *summary.GetMonthlySummaryOutput) MonthlySummaryResponse {
	s := output.Summary
	resp := MonthlySummaryResponse{
		Type:   string(s.Type),
		Period: output.PeriodLabel,
		Total:  s.Total.StringFixed(2),
		Items:  make([]SummaryItemResponse, len(s.Items)),
	}
	for i, item := range s.Items {
		resp.Items[i] = SummaryItemResponse{
			CategoryID:       item.CategoryID.String(),
			CategoryName:     item.CategoryName,
			Amount:           item.Amount.StringFixed(2),
			TransactionCount: item.TransactionCount,
		}
	}
	return resp
}
