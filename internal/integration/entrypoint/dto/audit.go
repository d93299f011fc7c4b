// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/budgy/backend/internal/application/adapter"
)

// ActionLogResponse represents one audit entry.
type ActionLogResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	LogLevel  string    `json:"log_level"`
	UserID    *string   `json:"user_id"`
	Details   string    `json:"details"`
}

// ActionLogListResponse represents a page of audit entries.
type ActionLogListResponse struct {
	Logs       []ActionLogResponse           `json:"logs"`
	Pagination TransactionPaginationResponse `json:"pagination"`
}

// ToActionLogListResponse converts a page of audit entries.
func ToActionLogListResponse(result *adapter.ActionLogListResult) ActionLogListResponse {
	resp := ActionLogListResponse{
		Logs: make([]ActionLogResponse, len(result.Logs)),
		Pagination: TransactionPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
	for i, log := range result.Logs {
		entry := ActionLogResponse{
			ID:        log.ID.String(),
			Timestamp: log.Timestamp,
			Action:    string(log.Action),
			LogLevel:  string(log.LogLevel),
			Details:   log.Details,
		}
		if log.UserID != nil {
			id := log.UserID.String()
			entry.UserID = &id
		}
		resp.Logs[i] = entry
	}
	return resp
}
