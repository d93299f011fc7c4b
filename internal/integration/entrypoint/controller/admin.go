// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/usecase/audit"
	"github.com/budgy/backend/internal/domain/entity"
	"github.com/budgy/backend/internal/integration/entrypoint/dto"
)

// AdminController handles the back office endpoints.
type AdminController struct {
	listActionLogsUseCase *audit.ListActionLogsUseCase
}

// NewAdminController creates a new admin controller instance.
func NewAdminController(listActionLogsUseCase *audit.ListActionLogsUseCase) *AdminController {
	return &AdminController{listActionLogsUseCase: listActionLogsUseCase}
}

// ActionLogs handles GET /admin/action-logs requests.
// Optional filters: user_id, action, since (RFC 3339).
func (c *AdminController) ActionLogs(ctx *gin.Context) {
	input := audit.ListActionLogsInput{
		Page:  queryInt(ctx, "page"),
		Limit: queryInt(ctx, "limit"),
	}

	if v := ctx.Query("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user_id"})
			return
		}
		input.UserID = &id
	}
	if v := ctx.Query("action"); v != "" {
		action := entity.ActionName(v)
		input.Action = &action
	}
	if v := ctx.Query("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid since, expected RFC 3339"})
			return
		}
		input.Since = &since
	}

	result, err := c.listActionLogsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToActionLogListResponse(result))
}
