// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgy/backend/internal/application/usecase/summary"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
	"github.com/budgy/backend/internal/integration/entrypoint/dto"
)

// SummaryController handles chart data endpoints.
type SummaryController struct {
	monthlyUseCase *summary.GetMonthlySummaryUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(monthlyUseCase *summary.GetMonthlySummaryUseCase) *SummaryController {
	return &SummaryController{monthlyUseCase: monthlyUseCase}
}

// Monthly handles GET /summary/monthly requests.
// Query params: type (default expenditure), month (YYYY-MM, default current month).
func (c *SummaryController) Monthly(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	summaryType := entity.TransactionTypeExpenditure
	if typeStr := ctx.Query("type"); typeStr != "" {
		summaryType = entity.TransactionType(typeStr)
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), summary.GetMonthlySummaryInput{
		UserID: userID,
		Type:   summaryType,
		Month:  ctx.Query("month"),
	})
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(output))
}

func handleSummaryError(ctx *gin.Context, err error) {
	var sumErr *domainerror.SummaryError
	if errors.As(err, &sumErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: sumErr.Message,
			Code:  string(sumErr.Code),
		})
		return
	}

	internalError(ctx)
}
