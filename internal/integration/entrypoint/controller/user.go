// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgy/backend/internal/application/usecase/audit"
	"github.com/budgy/backend/internal/application/usecase/auth"
	domainerror "github.com/budgy/backend/internal/domain/error"
	"github.com/budgy/backend/internal/integration/entrypoint/dto"
)

// UserController handles endpoints of the authenticated user.
type UserController struct {
	getCurrentUserUseCase *auth.GetCurrentUserUseCase
	deleteAccountUseCase  *auth.DeleteAccountUseCase
	listActionLogsUseCase *audit.ListActionLogsUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getCurrentUserUseCase *auth.GetCurrentUserUseCase,
	deleteAccountUseCase *auth.DeleteAccountUseCase,
	listActionLogsUseCase *audit.ListActionLogsUseCase,
) *UserController {
	return &UserController{
		getCurrentUserUseCase: getCurrentUserUseCase,
		deleteAccountUseCase:  deleteAccountUseCase,
		listActionLogsUseCase: listActionLogsUseCase,
	}
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.getCurrentUserUseCase.Execute(ctx.Request.Context(), auth.GetCurrentUserInput{UserID: userID})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	_, err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		handleAuthError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Activity handles GET /users/me/activity requests.
func (c *UserController) Activity(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.listActionLogsUseCase.Execute(ctx.Request.Context(), audit.ListActionLogsInput{
		UserID: &userID,
		Page:   queryInt(ctx, "page"),
		Limit:  queryInt(ctx, "limit"),
	})
	if err != nil {
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToActionLogListResponse(result))
}
