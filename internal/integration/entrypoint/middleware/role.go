package middleware

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
	"github.com/budgy/backend/internal/integration/entrypoint/dto"
)

// RoleMiddleware restricts routes to users holding one of the given roles.
// The role is read from the user record so demotions apply immediately.
type RoleMiddleware struct {
	userRepo adapter.UserRepository
}

// NewRoleMiddleware creates a new role middleware instance.
func NewRoleMiddleware(userRepo adapter.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{userRepo: userRepo}
}

// Require must run after Authenticate.
func (m *RoleMiddleware) Require(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authentication required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainerror.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
					Error: "Invalid or expired token",
					Code:  string(domainerror.ErrCodeInvalidToken),
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: "An internal error occurred",
			})
			return
		}

		if !slices.Contains(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "You do not have access to this resource",
				Code:  string(domainerror.ErrCodeInsufficientRole),
			})
			return
		}

		c.Next()
	}
}
