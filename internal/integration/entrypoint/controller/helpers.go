// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainerror "github.com/budgy/backend/internal/domain/error"
	"github.com/budgy/backend/internal/integration/entrypoint/dto"
	"github.com/budgy/backend/internal/integration/entrypoint/middleware"
)

// RegisterValidation makes binding errors report JSON field names.
func RegisterValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// badRequest writes a 400 with per-field messages when the error comes from validation.
func badRequest(ctx *gin.Context, code string, err error) {
	resp := dto.ErrorResponse{
		Error: "Invalid request body",
		Code:  code,
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		resp.Fields = make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			resp.Fields[fe.Field()] = fieldMessage(fe)
		}
	} else if err != nil {
		resp.Details = err.Error()
	}

	ctx.JSON(http.StatusBadRequest, resp)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}

// currentUserID reads the authenticated user or writes a 401.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path parameter or writes a 400.
func pathUUID(ctx *gin.Context, param, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + param,
			Code:  code,
		})
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an integer query parameter, falling back to zero.
func queryInt(ctx *gin.Context, key string) int {
	v, err := strconv.Atoi(ctx.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// userGone writes a 401 when the token outlived its user.
func userGone(ctx *gin.Context, err error) bool {
	if !errors.Is(err, domainerror.ErrUserNotFound) {
		return false
	}
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User no longer exists",
		Code:  string(domainerror.ErrCodeUserNotFound),
	})
	return true
}

func internalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
