package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
	"github.com/budgy/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokenService struct {
	adapter.TokenService
	claims *adapter.TokenClaims
	err    error
}

func (s *stubTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return s.claims, s.err
}

type stubUserRepo struct {
	adapter.UserRepository
	users map[uuid.UUID]*entity.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		service    *stubTokenService
		wantStatus int
		wantCode   domainerror.AuthErrorCode
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "empty token", header: "Bearer  ", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{
			name:       "expired token",
			header:     "Bearer expired",
			service:    &stubTokenService{err: fmt.Errorf("%w: boom", domainerror.ErrExpiredToken)},
			wantStatus: http.StatusUnauthorized,
			wantCode:   domainerror.ErrCodeExpiredToken,
		},
		{
			name:       "invalid token",
			header:     "Bearer forged",
			service:    &stubTokenService{err: domainerror.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
			wantCode:   domainerror.ErrCodeInvalidToken,
		},
		{
			name:       "valid token with lowercase scheme",
			header:     "bearer good",
			service:    &stubTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "a@b.tld"}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := tt.service
			if service == nil {
				service = &stubTokenService{}
			}

			router := gin.New()
			router.GET("/me", NewAuthMiddleware(service).Authenticate(), func(c *gin.Context) {
				id, ok := GetUserIDFromContext(c)
				require.True(t, ok)
				c.String(http.StatusOK, id.String())
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
				return
			}
			assert.Equal(t, string(tt.wantCode), decodeError(t, w).Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	admin := entity.NewUser("admin@budgy.tld", "hash", entity.RoleAdmin)
	regular := entity.NewUser("user@budgy.tld", "hash", entity.RoleUser)
	repo := &stubUserRepo{users: map[uuid.UUID]*entity.User{admin.ID: admin, regular.ID: regular}}

	serve := func(userID *uuid.UUID) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET("/admin", func(c *gin.Context) {
			if userID != nil {
				c.Set(string(UserIDKey), *userID)
			}
		}, NewRoleMiddleware(repo).Require(entity.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		return w
	}

	assert.Equal(t, http.StatusNoContent, serve(&admin.ID).Code)

	w := serve(&regular.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, string(domainerror.ErrCodeInsufficientRole), decodeError(t, w).Code)

	ghost := uuid.New()
	assert.Equal(t, http.StatusUnauthorized, serve(&ghost).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(nil).Code)
}

func TestRateLimiter(t *testing.T) {
	serve := func(rl *RateLimiter) int {
		router := gin.New()
		router.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("blocks after the limit until the window passes", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		rl := NewRateLimiterWithConfig(true, 2, time.Minute)
		rl.now = func() time.Time { return now }

		assert.Equal(t, http.StatusOK, serve(rl))
		assert.Equal(t, http.StatusOK, serve(rl))
		assert.Equal(t, http.StatusTooManyRequests, serve(rl))

		now = now.Add(2 * time.Minute)
		assert.Equal(t, http.StatusOK, serve(rl))
	})

	t.Run("reset clears state", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(true, 1, time.Minute)
		assert.Equal(t, http.StatusOK, serve(rl))
		assert.Equal(t, http.StatusTooManyRequests, serve(rl))
		rl.Reset()
		assert.Equal(t, http.StatusOK, serve(rl))
	})

	t.Run("disabled limiter lets everything through", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(false, 1, time.Minute)
		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, serve(rl))
		}
	})

	t.Run("cleanup drops expired entries", func(t *testing.T) {
		now := time.Now()
		rl := NewRateLimiterWithConfig(true, 1, time.Minute)
		rl.now = func() time.Time { return now }
		serve(rl)

		now = now.Add(2 * time.Minute)
		rl.Cleanup()
		assert.Empty(t, rl.entries)
	})
}
