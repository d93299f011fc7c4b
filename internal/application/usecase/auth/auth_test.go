package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*entity.User
	deleted []uuid.UUID
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type plainPasswords struct{}

func (plainPasswords) HashPassword(password string) (string, error) { return "hashed:" + password, nil }

func (plainPasswords) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}

func (plainPasswords) ValidatePasswordStrength(password string) error {
	if len(password) < entity.MinPasswordLength {
		return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, "too short", domainerror.ErrWeakPassword)
	}
	return nil
}

type fakeTokenService struct {
	issued      int
	revoked     map[string]bool
	validateErr error
	claims      *adapter.TokenClaims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{revoked: make(map[string]bool)}
}

func (s *fakeTokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string, _ bool) (*adapter.TokenPair, error) {
	s.issued++
	return &adapter.TokenPair{AccessToken: "access-" + userID.String(), RefreshToken: "refresh-" + email, ExpiresIn: 900}, nil
}

func (s *fakeTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return s.claims, s.validateErr
}

func (s *fakeTokenService) ValidateRefreshToken(context.Context, string) (*adapter.TokenClaims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return s.claims, nil
}

func (s *fakeTokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.revoked[token] = true
	return nil
}

func (s *fakeTokenService) InvalidateAllUserTokens(context.Context, uuid.UUID) error { return nil }

func (s *fakeTokenService) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	return !s.revoked[token], nil
}

type fakeRecorder struct {
	actions []entity.ActionName
	users   []*uuid.UUID
	details []string
}

func (r *fakeRecorder) Record(_ context.Context, userID *uuid.UUID, action entity.ActionName, details string) {
	r.actions = append(r.actions, action)
	r.users = append(r.users, userID)
	r.details = append(r.details, details)
}

type fakeStorage struct {
	adapter.AttachmentStorage
	cleared []uuid.UUID
}

func (s *fakeStorage) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	s.cleared = append(s.cleared, userID)
	return nil
}

type fakeCache struct {
	adapter.SummaryCache
	invalidated []uuid.UUID
}

func (c *fakeCache) InvalidateUser(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func requireAuthCode(t *testing.T, err error, code domainerror.AuthErrorCode) {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
	assert.Equal(t, code, authErr.Code)
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a normalized email", func(t *testing.T) {
		repo := newFakeUserRepo()
		tokens := newFakeTokenService()
		recorder := &fakeRecorder{}
		uc := NewRegisterUserUseCase(repo, plainPasswords{}, tokens, recorder)

		out, err := uc.Execute(ctx, RegisterUserInput{Email: "  New@Example.COM ", Password: "SecurePass1"})
		require.NoError(t, err)

		assert.Equal(t, "new@example.com", out.User.Email)
		assert.Equal(t, entity.RoleUser, out.User.Role)
		assert.Equal(t, "hashed:SecurePass1", out.User.PasswordHash)
		assert.NotEmpty(t, out.AccessToken)
		assert.Equal(t, 1, tokens.issued)
		assert.Equal(t, []entity.ActionName{entity.ActionRegistrationSuccess}, recorder.actions)
	})

	t.Run("rejects duplicates and records the failure", func(t *testing.T) {
		existing := entity.NewUser("taken@example.com", "hashed:x", entity.RoleUser)
		recorder := &fakeRecorder{}
		uc := NewRegisterUserUseCase(newFakeUserRepo(existing), plainPasswords{}, newFakeTokenService(), recorder)

		_, err := uc.Execute(ctx, RegisterUserInput{Email: "TAKEN@example.com", Password: "SecurePass1"})
		requireAuthCode(t, err, domainerror.ErrCodeEmailExists)
		assert.Equal(t, []entity.ActionName{entity.ActionRegistrationFailed}, recorder.actions)
	})

	t.Run("validates email and password", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepo(), plainPasswords{}, newFakeTokenService(), &fakeRecorder{})

		_, err := uc.Execute(ctx, RegisterUserInput{Email: "not-an-email", Password: "SecurePass1"})
		requireAuthCode(t, err, domainerror.ErrCodeInvalidEmail)

		_, err = uc.Execute(ctx, RegisterUserInput{Email: "ok@example.com", Password: "short"})
		requireAuthCode(t, err, domainerror.ErrCodeWeakPassword)
	})
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	user := entity.NewUser("login@example.com", "hashed:SecurePass1", entity.RoleUser)

	t.Run("stamps the login and issues tokens", func(t *testing.T) {
		repo := newFakeUserRepo(user)
		recorder := &fakeRecorder{}
		uc := NewLoginUserUseCase(repo, plainPasswords{}, newFakeTokenService(), recorder)

		out, err := uc.Execute(ctx, LoginUserInput{Email: "Login@Example.com", Password: "SecurePass1"})
		require.NoError(t, err)

		require.NotNil(t, out.User.LastLoginAt)
		assert.WithinDuration(t, time.Now(), *out.User.LastLoginAt, time.Minute)
		assert.Equal(t, []entity.ActionName{entity.ActionLoginSuccess}, recorder.actions)
		assert.Equal(t, user.ID, *recorder.users[0])
	})

	t.Run("does not reveal whether the email exists", func(t *testing.T) {
		recorder := &fakeRecorder{}
		uc := NewLoginUserUseCase(newFakeUserRepo(user), plainPasswords{}, newFakeTokenService(), recorder)

		_, wrongPassword := uc.Execute(ctx, LoginUserInput{Email: "login@example.com", Password: "nope"})
		_, unknownEmail := uc.Execute(ctx, LoginUserInput{Email: "ghost@example.com", Password: "nope"})

		requireAuthCode(t, wrongPassword, domainerror.ErrCodeInvalidCredentials)
		requireAuthCode(t, unknownEmail, domainerror.ErrCodeInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
		assert.Equal(t, []entity.ActionName{entity.ActionLoginFailed, entity.ActionLoginFailed}, recorder.actions)
		assert.Nil(t, recorder.users[1])
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	user := entity.NewUser("refresh@example.com", "hashed:x", entity.RoleUser)

	t.Run("rotates the refresh token", func(t *testing.T) {
		tokens := newFakeTokenService()
		tokens.claims = &adapter.TokenClaims{UserID: user.ID, Email: user.Email}
		uc := NewRefreshTokenUseCase(tokens, newFakeUserRepo(user))

		out, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "old"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.AccessToken)
		assert.True(t, tokens.revoked["old"])

		_, err = uc.Execute(ctx, RefreshTokenInput{RefreshToken: "old"})
		requireAuthCode(t, err, domainerror.ErrCodeInvalidToken)
	})

	t.Run("reports expired tokens", func(t *testing.T) {
		tokens := newFakeTokenService()
		tokens.validateErr = domainerror.ErrExpiredToken
		uc := NewRefreshTokenUseCase(tokens, newFakeUserRepo(user))

		_, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "stale"})
		requireAuthCode(t, err, domainerror.ErrCodeExpiredToken)
	})

	t.Run("rejects tokens of deleted users", func(t *testing.T) {
		tokens := newFakeTokenService()
		tokens.claims = &adapter.TokenClaims{UserID: uuid.New()}
		uc := NewRefreshTokenUseCase(tokens, newFakeUserRepo())

		_, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: "orphan"})
		requireAuthCode(t, err, domainerror.ErrCodeInvalidToken)
	})
}

func TestLogoutUser(t *testing.T) {
	tokens := newFakeTokenService()
	uc := NewLogoutUserUseCase(tokens)

	_, err := uc.Execute(context.Background(), LogoutUserInput{RefreshToken: "token"})
	require.NoError(t, err)
	assert.True(t, tokens.revoked["token"])

	_, err = uc.Execute(context.Background(), LogoutUserInput{})
	assert.NoError(t, err)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades and records an anonymous entry", func(t *testing.T) {
		user := entity.NewUser("leaving@example.com", "hashed:SecurePass1", entity.RoleUser)
		repo := newFakeUserRepo(user)
		storage := &fakeStorage{}
		cache := &fakeCache{}
		recorder := &fakeRecorder{}
		uc := NewDeleteAccountUseCase(repo, plainPasswords{}, storage, cache, recorder)

		out, err := uc.Execute(ctx, DeleteAccountInput{UserID: user.ID, Password: "SecurePass1", Confirmation: "DELETE"})
		require.NoError(t, err)

		assert.True(t, out.Success)
		assert.Equal(t, []uuid.UUID{user.ID}, repo.deleted)
		assert.Equal(t, []uuid.UUID{user.ID}, storage.cleared)
		assert.Equal(t, []uuid.UUID{user.ID}, cache.invalidated)
		assert.Equal(t, []entity.ActionName{entity.ActionAccountDeleted}, recorder.actions)
		assert.Nil(t, recorder.users[0])
		assert.Equal(t, "leaving@example.com", recorder.details[0])
	})

	t.Run("requires the password and a valid confirmation", func(t *testing.T) {
		user := entity.NewUser("staying@example.com", "hashed:SecurePass1", entity.RoleUser)
		repo := newFakeUserRepo(user)
		uc := NewDeleteAccountUseCase(repo, plainPasswords{}, &fakeStorage{}, &fakeCache{}, &fakeRecorder{})

		_, err := uc.Execute(ctx, DeleteAccountInput{UserID: user.ID, Password: "wrong"})
		requireAuthCode(t, err, domainerror.ErrCodeInvalidCredentials)

		_, err = uc.Execute(ctx, DeleteAccountInput{UserID: user.ID, Password: "SecurePass1", Confirmation: "yes"})
		requireAuthCode(t, err, domainerror.ErrCodeInvalidConfirmation)

		assert.Empty(t, repo.deleted)
	})
}

func TestGetCurrentUser(t *testing.T) {
	user := entity.NewUser("me@example.com", "hash", entity.RoleAdmin)
	uc := NewGetCurrentUserUseCase(newFakeUserRepo(user))

	got, err := uc.Execute(context.Background(), GetCurrentUserInput{UserID: user.ID})
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	_, err = uc.Execute(context.Background(), GetCurrentUserInput{UserID: uuid.New()})
	requireAuthCode(t, err, domainerror.ErrCodeUserNotFound)
}
