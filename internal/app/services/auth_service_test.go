package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classroom/schoolapi/internal/app/models"
	"github.com/classroom/schoolapi/internal/app/models/dto"
	"github.com/classroom/schoolapi/internal/pkg/apperrors"
	"github.com/classroom/schoolapi/internal/pkg/auth"
)

// stubUserRepo is an in-memory IUserRepository for service tests.
type stubUserRepo struct {
	users           map[int64]*models.User
	byEmail         map[string]*models.User
	lastLoginCalled bool
	updatedPassword string
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	r := &stubUserRepo{
		users:   make(map[int64]*models.User),
		byEmail: make(map[string]*models.User),
	}
	for _, u := range users {
		r.users[u.ID] = u
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	user.ID = int64(len(r.users) + 1)
	user.DateJoined = time.Now()
	r.users[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = hashedPassword
	r.updatedPassword = hashedPassword
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(ctx context.Context, userID int64) error {
	r.lastLoginCalled = true
	return nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.byEmail, r.users[id].Email)
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

// stubTokenRepo is an in-memory ITokenRepository.
type stubTokenRepo struct {
	tokens map[string]*storedToken
}

type storedToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]*storedToken)}
}

func (r *stubTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	r.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (r *stubTokenRepo) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	st, ok := r.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return st.userID, st.expiry, st.revoked, nil
}

func (r *stubTokenRepo) RevokeToken(ctx context.Context, token string) error {
	st, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	st.revoked = true
	return nil
}

func (r *stubTokenRepo) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	return 0, nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "schoolapi-test",
	})
}

func activeUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("Correct1Password")
	require.NoError(t, err)
	img := "jane.png"
	return &models.User{
		ID:           1,
		Email:        "jane@school.local",
		Password:     hash,
		FirstName:    "Jane",
		LastName:     "Doe",
		ProfileImage: &img,
		Role:         models.RoleStudent,
		IsActive:     true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns tokens and user summary", func(t *testing.T) {
		user := activeUser(t)
		userRepo := newStubUserRepo(user)
		tokenRepo := newStubTokenRepo()
		svc := NewAuthService(userRepo, tokenRepo, testJWTService(), zerolog.Nop())

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "Correct1Password"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.Access)
		assert.NotEmpty(t, resp.Refresh)
		assert.True(t, userRepo.lastLoginCalled)

		require.NotNil(t, resp.User)
		assert.Equal(t, int64(1), resp.User["id"])
		assert.Equal(t, "Jane Doe", resp.User["full_name"])
		assert.Equal(t, "jane@school.local", resp.User["email"])
		assert.Equal(t, false, resp.User["is_admin"])
		assert.NotContains(t, resp.User, "password")
		assert.NotContains(t, resp.User, "is_active")

		// The refresh token must be persisted for later rotation.
		_, _, _, err = tokenRepo.GetTokenByValue(ctx, resp.Refresh)
		assert.NoError(t, err)
	})

	t.Run("superuser gets is_admin true", func(t *testing.T) {
		user := activeUser(t)
		user.IsSuperuser = true
		svc := NewAuthService(newStubUserRepo(user), newStubTokenRepo(), testJWTService(), zerolog.Nop())

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "Correct1Password"})
		require.NoError(t, err)
		assert.Equal(t, true, resp.User["is_admin"])
	})

	t.Run("unknown email yields invalid credentials", func(t *testing.T) {
		svc := NewAuthService(newStubUserRepo(), newStubTokenRepo(), testJWTService(), zerolog.Nop())

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@school.local", Password: "whatever"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		user := activeUser(t)
		svc := NewAuthService(newStubUserRepo(user), newStubTokenRepo(), testJWTService(), zerolog.Nop())

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "WrongPassword1"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("inactive account with correct credentials is distinct", func(t *testing.T) {
		user := activeUser(t)
		user.IsActive = false
		svc := NewAuthService(newStubUserRepo(user), newStubTokenRepo(), testJWTService(), zerolog.Nop())

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "Correct1Password"})
		assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
	})

	t.Run("inactive account with wrong password reports bad credentials", func(t *testing.T) {
		// Credential verification runs before the activity check, so a
		// wrong password never leaks that the account is deactivated.
		user := activeUser(t)
		user.IsActive = false
		svc := NewAuthService(newStubUserRepo(user), newStubTokenRepo(), testJWTService(), zerolog.Nop())

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "WrongPassword1"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T) (*dto.TokenPairResponse, AuthService, *stubTokenRepo) {
		t.Helper()
		user := activeUser(t)
		tokenRepo := newStubTokenRepo()
		svc := NewAuthService(newStubUserRepo(user), tokenRepo, testJWTService(), zerolog.Nop())
		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "Correct1Password"})
		require.NoError(t, err)
		return resp, svc, tokenRepo
	}

	t.Run("rotates the refresh token", func(t *testing.T) {
		first, svc, tokenRepo := login(t)

		second, err := svc.Refresh(ctx, first.Refresh)
		require.NoError(t, err)
		assert.NotEqual(t, first.Refresh, second.Refresh)

		// The old token is revoked and cannot be replayed.
		_, err = svc.Refresh(ctx, first.Refresh)
		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

		_, _, revoked, err := tokenRepo.GetTokenByValue(ctx, first.Refresh)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, svc, _ := login(t)

		_, err := svc.Refresh(ctx, "11111111-2222-3333-4444-555555555555")
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		first, svc, tokenRepo := login(t)
		tokenRepo.tokens[first.Refresh].expiry = time.Now().Add(-time.Minute)

		_, err := svc.Refresh(ctx, first.Refresh)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("blank token", func(t *testing.T) {
		_, svc, _ := login(t)

		_, err := svc.Refresh(ctx, "  ")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}
