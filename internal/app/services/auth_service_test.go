package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/vaxportal/internal/app/models/dto"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
	"github.com/rahulk/vaxportal/internal/pkg/auth"
)

func newAuthServiceForTest() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "vaxportal-test",
	})
	return NewAuthService(users, jwtService, zerolog.Nop()), users
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("register then login with the same credentials", func(t *testing.T) {
		svc, _ := newAuthServiceForTest()

		user, err := svc.Register(ctx, dto.RegisterRequest{
			Name:     "Jane Smith",
			Email:    "Coordinator@School.edu",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, "coordinator@school.edu", user.Email)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

		_, token, err := svc.Login(ctx, dto.LoginRequest{
			Email:    "coordinator@school.edu",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.Equal(t, 3600, token.ExpiresIn)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, _ := newAuthServiceForTest()
		req := dto.RegisterRequest{Name: "Jane", Email: "jane@school.edu", Password: "s3cret-pass"}

		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc, _ := newAuthServiceForTest()
		_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Jane", Email: "jane@school.edu", Password: "s3cret-pass"})
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "jane@school.edu", Password: "wrong-pass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@school.edu", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthServiceForTest()

	user, err := svc.Register(ctx, dto.RegisterRequest{Name: "Jane", Email: "jane@school.edu", Password: "s3cret-pass"})
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)

	_, err = svc.GetProfile(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
