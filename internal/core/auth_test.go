package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastehub/pkg/models"
)

func newTestAuthService(repo *fakeUserRepo) AuthService {
	return NewAuthService(repo, "test-secret", "tastehub-test", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterRequest{Username: "alex", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "alex", user.Username)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)

	resp, err := svc.Login(ctx, models.LoginRequest{Username: "alex", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Greater(t, resp.ExpiresIn, 0)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "ab", Password: "password123"})
	assert.Error(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "alex", Password: "short"})
	assert.Error(t, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alex", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "alex", Password: "password456"})
	assert.ErrorIs(t, err, models.ErrUsernameExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "alex", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alex", Password: "wrong-password"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{Username: "alex", Password: "password123"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, models.LoginRequest{Username: "alex", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.ValidateToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	repo := newFakeUserRepo()
	ctx := context.Background()

	issuer := newTestAuthService(repo)
	_, err := issuer.Register(ctx, models.RegisterRequest{Username: "alex", Password: "password123"})
	require.NoError(t, err)
	resp, err := issuer.Login(ctx, models.LoginRequest{Username: "alex", Password: "password123"})
	require.NoError(t, err)

	verifier := NewAuthService(repo, "other-secret", "tastehub-test", time.Hour)
	_, err = verifier.ValidateToken(ctx, resp.Token)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}
