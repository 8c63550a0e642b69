package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/model"
)

func newAuthService(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	return NewAuthService(users, fakeTokens{}, zap.NewNop()), users
}

func TestAuthService_Register(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Name: " Ivan ", Email: " Ivan@Example.COM ", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "token-client", res.Token)
	assert.Equal(t, "Ivan", res.User.Name)
	assert.Equal(t, "ivan@example.com", res.User.Email)
	assert.Equal(t, model.RoleClient, res.User.Role)
	assert.NotEqual(t, "secret", users.users[res.User.ID].PasswordHash)

	_, err = svc.Register(ctx, RegisterInput{Name: "Other", Email: "ivan@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_RegisterRejects(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@b.c", Password: "p", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	_, err = svc.Register(ctx, RegisterInput{Name: "A", Email: "", Password: "p"})
	_, ok := AsValidation(err)
	assert.True(t, ok)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Name: "Ivan", Email: "ivan@example.com", Password: "secret"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, "IVAN@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-client", res.Token)

	_, err = svc.Login(ctx, "ivan@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "")
	_, ok := AsValidation(err)
	assert.True(t, ok)
}

func TestAuthService_LinkTelegram(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()
	first, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pa"})
	require.NoError(t, err)
	second, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "b@example.com", Password: "pb"})
	require.NoError(t, err)

	u, err := svc.LinkTelegram(ctx, "a@example.com", "pa", 555)
	require.NoError(t, err)
	require.NotNil(t, u.TelegramID)
	assert.Equal(t, int64(555), *u.TelegramID)

	// тот же чат переходит к другому пользователю
	_, err = svc.LinkTelegram(ctx, "b@example.com", "pb", 555)
	require.NoError(t, err)
	assert.Nil(t, users.users[first.User.ID].TelegramID)
	assert.Equal(t, int64(555), *users.users[second.User.ID].TelegramID)

	_, err = svc.LinkTelegram(ctx, "a@example.com", "bad", 556)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "root")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "Admin", "ADMIN@example.com", "root")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, users.users, 1)

	created, err = svc.EnsureAdmin(ctx, "Admin", "", "")
	require.NoError(t, err)
	assert.False(t, created)

	res, err := svc.Login(ctx, "admin@example.com", "root")
	require.NoError(t, err)
	assert.Equal(t, "token-admin", res.Token)
}
