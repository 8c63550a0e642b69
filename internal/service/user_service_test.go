package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/auth"
	"github.com/Freeeeeet/fitnesshub/internal/model"
)

func TestUserService_UpdateProfile(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()

	hash, err := auth.HashPassword("old")
	require.NoError(t, err)
	admin := &model.User{Name: "Admin", Email: "admin@example.com", PasswordHash: hash, Role: model.RoleAdmin}
	require.NoError(t, users.Create(ctx, admin))
	require.NoError(t, users.Create(ctx, &model.User{Name: "Other", Email: "other@example.com", Role: model.RoleClient}))

	phone := "+7 900 000-00-00"
	u, err := svc.UpdateProfile(ctx, admin.ID, ProfileInput{Name: "Root", Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Root", u.Name)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.Equal(t, phone, *u.Phone)

	ok, err := auth.CheckPassword(users.users[admin.ID].PasswordHash, "old")
	require.NoError(t, err)
	assert.True(t, ok, "empty password keeps the old hash")

	_, err = svc.UpdateProfile(ctx, admin.ID, ProfileInput{Password: "new"})
	require.NoError(t, err)
	ok, err = auth.CheckPassword(users.users[admin.ID].PasswordHash, "new")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.UpdateProfile(ctx, admin.ID, ProfileInput{Email: "OTHER@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.UpdateProfile(ctx, 999, ProfileInput{Name: "x"})
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()
	u := &model.User{Name: "A", Email: "a@example.com", Role: model.RoleClient}
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.ErrorIs(t, svc.Delete(ctx, u.ID), model.ErrUserNotFound)
	_, err := svc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestUserService_UnlinkTelegram(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, zap.NewNop())
	ctx := context.Background()
	u := &model.User{Name: "A", Email: "a@example.com", Role: model.RoleClient, TelegramID: int64Ptr(42)}
	require.NoError(t, users.Create(ctx, u))

	got, err := svc.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, svc.UnlinkTelegram(ctx, 42))
	got, err = svc.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}
