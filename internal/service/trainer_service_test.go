package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/model"
)

type trainerFixture struct {
	svc      *TrainerService
	trainers *fakeTrainerStore
	users    *fakeUserStore
	sender   *recordingSender
	cache    *memCache
}

func newTrainerFixture(t *testing.T) *trainerFixture {
	t.Helper()
	f := &trainerFixture{
		trainers: newFakeTrainerStore(),
		users:    newFakeUserStore(),
		sender:   &recordingSender{},
		cache:    newMemCache(),
	}
	f.svc = NewTrainerService(f.trainers, f.users, f.sender, f.cache, zap.NewNop())
	return f
}

func TestTrainerService_Create(t *testing.T) {
	f := newTrainerFixture(t)

	p, err := f.svc.Create(context.Background(), TrainerInput{
		Name:           "Anna",
		Email:          "Anna@Gym.ru",
		Password:       "secret",
		Experience:     5,
		Specialization: "Йога",
	})
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, "anna@gym.ru", p.Email)
	assert.True(t, p.IsActive)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "anna@gym.ru", f.sender.sent[0].To)
	assert.Contains(t, f.cache.deleted, cacheKeyPublicTrainers)
}

func TestTrainerService_CreateToleratesMailFailure(t *testing.T) {
	f := newTrainerFixture(t)
	f.sender.err = errors.New("smtp down")

	_, err := f.svc.Create(context.Background(), TrainerInput{Name: "Anna", Email: "anna@gym.ru", Password: "secret"})
	require.NoError(t, err)
	assert.Len(t, f.trainers.trainers, 1)
}

func TestTrainerService_CreateRejects(t *testing.T) {
	f := newTrainerFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &model.User{Email: "taken@gym.ru"}))

	_, err := f.svc.Create(ctx, TrainerInput{Name: "A", Email: "taken@gym.ru", Password: "p"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.Create(ctx, TrainerInput{Name: "A", Email: "new@gym.ru"})
	_, ok := AsValidation(err)
	assert.True(t, ok)

	assert.Empty(t, f.sender.sent)
}

func TestTrainerService_ListPublicCached(t *testing.T) {
	f := newTrainerFixture(t)
	ctx := context.Background()
	f.trainers.trainers[1] = &model.TrainerProfile{Trainer: model.Trainer{ID: 1, IsActive: true}, Name: "Anna"}
	f.trainers.trainers[2] = &model.TrainerProfile{Trainer: model.Trainer{ID: 2}, Name: "Hidden"}

	first, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	second, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.trainers.listHits)
}

func TestTrainerService_UpdateAndDelete(t *testing.T) {
	f := newTrainerFixture(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, TrainerInput{Name: "Anna", Email: "anna@gym.ru", Password: "p"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Update(ctx, p.ID, TrainerInput{Specialization: "Бокс", IsActive: boolPtr(false)}))
	got := f.trainers.trainers[p.ID]
	assert.Equal(t, "Anna", got.Name)
	assert.Equal(t, "Бокс", got.Specialization)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, f.svc.Update(ctx, 404, TrainerInput{}), model.ErrTrainerNotFound)

	require.NoError(t, f.svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, p.ID), model.ErrTrainerNotFound)
	assert.Contains(t, f.cache.deleted, cacheKeyPublicSessions)
}
