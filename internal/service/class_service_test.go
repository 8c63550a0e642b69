package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

type fakeClassStore struct {
	types    map[int64]*model.ClassType
	sessions map[int64]*model.GroupSession
	nextID   int64
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{
		types:    make(map[int64]*model.ClassType),
		sessions: make(map[int64]*model.GroupSession),
	}
}

func (s *fakeClassStore) ListActiveClassTypes(context.Context) ([]*model.ClassType, error) {
	var out []*model.ClassType
	for _, ct := range s.types {
		if ct.IsActive {
			out = append(out, ct)
		}
	}
	return out, nil
}

func (s *fakeClassStore) CreateClassType(_ context.Context, ct *model.ClassType) error {
	s.nextID++
	ct.ID = s.nextID
	s.types[ct.ID] = ct
	return nil
}

func (s *fakeClassStore) UpdateClassType(_ context.Context, ct *model.ClassType) (bool, error) {
	if _, ok := s.types[ct.ID]; !ok {
		return false, nil
	}
	s.types[ct.ID] = ct
	return true, nil
}

func (s *fakeClassStore) ListActiveSessions(context.Context) ([]*model.GroupSession, error) {
	var out []*model.GroupSession
	for _, gs := range s.sessions {
		if gs.IsActive {
			out = append(out, gs)
		}
	}
	return out, nil
}

func (s *fakeClassStore) ListSessions(context.Context) ([]*model.GroupSession, error) {
	var out []*model.GroupSession
	for _, gs := range s.sessions {
		out = append(out, gs)
	}
	return out, nil
}

func (s *fakeClassStore) ListSessionsByTrainer(_ context.Context, trainerID int64) ([]*model.GroupSession, error) {
	var out []*model.GroupSession
	for _, gs := range s.sessions {
		if gs.TrainerID != nil && *gs.TrainerID == trainerID {
			out = append(out, gs)
		}
	}
	return out, nil
}

func (s *fakeClassStore) GetSession(_ context.Context, id int64) (*model.GroupSession, error) {
	return s.sessions[id], nil
}

func (s *fakeClassStore) CreateSession(_ context.Context, gs *model.GroupSession) error {
	s.nextID++
	gs.ID = s.nextID
	s.sessions[gs.ID] = gs
	return nil
}

func (s *fakeClassStore) UpdateSession(_ context.Context, gs *model.GroupSession) (bool, error) {
	if _, ok := s.sessions[gs.ID]; !ok {
		return false, nil
	}
	s.sessions[gs.ID] = gs
	return true, nil
}

func (s *fakeClassStore) DeleteSession(_ context.Context, id int64) (*model.GroupSession, error) {
	gs, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	delete(s.sessions, id)
	return gs, nil
}

func newClassService(t *testing.T) (*ClassService, *fakeClassStore, *fakeTrainerStore, *memCache) {
	t.Helper()
	store := newFakeClassStore()
	trainers := newFakeTrainerStore()
	cache := newMemCache()
	return NewClassService(store, trainers, cache, zap.NewNop()), store, trainers, cache
}

func TestClassService_CreateSession(t *testing.T) {
	svc, _, _, cache := newClassService(t)

	gs, err := svc.CreateSession(context.Background(), SessionInput{
		Name:            "Йога",
		Days:            []string{"Monday", "wednesday", "monday"},
		Time:            "18:30",
		Duration:        60,
		MaxParticipants: 12,
		TrainerID:       int64Ptr(trainerID),
	})
	require.NoError(t, err)

	assert.Equal(t, []schedule.Weekday{schedule.Monday, schedule.Wednesday}, gs.Days)
	assert.Equal(t, schedule.NewTimeOfDay(18, 30), gs.Time)
	assert.True(t, gs.IsActive)
	assert.Contains(t, cache.deleted, cacheKeyPublicSessions)
}

func TestClassService_CreateSessionValidation(t *testing.T) {
	valid := func() SessionInput {
		return SessionInput{Name: "Йога", Days: []string{"monday"}, Time: "10:00", Duration: 60, MaxParticipants: 10}
	}
	tests := []struct {
		name   string
		mutate func(*SessionInput)
	}{
		{name: "no days", mutate: func(in *SessionInput) { in.Days = nil }},
		{name: "bad day", mutate: func(in *SessionInput) { in.Days = []string{"monday", "blursday"} }},
		{name: "bad time", mutate: func(in *SessionInput) { in.Time = "10h" }},
		{name: "negative duration", mutate: func(in *SessionInput) { in.Duration = -30 }},
		{name: "no name", mutate: func(in *SessionInput) { in.Name = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _, _ := newClassService(t)
			in := valid()
			tt.mutate(&in)

			_, err := svc.CreateSession(context.Background(), in)
			_, ok := AsValidation(err)
			assert.True(t, ok, "got %v", err)
			assert.Empty(t, store.sessions)
		})
	}
}

func TestClassService_TrainerSessions(t *testing.T) {
	svc, store, trainers, _ := newClassService(t)
	ctx := context.Background()
	trainers.trainers[trainerID] = &model.TrainerProfile{Trainer: model.Trainer{ID: trainerID, UserID: 70}}
	store.sessions[1] = &model.GroupSession{ID: 1, TrainerID: int64Ptr(trainerID), IsActive: true}
	store.sessions[2] = &model.GroupSession{ID: 2, IsActive: true}

	sessions, err := svc.ListTrainerSessions(ctx, 70)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(1), sessions[0].ID)

	_, err = svc.ListTrainerSessions(ctx, 71)
	assert.ErrorIs(t, err, model.ErrTrainerNotFound)
}

func TestClassService_SessionNotFound(t *testing.T) {
	svc, _, _, _ := newClassService(t)
	ctx := context.Background()

	_, err := svc.GetSession(ctx, 1)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	_, err = svc.DeleteSession(ctx, 1)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	err = svc.UpdateSession(ctx, 1, SessionInput{Name: "x", Days: []string{"friday"}, Time: "10:00", Duration: 45, MaxParticipants: 5})
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}
