package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/fitnesshub/internal/model"
)

type statsStore interface {
	Get(ctx context.Context, now time.Time) (*model.Stats, error)
}

type StatsService struct {
	statsRepo statsStore
	now       func() time.Time
}

func NewStatsService(statsRepo statsStore) *StatsService {
	return &StatsService{statsRepo: statsRepo, now: time.Now}
}

// Get возвращает сводку для панели администратора
func (s *StatsService) Get(ctx context.Context) (*model.Stats, error) {
	return s.statsRepo.Get(ctx, s.now())
}
