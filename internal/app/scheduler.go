package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type subscriptionExpirer interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

// Scheduler периодически переводит просроченные абонементы клиентов в expired
type Scheduler struct {
	expirer  subscriptionExpirer
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewScheduler(expirer subscriptionExpirer, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		expirer:  expirer,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновую задачу; первый проход выполняется сразу
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Stop останавливает задачу и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Subscription sweep stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Subscription sweep cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	expired, err := s.expirer.ExpireOverdue(ctx)
	if err != nil {
		s.logger.Error("Failed to expire subscriptions", zap.Error(err))
		return
	}
	s.logger.Debug("Subscription sweep completed", zap.Int64("expired", expired))
}
