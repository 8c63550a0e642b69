package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) ExpireOverdue(context.Context) (int64, error) {
	e.calls.Add(1)
	return 1, e.err
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	exp := &countingExpirer{}
	s := NewScheduler(exp, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return exp.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := exp.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, exp.calls.Load())
}

func TestScheduler_ContinuesAfterError(t *testing.T) {
	exp := &countingExpirer{err: errors.New("db down")}
	s := NewScheduler(exp, 10*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return exp.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	exp := &countingExpirer{}
	s := NewScheduler(exp, time.Hour, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	s.Start(ctx)
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Equal(t, int32(1), exp.calls.Load())
	s.Stop()
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		logger, err := NewLogger(env)
		assert.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
