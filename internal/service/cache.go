package service

import (
	"context"

	"go.uber.org/zap"
)

// Cache хранилище публичных списков каталога
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// Ключи кеша публичного каталога
const (
	cacheKeyPublicTrainers      = "trainers:public"
	cacheKeyPublicSubscriptions = "subscriptions:public"
	cacheKeyPublicSessions      = "sessions:public"
)

// cachedList читает список из кеша или загружает его через load.
// Ошибки кеша не мешают ответу, они только логируются.
func cachedList[T any](ctx context.Context, c Cache, logger *zap.Logger, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var items []T
	hit, err := c.Get(ctx, key, &items)
	if err != nil {
		logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return items, nil
	}

	items, err = load(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, key, items); err != nil {
		logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return items, nil
}

func invalidate(ctx context.Context, c Cache, logger *zap.Logger, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		logger.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
