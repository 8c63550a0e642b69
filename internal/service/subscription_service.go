package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/model"
)

type subscriptionStore interface {
	ListActive(ctx context.Context) ([]*model.SubscriptionType, error)
	ListAll(ctx context.Context) ([]*model.SubscriptionType, error)
	Create(ctx context.Context, s *model.SubscriptionType) error
	Update(ctx context.Context, s *model.SubscriptionType) (bool, error)
	Delete(ctx context.Context, id int64) (*model.SubscriptionType, error)
	ExpireOverdue(ctx context.Context, today time.Time) (int64, error)
}

type SubscriptionInput struct {
	Name         string
	Type         string
	Description  string
	Price        float64
	VisitsCount  *int
	DurationDays int
	IsActive     *bool
}

type SubscriptionService struct {
	subRepo subscriptionStore
	cache   Cache
	logger  *zap.Logger
	now     func() time.Time
}

func NewSubscriptionService(subRepo subscriptionStore, cache Cache, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		subRepo: subRepo,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// ListPublic возвращает активные абонементы для каталога
func (s *SubscriptionService) ListPublic(ctx context.Context) ([]*model.SubscriptionType, error) {
	return cachedList(ctx, s.cache, s.logger, cacheKeyPublicSubscriptions, s.subRepo.ListActive)
}

// ListAll возвращает все абонементы для администратора
func (s *SubscriptionService) ListAll(ctx context.Context) ([]*model.SubscriptionType, error) {
	return s.subRepo.ListAll(ctx)
}

func (in SubscriptionInput) toModel() (*model.SubscriptionType, error) {
	name := strings.TrimSpace(in.Name)
	kind := strings.TrimSpace(in.Type)
	switch {
	case name == "" || kind == "":
		return nil, invalid("Название и тип абонемента обязательны")
	case in.Price < 0:
		return nil, invalid("Цена не может быть отрицательной")
	case in.DurationDays <= 0:
		return nil, invalid("Срок действия должен быть больше нуля")
	case in.VisitsCount != nil && *in.VisitsCount <= 0:
		return nil, invalid("Количество посещений должно быть больше нуля")
	}

	return &model.SubscriptionType{
		Name:         name,
		Type:         kind,
		Description:  in.Description,
		Price:        in.Price,
		VisitsCount:  in.VisitsCount,
		DurationDays: in.DurationDays,
		IsActive:     in.IsActive == nil || *in.IsActive,
	}, nil
}

// Create создаёт тип абонемента
func (s *SubscriptionService) Create(ctx context.Context, in SubscriptionInput) (*model.SubscriptionType, error) {
	sub, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, s.logger, cacheKeyPublicSubscriptions)
	s.logger.Info("Subscription type created", zap.Int64("subscription_id", sub.ID))
	return sub, nil
}

// Update обновляет тип абонемента
func (s *SubscriptionService) Update(ctx context.Context, id int64, in SubscriptionInput) error {
	sub, err := in.toModel()
	if err != nil {
		return err
	}
	sub.ID = id

	found, err := s.subRepo.Update(ctx, sub)
	if err != nil {
		return err
	}
	if !found {
		return model.ErrSubscriptionNotFound
	}

	invalidate(ctx, s.cache, s.logger, cacheKeyPublicSubscriptions)
	s.logger.Info("Subscription type updated", zap.Int64("subscription_id", id))
	return nil
}

// Delete удаляет тип абонемента и возвращает удалённую запись
func (s *SubscriptionService) Delete(ctx context.Context, id int64) (*model.SubscriptionType, error) {
	sub, err := s.subRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, model.ErrSubscriptionNotFound
	}

	invalidate(ctx, s.cache, s.logger, cacheKeyPublicSubscriptions)
	s.logger.Info("Subscription type deleted", zap.Int64("subscription_id", id))
	return sub, nil
}

// ExpireOverdue помечает истёкшими абонементы клиентов, срок которых закончился до сегодняшнего дня
func (s *SubscriptionService) ExpireOverdue(ctx context.Context) (int64, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	expired, err := s.subRepo.ExpireOverdue(ctx, today)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		s.logger.Info("User subscriptions expired", zap.Int64("count", expired))
	}
	return expired, nil
}
