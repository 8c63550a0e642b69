package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/repository/base"
)

const subscriptionColumns = `id, name, type, description, price, visits_count, duration_days, is_active, created_at`

type SubscriptionRepository struct {
	*base.Repository
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{Repository: base.NewRepository(pool)}
}

func scanSubscription(row pgx.Row) (*model.SubscriptionType, error) {
	var s model.SubscriptionType
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Type,
		&s.Description,
		&s.Price,
		&s.VisitsCount,
		&s.DurationDays,
		&s.IsActive,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepository) list(ctx context.Context, query string) ([]*model.SubscriptionType, error) {
	rows, err := r.Pool().Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.SubscriptionType
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// ListActive возвращает активные абонементы по возрастанию цены
func (r *SubscriptionRepository) ListActive(ctx context.Context) ([]*model.SubscriptionType, error) {
	subs, err := r.list(ctx, `SELECT `+subscriptionColumns+` FROM subscription_types WHERE is_active = TRUE ORDER BY price ASC`)
	if err != nil {
		return nil, fmt.Errorf("list active subscriptions: %w", err)
	}
	return subs, nil
}

// ListAll возвращает все абонементы по типу и цене
func (r *SubscriptionRepository) ListAll(ctx context.Context) ([]*model.SubscriptionType, error) {
	subs, err := r.list(ctx, `SELECT `+subscriptionColumns+` FROM subscription_types ORDER BY type, price`)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// Create создаёт тип абонемента
func (r *SubscriptionRepository) Create(ctx context.Context, s *model.SubscriptionType) error {
	query := `
		INSERT INTO subscription_types (name, type, description, price, visits_count, duration_days, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.Pool().QueryRow(
		ctx, query,
		s.Name,
		s.Type,
		s.Description,
		s.Price,
		s.VisitsCount,
		s.DurationDays,
		s.IsActive,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

// Update обновляет тип абонемента, false если его нет
func (r *SubscriptionRepository) Update(ctx context.Context, s *model.SubscriptionType) (bool, error) {
	affected, err := base.ExecAffected(ctx, r.Pool(), `
		UPDATE subscription_types
		SET name = $1, type = $2, description = $3, price = $4, visits_count = $5, duration_days = $6, is_active = $7
		WHERE id = $8
	`, s.Name, s.Type, s.Description, s.Price, s.VisitsCount, s.DurationDays, s.IsActive, s.ID)
	if err != nil {
		return false, fmt.Errorf("update subscription: %w", err)
	}
	return affected > 0, nil
}

// Delete удаляет тип абонемента и возвращает удалённую запись (nil если её не было)
func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) (*model.SubscriptionType, error) {
	s, err := scanSubscription(r.Pool().QueryRow(ctx,
		`DELETE FROM subscription_types WHERE id = $1 RETURNING `+subscriptionColumns, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete subscription: %w", err)
	}
	return s, nil
}

// ExpireOverdue переводит активные абонементы с прошедшей датой окончания в expired
func (r *SubscriptionRepository) ExpireOverdue(ctx context.Context, today time.Time) (int64, error) {
	affected, err := base.ExecAffected(ctx, r.Pool(),
		`UPDATE user_subscriptions SET status = 'expired' WHERE status = 'active' AND end_date < $1`,
		today,
	)
	if err != nil {
		return 0, fmt.Errorf("expire subscriptions: %w", err)
	}
	return affected, nil
}
