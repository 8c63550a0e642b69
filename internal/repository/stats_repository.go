package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/repository/base"
)

type StatsRepository struct {
	*base.Repository
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{Repository: base.NewRepository(pool)}
}

// Get считает сводку. Выручка: активные абонементы, купленные в месяце now.
func (r *StatsRepository) Get(ctx context.Context, now time.Time) (*model.Stats, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'client'),
			(SELECT COUNT(*) FROM trainers WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM group_sessions WHERE is_active = TRUE),
			(SELECT COALESCE(SUM(st.price), 0)::float8
			 FROM user_subscriptions us
			 JOIN subscription_types st ON us.subscription_type_id = st.id
			 WHERE us.status = 'active'
			   AND us.purchase_date >= $1
			   AND us.purchase_date < $2)
	`

	var s model.Stats
	err := r.Pool().QueryRow(ctx, query, monthStart, monthStart.AddDate(0, 1, 0)).Scan(
		&s.TotalClients,
		&s.ActiveTrainers,
		&s.ActiveGroupSessions,
		&s.MonthlyRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &s, nil
}
