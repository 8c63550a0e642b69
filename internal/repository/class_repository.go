package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/repository/base"
)

const sessionSelect = `
	SELECT gs.id, gs.name, gs.description, gs.days, gs.time, gs.duration, gs.max_participants,
	       gs.current_participants, gs.is_active, gs.trainer_id, gs.created_at, gs.updated_at, u.name
	FROM group_sessions gs
	LEFT JOIN trainers t ON gs.trainer_id = t.id
	LEFT JOIN users u ON t.user_id = u.id
`

// ClassRepository хранит типы занятий и групповые занятия
type ClassRepository struct {
	*base.Repository
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{Repository: base.NewRepository(pool)}
}

// ListActiveClassTypes возвращает активные типы занятий
func (r *ClassRepository) ListActiveClassTypes(ctx context.Context) ([]*model.ClassType, error) {
	rows, err := r.Pool().Query(ctx, `
		SELECT id, name, description, difficulty, is_active, created_at
		FROM class_types
		WHERE is_active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list class types: %w", err)
	}
	defer rows.Close()

	var types []*model.ClassType
	for rows.Next() {
		var ct model.ClassType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Description, &ct.Difficulty, &ct.IsActive, &ct.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan class type: %w", err)
		}
		types = append(types, &ct)
	}
	return types, rows.Err()
}

// CreateClassType создаёт тип занятия
func (r *ClassRepository) CreateClassType(ctx context.Context, ct *model.ClassType) error {
	err := r.Pool().QueryRow(ctx, `
		INSERT INTO class_types (name, description, difficulty, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, ct.Name, ct.Description, ct.Difficulty, ct.IsActive).Scan(&ct.ID, &ct.CreatedAt)
	if err != nil {
		return fmt.Errorf("create class type: %w", err)
	}
	return nil
}

// UpdateClassType обновляет тип занятия, false если его нет
func (r *ClassRepository) UpdateClassType(ctx context.Context, ct *model.ClassType) (bool, error) {
	affected, err := base.ExecAffected(ctx, r.Pool(),
		`UPDATE class_types SET name = $1, description = $2, difficulty = $3, is_active = $4 WHERE id = $5`,
		ct.Name, ct.Description, ct.Difficulty, ct.IsActive, ct.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update class type: %w", err)
	}
	return affected > 0, nil
}

func scanSession(row pgx.Row) (*model.GroupSession, error) {
	var (
		s    model.GroupSession
		days []string
		at   pgtype.Time
	)
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&days,
		&at,
		&s.Duration,
		&s.MaxParticipants,
		&s.CurrentParticipants,
		&s.IsActive,
		&s.TrainerID,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.TrainerName,
	)
	if err != nil {
		return nil, err
	}
	s.Days = base.Weekdays(days)
	s.Time = base.TimeOfDay(at)
	return &s, nil
}

func (r *ClassRepository) listSessions(ctx context.Context, query string, args ...any) ([]*model.GroupSession, error) {
	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*model.GroupSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListActiveSessions возвращает активные групповые занятия по названию
func (r *ClassRepository) ListActiveSessions(ctx context.Context) ([]*model.GroupSession, error) {
	sessions, err := r.listSessions(ctx, sessionSelect+` WHERE gs.is_active = TRUE ORDER BY gs.name`)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	return sessions, nil
}

// ListSessions возвращает все групповые занятия, новые первыми
func (r *ClassRepository) ListSessions(ctx context.Context) ([]*model.GroupSession, error) {
	sessions, err := r.listSessions(ctx, sessionSelect+` ORDER BY gs.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// ListSessionsByTrainer возвращает занятия тренера
func (r *ClassRepository) ListSessionsByTrainer(ctx context.Context, trainerID int64) ([]*model.GroupSession, error) {
	sessions, err := r.listSessions(ctx, sessionSelect+` WHERE gs.trainer_id = $1 ORDER BY gs.name`, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list trainer sessions: %w", err)
	}
	return sessions, nil
}

// GetSession получает занятие по ID
func (r *ClassRepository) GetSession(ctx context.Context, id int64) (*model.GroupSession, error) {
	s, err := scanSession(r.Pool().QueryRow(ctx, sessionSelect+` WHERE gs.id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// CreateSession создаёт групповое занятие
func (r *ClassRepository) CreateSession(ctx context.Context, s *model.GroupSession) error {
	err := r.Pool().QueryRow(ctx, `
		INSERT INTO group_sessions (name, description, days, time, max_participants, duration, is_active, trainer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`,
		s.Name,
		s.Description,
		base.WeekdayStrings(s.Days),
		base.TimeParam(s.Time),
		s.MaxParticipants,
		s.Duration,
		s.IsActive,
		s.TrainerID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// UpdateSession обновляет занятие, false если его нет
func (r *ClassRepository) UpdateSession(ctx context.Context, s *model.GroupSession) (bool, error) {
	affected, err := base.ExecAffected(ctx, r.Pool(), `
		UPDATE group_sessions
		SET name = $1, description = $2, days = $3, time = $4, max_participants = $5,
		    duration = $6, is_active = $7, trainer_id = $8, updated_at = now()
		WHERE id = $9
	`,
		s.Name,
		s.Description,
		base.WeekdayStrings(s.Days),
		base.TimeParam(s.Time),
		s.MaxParticipants,
		s.Duration,
		s.IsActive,
		s.TrainerID,
		s.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update session: %w", err)
	}
	return affected > 0, nil
}

// DeleteSession удаляет занятие и возвращает удалённую запись (nil если её не было)
func (r *ClassRepository) DeleteSession(ctx context.Context, id int64) (*model.GroupSession, error) {
	var deleted *model.GroupSession
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		s, err := scanSession(tx.QueryRow(ctx, sessionSelect+` WHERE gs.id = $1 FOR UPDATE OF gs`, id))
		if err != nil {
			if base.IsNotFound(err) {
				return nil
			}
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM group_sessions WHERE id = $1`, id); err != nil {
			return err
		}
		deleted = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete session: %w", err)
	}
	return deleted, nil
}
