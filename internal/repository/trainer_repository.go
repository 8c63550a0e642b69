package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/repository/base"
)

const trainerProfileSelect = `
	SELECT t.id, t.user_id, t.experience, t.specialization, t.bio, t.rating, t.is_active, t.created_at,
	       u.name, u.email, u.phone
	FROM trainers t
	JOIN users u ON t.user_id = u.id
`

type TrainerRepository struct {
	*base.Repository
}

func NewTrainerRepository(pool *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{Repository: base.NewRepository(pool)}
}

func scanTrainerProfile(row pgx.Row) (*model.TrainerProfile, error) {
	var p model.TrainerProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Experience,
		&p.Specialization,
		&p.Bio,
		&p.Rating,
		&p.IsActive,
		&p.CreatedAt,
		&p.Name,
		&p.Email,
		&p.Phone,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TrainerRepository) list(ctx context.Context, query string) ([]*model.TrainerProfile, error) {
	rows, err := r.Pool().Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainers []*model.TrainerProfile
	for rows.Next() {
		p, err := scanTrainerProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trainer: %w", err)
		}
		trainers = append(trainers, p)
	}
	return trainers, rows.Err()
}

// ListActive возвращает активных тренеров по убыванию рейтинга
func (r *TrainerRepository) ListActive(ctx context.Context) ([]*model.TrainerProfile, error) {
	trainers, err := r.list(ctx, trainerProfileSelect+` WHERE t.is_active = TRUE ORDER BY t.rating DESC, t.id`)
	if err != nil {
		return nil, fmt.Errorf("list active trainers: %w", err)
	}
	return trainers, nil
}

// ListAll возвращает всех тренеров, новые первыми
func (r *TrainerRepository) ListAll(ctx context.Context) ([]*model.TrainerProfile, error) {
	trainers, err := r.list(ctx, trainerProfileSelect+` ORDER BY t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	return trainers, nil
}

// GetByID получает тренера по ID
func (r *TrainerRepository) GetByID(ctx context.Context, id int64) (*model.TrainerProfile, error) {
	p, err := scanTrainerProfile(r.Pool().QueryRow(ctx, trainerProfileSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trainer by id: %w", err)
	}
	return p, nil
}

// GetByUserID получает профиль тренера по ID пользователя
func (r *TrainerRepository) GetByUserID(ctx context.Context, userID int64) (*model.TrainerProfile, error) {
	p, err := scanTrainerProfile(r.Pool().QueryRow(ctx, trainerProfileSelect+` WHERE t.user_id = $1`, userID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trainer by user id: %w", err)
	}
	return p, nil
}

// CreateWithUser создаёт пользователя с ролью trainer и его профиль в одной транзакции
func (r *TrainerRepository) CreateWithUser(ctx context.Context, user *model.User, trainer *model.Trainer) error {
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		user.Role = model.RoleTrainer
		if err := insertUser(ctx, tx, user); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		trainer.UserID = user.ID
		query := `
			INSERT INTO trainers (user_id, experience, specialization, bio, is_active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, rating, created_at
		`
		return tx.QueryRow(
			ctx, query,
			trainer.UserID,
			trainer.Experience,
			trainer.Specialization,
			trainer.Bio,
			trainer.IsActive,
		).Scan(&trainer.ID, &trainer.Rating, &trainer.CreatedAt)
	})
	if err != nil {
		return fmt.Errorf("create trainer: %w", err)
	}
	return nil
}

// UpdateWithUser обновляет данные пользователя и профиль тренера.
// user.ID берётся из профиля; возвращает false если тренера нет.
func (r *TrainerRepository) UpdateWithUser(ctx context.Context, user *model.User, trainer *model.Trainer) (bool, error) {
	found := false
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT user_id FROM trainers WHERE id = $1 FOR UPDATE`, trainer.ID).Scan(&user.ID)
		if err != nil {
			if base.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("lock trainer: %w", err)
		}
		found = true
		trainer.UserID = user.ID

		if _, err := updateUser(ctx, tx, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE trainers SET experience = $1, specialization = $2, bio = $3, is_active = $4 WHERE id = $5`,
			trainer.Experience, trainer.Specialization, trainer.Bio, trainer.IsActive, trainer.ID,
		)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("update trainer: %w", err)
	}
	return found, nil
}

// Delete удаляет тренера вместе с его пользователем
func (r *TrainerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		var userID int64
		err := tx.QueryRow(ctx, `SELECT user_id FROM trainers WHERE id = $1`, id).Scan(&userID)
		if err != nil {
			if base.IsNotFound(err) {
				return nil
			}
			return err
		}
		deleted, err = deleteUserCascade(ctx, tx, userID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete trainer: %w", err)
	}
	return deleted, nil
}
