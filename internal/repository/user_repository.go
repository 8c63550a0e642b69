package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/repository/base"
)

const userColumns = `id, name, email, password, phone, role, telegram_id, created_at`

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.TelegramID,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func insertUser(ctx context.Context, q base.Querier, user *model.User) error {
	query := `
		INSERT INTO users (name, email, password, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return q.QueryRow(
		ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := insertUser(ctx, r.Pool(), user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(r.Pool().QueryRow(ctx, query, arg))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := r.getOne(ctx, "id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail получает пользователя по email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := r.getOne(ctx, "email = $1", email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetByTelegramID получает пользователя по привязанному Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := r.getOne(ctx, "telegram_id = $1", telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return user, nil
}

// List возвращает всех пользователей, новые первыми
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// EmailTaken проверяет занят ли email другим пользователем
func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.Pool().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func updateUser(ctx context.Context, q base.Querier, user *model.User) (int64, error) {
	if user.PasswordHash != "" {
		return base.ExecAffected(ctx, q,
			`UPDATE users SET name = $1, email = $2, phone = $3, password = $4 WHERE id = $5`,
			user.Name, user.Email, user.Phone, user.PasswordHash, user.ID,
		)
	}
	return base.ExecAffected(ctx, q,
		`UPDATE users SET name = $1, email = $2, phone = $3 WHERE id = $4`,
		user.Name, user.Email, user.Phone, user.ID,
	)
}

// Update обновляет имя, email и телефон. Пароль меняется только если PasswordHash задан.
func (r *UserRepository) Update(ctx context.Context, user *model.User) (bool, error) {
	affected, err := updateUser(ctx, r.Pool(), user)
	if err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	return affected > 0, nil
}

// SetTelegramID привязывает Telegram аккаунт к пользователю (nil отвязывает).
// Прежняя привязка этого Telegram ID к другому пользователю снимается.
func (r *UserRepository) SetTelegramID(ctx context.Context, userID int64, telegramID *int64) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if telegramID != nil {
			_, err := tx.Exec(ctx,
				`UPDATE users SET telegram_id = NULL WHERE telegram_id = $1 AND id <> $2`,
				*telegramID, userID,
			)
			if err != nil {
				return fmt.Errorf("unlink telegram: %w", err)
			}
		}

		_, err := tx.Exec(ctx, `UPDATE users SET telegram_id = $1 WHERE id = $2`, telegramID, userID)
		if err != nil {
			return fmt.Errorf("link telegram: %w", err)
		}
		return nil
	})
}

// ClearTelegramID отвязывает Telegram аккаунт
func (r *UserRepository) ClearTelegramID(ctx context.Context, telegramID int64) error {
	_, err := r.Pool().Exec(ctx, `UPDATE users SET telegram_id = NULL WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("clear telegram id: %w", err)
	}
	return nil
}

// Delete удаляет пользователя со всеми зависимыми записями в одной транзакции.
// Возвращает false если пользователя нет.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		var err error
		deleted, err = deleteUserCascade(ctx, tx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return deleted, nil
}

func deleteUserCascade(ctx context.Context, tx pgx.Tx, userID int64) (bool, error) {
	var lockedID int64
	err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&lockedID)
	if err != nil {
		if base.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("lock user: %w", err)
	}

	statements := []string{
		`DELETE FROM bookings WHERE user_id = $1`,
		`DELETE FROM personal_bookings WHERE user_id = $1`,
		`DELETE FROM reviews WHERE user_id = $1`,
		`DELETE FROM user_subscriptions WHERE user_id = $1`,
		`DELETE FROM trainer_schedule WHERE trainer_id IN (SELECT id FROM trainers WHERE user_id = $1)`,
		`DELETE FROM group_sessions WHERE trainer_id IN (SELECT id FROM trainers WHERE user_id = $1)`,
		`DELETE FROM trainers WHERE user_id = $1`,
		`DELETE FROM users WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, userID); err != nil {
			return false, err
		}
	}
	return true, nil
}
