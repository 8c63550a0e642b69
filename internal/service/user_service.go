package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/auth"
	"github.com/Freeeeeet/fitnesshub/internal/model"
)

type userStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, user *model.User) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ClearTelegramID(ctx context.Context, telegramID int64) error
}

// ProfileInput изменения профиля. Пустой Password оставляет пароль прежним.
type ProfileInput struct {
	Name     string
	Email    string
	Phone    *string
	Password string
}

type UserService struct {
	userRepo userStore
	logger   *zap.Logger
}

func NewUserService(userRepo userStore, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List возвращает всех пользователей
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// GetByID получает пользователя или ErrUserNotFound
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// GetByTelegramID получает пользователя по привязанному Telegram ID (nil если не привязан)
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// UnlinkTelegram отвязывает Telegram аккаунт
func (s *UserService) UnlinkTelegram(ctx context.Context, telegramID int64) error {
	return s.userRepo.ClearTelegramID(ctx, telegramID)
}

// UpdateProfile обновляет имя, email, телефон и, если задан, пароль
func (s *UserService) UpdateProfile(ctx context.Context, id int64, in ProfileInput) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(in.Email); email != "" {
		taken, err := s.userRepo.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}

	update := *user
	update.PasswordHash = ""
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = hash
	}

	found, err := s.userRepo.Update(ctx, &update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if !found {
		return nil, model.ErrUserNotFound
	}

	s.logger.Info("Profile updated",
		zap.Int64("user_id", id),
		zap.Bool("password_changed", in.Password != ""),
	)
	return s.GetByID(ctx, id)
}

// Delete удаляет пользователя со всеми его данными
func (s *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrUserNotFound
	}

	s.logger.Info("User deleted", zap.Int64("user_id", id))
	return nil
}
