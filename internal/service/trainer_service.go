package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/auth"
	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/notify"
	"github.com/Freeeeeet/fitnesshub/internal/repository/base"
)

const welcomeEmailTimeout = 10 * time.Second

type trainerStore interface {
	ListActive(ctx context.Context) ([]*model.TrainerProfile, error)
	ListAll(ctx context.Context) ([]*model.TrainerProfile, error)
	GetByID(ctx context.Context, id int64) (*model.TrainerProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*model.TrainerProfile, error)
	CreateWithUser(ctx context.Context, user *model.User, trainer *model.Trainer) error
	UpdateWithUser(ctx context.Context, user *model.User, trainer *model.Trainer) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type emailChecker interface {
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

// Sender отправляет письма
type Sender interface {
	Send(ctx context.Context, msg notify.Message) error
}

// TrainerInput данные тренера. Пустой Password при обновлении оставляет пароль прежним.
type TrainerInput struct {
	Name           string
	Email          string
	Password       string
	Phone          *string
	Experience     int
	Specialization string
	Bio            string
	IsActive       *bool
}

type TrainerService struct {
	trainerRepo trainerStore
	emails      emailChecker
	sender      Sender
	cache       Cache
	logger      *zap.Logger
}

func NewTrainerService(trainerRepo trainerStore, emails emailChecker, sender Sender, cache Cache, logger *zap.Logger) *TrainerService {
	return &TrainerService{
		trainerRepo: trainerRepo,
		emails:      emails,
		sender:      sender,
		cache:       cache,
		logger:      logger,
	}
}

// ListPublic возвращает активных тренеров для каталога
func (s *TrainerService) ListPublic(ctx context.Context) ([]*model.TrainerProfile, error) {
	return cachedList(ctx, s.cache, s.logger, cacheKeyPublicTrainers, s.trainerRepo.ListActive)
}

// ListAll возвращает всех тренеров для администратора
func (s *TrainerService) ListAll(ctx context.Context) ([]*model.TrainerProfile, error) {
	return s.trainerRepo.ListAll(ctx)
}

// GetByUserID возвращает профиль тренера, связанный с пользователем
func (s *TrainerService) GetByUserID(ctx context.Context, userID int64) (*model.TrainerProfile, error) {
	p, err := s.trainerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrTrainerNotFound
	}
	return p, nil
}

// Create создаёт пользователя-тренера с профилем и отправляет приветственное письмо
func (s *TrainerService) Create(ctx context.Context, in TrainerInput) (*model.TrainerProfile, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, invalid("Обязательные поля: имя, email, пароль")
	}

	taken, err := s.emails.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         model.RoleTrainer,
	}
	trainer := &model.Trainer{
		Experience:     in.Experience,
		Specialization: in.Specialization,
		Bio:            in.Bio,
		IsActive:       in.IsActive == nil || *in.IsActive,
	}
	if err := s.trainerRepo.CreateWithUser(ctx, user, trainer); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	invalidate(ctx, s.cache, s.logger, cacheKeyPublicTrainers)
	s.logger.Info("Trainer created",
		zap.Int64("trainer_id", trainer.ID),
		zap.Int64("user_id", user.ID),
	)

	s.sendWelcome(ctx, user)

	return &model.TrainerProfile{
		Trainer: *trainer,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
	}, nil
}

// sendWelcome ошибки отправки только логируются, тренер уже создан
func (s *TrainerService) sendWelcome(ctx context.Context, user *model.User) {
	msg, err := notify.TrainerWelcome(user.Name, user.Email)
	if err != nil {
		s.logger.Error("Failed to render welcome email", zap.Error(err))
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, welcomeEmailTimeout)
	defer cancel()
	if err := s.sender.Send(sendCtx, msg); err != nil {
		s.logger.Warn("Failed to send welcome email",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}
}

// Update обновляет тренера и его пользователя
func (s *TrainerService) Update(ctx context.Context, id int64, in TrainerInput) error {
	current, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return model.ErrTrainerNotFound
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = current.Name
	}
	email := normalizeEmail(in.Email)
	if email == "" {
		email = current.Email
	}
	if email != current.Email {
		taken, err := s.emails.EmailTaken(ctx, email, current.UserID)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
	}

	user := &model.User{
		ID:    current.UserID,
		Name:  name,
		Email: email,
		Phone: in.Phone,
	}
	if in.Password != "" {
		user.PasswordHash, err = auth.HashPassword(in.Password)
		if err != nil {
			return err
		}
	}

	isActive := current.IsActive
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	trainer := &model.Trainer{
		ID:             id,
		Experience:     in.Experience,
		Specialization: in.Specialization,
		Bio:            in.Bio,
		IsActive:       isActive,
	}

	found, err := s.trainerRepo.UpdateWithUser(ctx, user, trainer)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	if !found {
		return model.ErrTrainerNotFound
	}

	invalidate(ctx, s.cache, s.logger, cacheKeyPublicTrainers)
	s.logger.Info("Trainer updated", zap.Int64("trainer_id", id))
	return nil
}

// Delete удаляет тренера вместе с пользователем и расписанием
func (s *TrainerService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.trainerRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete trainer: %w", err)
	}
	if !deleted {
		return model.ErrTrainerNotFound
	}

	invalidate(ctx, s.cache, s.logger, cacheKeyPublicTrainers, cacheKeyPublicSessions)
	s.logger.Info("Trainer deleted", zap.Int64("trainer_id", id))
	return nil
}
