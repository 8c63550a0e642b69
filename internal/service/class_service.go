package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

type classStore interface {
	ListActiveClassTypes(ctx context.Context) ([]*model.ClassType, error)
	CreateClassType(ctx context.Context, ct *model.ClassType) error
	UpdateClassType(ctx context.Context, ct *model.ClassType) (bool, error)

	ListActiveSessions(ctx context.Context) ([]*model.GroupSession, error)
	ListSessions(ctx context.Context) ([]*model.GroupSession, error)
	ListSessionsByTrainer(ctx context.Context, trainerID int64) ([]*model.GroupSession, error)
	GetSession(ctx context.Context, id int64) (*model.GroupSession, error)
	CreateSession(ctx context.Context, s *model.GroupSession) error
	UpdateSession(ctx context.Context, s *model.GroupSession) (bool, error)
	DeleteSession(ctx context.Context, id int64) (*model.GroupSession, error)
}

type trainerLookup interface {
	GetByUserID(ctx context.Context, userID int64) (*model.TrainerProfile, error)
}

type ClassTypeInput struct {
	Name        string
	Description string
	Difficulty  string
	IsActive    *bool
}

// SessionInput данные группового занятия. Days: ключи дней недели, Time: HH:MM или HH:MM:SS.
type SessionInput struct {
	Name            string
	Description     string
	Days            []string
	Time            string
	Duration        int
	MaxParticipants int
	TrainerID       *int64
	IsActive        *bool
}

// SessionSummary краткая запись занятия для списков администратора
type SessionSummary struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	Time     schedule.TimeOfDay `json:"time"`
	Duration int                `json:"duration"`
	Days     []schedule.Weekday `json:"days"`
}

type ClassService struct {
	classRepo classStore
	trainers  trainerLookup
	cache     Cache
	logger    *zap.Logger
}

func NewClassService(classRepo classStore, trainers trainerLookup, cache Cache, logger *zap.Logger) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		trainers:  trainers,
		cache:     cache,
		logger:    logger,
	}
}

// ListClassTypes возвращает активные типы занятий
func (s *ClassService) ListClassTypes(ctx context.Context) ([]*model.ClassType, error) {
	return s.classRepo.ListActiveClassTypes(ctx)
}

// CreateClassType создаёт тип занятия
func (s *ClassService) CreateClassType(ctx context.Context, in ClassTypeInput) (*model.ClassType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("Название обязательно")
	}

	ct := &model.ClassType{
		Name:        name,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if err := s.classRepo.CreateClassType(ctx, ct); err != nil {
		return nil, err
	}

	s.logger.Info("Class type created", zap.Int64("class_type_id", ct.ID))
	return ct, nil
}

// UpdateClassType обновляет тип занятия
func (s *ClassService) UpdateClassType(ctx context.Context, id int64, in ClassTypeInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("Название обязательно")
	}

	found, err := s.classRepo.UpdateClassType(ctx, &model.ClassType{
		ID:          id,
		Name:        name,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		IsActive:    in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		return err
	}
	if !found {
		return model.ErrClassTypeNotFound
	}
	return nil
}

// ListPublicSessions возвращает активные групповые занятия для каталога
func (s *ClassService) ListPublicSessions(ctx context.Context) ([]*model.GroupSession, error) {
	return cachedList(ctx, s.cache, s.logger, cacheKeyPublicSessions, s.classRepo.ListActiveSessions)
}

// ListSessions возвращает все групповые занятия
func (s *ClassService) ListSessions(ctx context.Context) ([]*model.GroupSession, error) {
	return s.classRepo.ListSessions(ctx)
}

// ListSessionSummaries краткий список активных занятий
func (s *ClassService) ListSessionSummaries(ctx context.Context) ([]SessionSummary, error) {
	sessions, err := s.classRepo.ListActiveSessions(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, gs := range sessions {
		summaries = append(summaries, SessionSummary{
			ID:       gs.ID,
			Name:     gs.Name,
			Time:     gs.Time,
			Duration: gs.Duration,
			Days:     gs.Days,
		})
	}
	return summaries, nil
}

// ListTrainerSessions возвращает занятия тренера, связанного с пользователем
func (s *ClassService) ListTrainerSessions(ctx context.Context, userID int64) ([]*model.GroupSession, error) {
	trainer, err := s.trainers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, model.ErrTrainerNotFound
	}
	return s.classRepo.ListSessionsByTrainer(ctx, trainer.ID)
}

// GetSession получает занятие по ID
func (s *ClassService) GetSession(ctx context.Context, id int64) (*model.GroupSession, error) {
	gs, err := s.classRepo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if gs == nil {
		return nil, model.ErrSessionNotFound
	}
	return gs, nil
}

func (in SessionInput) toModel() (*model.GroupSession, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(in.Days) == 0 || in.Time == "" || in.MaxParticipants == 0 || in.Duration == 0 {
		return nil, invalid("Все поля обязательны")
	}
	if in.MaxParticipants < 0 || in.Duration < 0 {
		return nil, invalid("Длительность и число участников должны быть больше нуля")
	}

	days := make([]schedule.Weekday, 0, len(in.Days))
	seen := make(map[schedule.Weekday]bool, len(in.Days))
	for _, raw := range in.Days {
		d, err := schedule.ParseWeekday(raw)
		if err != nil {
			return nil, invalid("Неверный день недели: " + raw)
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}

	at, err := schedule.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, invalid("Время должно быть в формате ЧЧ:ММ")
	}

	return &model.GroupSession{
		Name:            name,
		Description:     in.Description,
		Days:            days,
		Time:            at,
		Duration:        in.Duration,
		MaxParticipants: in.MaxParticipants,
		TrainerID:       in.TrainerID,
		IsActive:        in.IsActive == nil || *in.IsActive,
	}, nil
}

// CreateSession создаёт групповое занятие
func (s *ClassService) CreateSession(ctx context.Context, in SessionInput) (*model.GroupSession, error) {
	gs, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.classRepo.CreateSession(ctx, gs); err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, s.logger, cacheKeyPublicSessions)
	s.logger.Info("Group session created", zap.Int64("session_id", gs.ID))
	return gs, nil
}

// UpdateSession обновляет групповое занятие
func (s *ClassService) UpdateSession(ctx context.Context, id int64, in SessionInput) error {
	gs, err := in.toModel()
	if err != nil {
		return err
	}
	gs.ID = id

	found, err := s.classRepo.UpdateSession(ctx, gs)
	if err != nil {
		return err
	}
	if !found {
		return model.ErrSessionNotFound
	}

	invalidate(ctx, s.cache, s.logger, cacheKeyPublicSessions)
	s.logger.Info("Group session updated", zap.Int64("session_id", id))
	return nil
}

// DeleteSession удаляет занятие и возвращает удалённую запись
func (s *ClassService) DeleteSession(ctx context.Context, id int64) (*model.GroupSession, error) {
	gs, err := s.classRepo.DeleteSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if gs == nil {
		return nil, model.ErrSessionNotFound
	}

	invalidate(ctx, s.cache, s.logger, cacheKeyPublicSessions)
	s.logger.Info("Group session deleted", zap.Int64("session_id", id))
	return gs, nil
}
