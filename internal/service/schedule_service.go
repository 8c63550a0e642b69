package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/repository"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

const dateLayout = "2006-01-02"

type slotStore interface {
	ListPersonal(ctx context.Context) ([]*model.TrainerSlot, error)
	ListByTrainer(ctx context.Context, trainerID int64) ([]*model.TrainerSlot, error)
	CreateChecked(ctx context.Context, slot *model.TrainerSlot, check repository.SlotCheck) error
	UpdateChecked(ctx context.Context, slot *model.TrainerSlot, check repository.SlotCheck) error
	Delete(ctx context.Context, id int64) (bool, error)
	ListAvailableTrainers(ctx context.Context, day schedule.Weekday, at schedule.TimeOfDay) ([]*model.AvailableTrainer, error)
}

// SlotInput данные персонального слота в том виде, в каком их присылает клиент.
// MaxSlots nil означает 1, IsActive nil означает true.
type SlotInput struct {
	TrainerID int64
	DayOfWeek string
	StartTime string
	EndTime   string
	MaxSlots  *int
	IsActive  *bool
}

// TrainerSchedule расписание тренера со сводкой нагрузки
type TrainerSchedule struct {
	Trainer *model.TrainerProfile `json:"trainer"`
	Slots   []*model.TrainerSlot  `json:"schedule"`
	Load    schedule.Load         `json:"load"`
}

type ScheduleService struct {
	slotRepo slotStore
	trainers trainerLookup
	logger   *zap.Logger
}

func NewScheduleService(slotRepo slotStore, trainers trainerLookup, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		slotRepo: slotRepo,
		trainers: trainers,
		logger:   logger,
	}
}

// List возвращает персональные слоты всех тренеров
func (s *ScheduleService) List(ctx context.Context) ([]*model.TrainerSlot, error) {
	return s.slotRepo.ListPersonal(ctx)
}

func (in SlotInput) toSlot() (*model.TrainerSlot, error) {
	if in.TrainerID == 0 || strings.TrimSpace(in.DayOfWeek) == "" || in.StartTime == "" || in.EndTime == "" {
		return nil, invalid("Все поля обязательны для заполнения")
	}

	day, err := schedule.ParseWeekday(in.DayOfWeek)
	if err != nil {
		return nil, invalid("Неверный день недели")
	}
	start, err := schedule.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, invalid("Время начала должно быть в формате ЧЧ:ММ")
	}
	end, err := schedule.ParseTimeOfDay(in.EndTime)
	if err != nil {
		return nil, invalid("Время окончания должно быть в формате ЧЧ:ММ")
	}

	maxSlots := 1
	if in.MaxSlots != nil {
		maxSlots = *in.MaxSlots
	}
	if maxSlots <= 0 {
		return nil, invalid("Количество мест должно быть больше нуля")
	}

	return &model.TrainerSlot{
		TrainerID: in.TrainerID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		SlotType:  model.SlotTypePersonal,
		MaxSlots:  maxSlots,
		IsActive:  in.IsActive == nil || *in.IsActive,
	}, nil
}

// slotCheck проверяет кандидата против активных слотов дня.
// Неактивный кандидат проверяется только на длительность.
func slotCheck(candidate *model.TrainerSlot, excludeID *int64) repository.SlotCheck {
	return func(existing []*model.TrainerSlot) error {
		if !candidate.IsActive {
			return schedule.ValidateDuration(candidate.StartTime, candidate.EndTime)
		}
		others := make([]schedule.Slot, 0, len(existing))
		for _, e := range existing {
			others = append(others, e.ValidatorSlot())
		}
		return schedule.ValidateSlot(candidate.ValidatorSlot(), others, excludeID)
	}
}

// Create создаёт персональный слот от имени администратора adminID.
// Возвращает schedule.ErrDurationTooShort или schedule.ErrOverlap если слот недопустим.
func (s *ScheduleService) Create(ctx context.Context, adminID int64, in SlotInput) (*model.TrainerSlot, error) {
	slot, err := in.toSlot()
	if err != nil {
		return nil, err
	}
	slot.CreatedBy = &adminID

	if err := schedule.ValidateDuration(slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}

	if err := s.slotRepo.CreateChecked(ctx, slot, slotCheck(slot, nil)); err != nil {
		s.logRejected("create", slot, err)
		return nil, err
	}

	s.logger.Info("Schedule slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("trainer_id", slot.TrainerID),
		zap.String("day", string(slot.DayOfWeek)),
		zap.String("start", slot.StartTime.Short()),
		zap.String("end", slot.EndTime.Short()),
	)
	return slot, nil
}

// Update заменяет поля слота id. Сам слот при проверке пересечений не учитывается.
// Отсутствующий слот даёт model.ErrSlotNotFound раньше ошибок проверки.
func (s *ScheduleService) Update(ctx context.Context, id int64, in SlotInput) (*model.TrainerSlot, error) {
	slot, err := in.toSlot()
	if err != nil {
		return nil, err
	}
	slot.ID = id

	// Длительность проверяется внутри транзакции, после поиска слота
	if err := s.slotRepo.UpdateChecked(ctx, slot, slotCheck(slot, &id)); err != nil {
		s.logRejected("update", slot, err)
		return nil, err
	}

	s.logger.Info("Schedule slot updated",
		zap.Int64("slot_id", id),
		zap.Int64("trainer_id", slot.TrainerID),
	)
	return slot, nil
}

func (s *ScheduleService) logRejected(op string, slot *model.TrainerSlot, err error) {
	if !errors.Is(err, schedule.ErrOverlap) {
		return
	}
	s.logger.Info("Schedule slot rejected",
		zap.String("op", op),
		zap.Int64("trainer_id", slot.TrainerID),
		zap.String("day", string(slot.DayOfWeek)),
		zap.Error(err),
	)
}

// Delete удаляет слот
func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.slotRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrSlotNotFound
	}

	s.logger.Info("Schedule slot deleted", zap.Int64("slot_id", id))
	return nil
}

// ForTrainerUser возвращает расписание тренера, связанного с пользователем userID
func (s *ScheduleService) ForTrainerUser(ctx context.Context, userID int64) (*TrainerSchedule, error) {
	trainer, err := s.trainers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, model.ErrTrainerNotFound
	}

	slots, err := s.slotRepo.ListByTrainer(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}

	active := make([]schedule.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsActive {
			active = append(active, slot.ValidatorSlot())
		}
	}

	return &TrainerSchedule{
		Trainer: trainer,
		Slots:   slots,
		Load:    schedule.ComputeLoad(active),
	}, nil
}

// AvailableTrainers возвращает тренеров без активного слота в дату date (YYYY-MM-DD) и время at
func (s *ScheduleService) AvailableTrainers(ctx context.Context, date, at string) ([]*model.AvailableTrainer, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, invalid("Дата должна быть в формате ГГГГ-ММ-ДД")
	}
	t, err := schedule.ParseTimeOfDay(at)
	if err != nil {
		return nil, invalid("Время должно быть в формате ЧЧ:ММ")
	}

	return s.slotRepo.ListAvailableTrainers(ctx, schedule.DayOfWeekFromDate(d), t)
}
