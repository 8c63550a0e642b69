package model

import (
	"time"

	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

const SlotTypePersonal = "personal"

// TrainerSlot интервал персональных тренировок тренера в день недели
type TrainerSlot struct {
	ID        int64              `json:"id"`
	TrainerID int64              `json:"trainer_id"`
	DayOfWeek schedule.Weekday   `json:"day_of_week"`
	StartTime schedule.TimeOfDay `json:"start_time"`
	EndTime   schedule.TimeOfDay `json:"end_time"`
	SlotType  string             `json:"slot_type"`
	MaxSlots  int                `json:"max_slots"`
	IsActive  bool               `json:"is_active"`
	CreatedBy *int64             `json:"created_by"`
	CreatedAt time.Time          `json:"created_at"`

	// Дополнительные поля для списка администратора (не из trainer_schedule)
	TrainerName    string `json:"trainer_name,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

// ValidatorSlot переводит слот в представление для проверок расписания
func (s *TrainerSlot) ValidatorSlot() schedule.Slot {
	return schedule.Slot{
		ID:        s.ID,
		TrainerID: s.TrainerID,
		Day:       s.DayOfWeek,
		Start:     s.StartTime,
		End:       s.EndTime,
	}
}

// AvailableTrainer тренер, свободный в заданные день и время
type AvailableTrainer struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}
