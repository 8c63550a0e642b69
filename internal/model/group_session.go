package model

import (
	"time"

	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

// GroupSession групповое занятие по дням недели в фиксированное время
type GroupSession struct {
	ID                  int64              `json:"id"`
	Name                string             `json:"name"`
	Description         string             `json:"description"`
	Days                []schedule.Weekday `json:"days"`
	Time                schedule.TimeOfDay `json:"time"`
	Duration            int                `json:"duration"` // в минутах
	MaxParticipants     int                `json:"max_participants"`
	CurrentParticipants int                `json:"current_participants"`
	IsActive            bool               `json:"is_active"`
	TrainerID           *int64             `json:"trainer_id"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`

	TrainerName *string `json:"trainer_name,omitempty"` // из JOIN с users
}
