package model

import "time"

type Trainer struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Experience     int       `json:"experience"` // лет стажа
	Specialization string    `json:"specialization"`
	Bio            string    `json:"bio"`
	Rating         float64   `json:"rating"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// TrainerProfile тренер вместе с данными его пользователя
type TrainerProfile struct {
	Trainer
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}
