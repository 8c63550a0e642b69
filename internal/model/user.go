package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// Valid проверяет что роль известна
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        *string   `json:"phone"`
	Role         Role      `json:"role"`
	TelegramID   *int64    `json:"telegram_id,omitempty"` // привязанный аккаунт Telegram
	CreatedAt    time.Time `json:"created_at"`
}
