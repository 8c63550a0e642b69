package model

import "errors"

// Ошибки поиска сущностей
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrTrainerNotFound      = errors.New("trainer not found")
	ErrSlotNotFound         = errors.New("schedule slot not found")
	ErrSubscriptionNotFound = errors.New("subscription type not found")
	ErrClassTypeNotFound    = errors.New("class type not found")
	ErrSessionNotFound      = errors.New("group session not found")
)
