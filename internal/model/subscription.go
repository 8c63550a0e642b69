package model

import "time"

type SubscriptionType struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"` // unlimited, visits, ...
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	VisitsCount  *int      `json:"visits_count"` // nil для безлимитных
	DurationDays int       `json:"duration_days"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserSubscriptionStatus string

const (
	UserSubscriptionActive    UserSubscriptionStatus = "active"
	UserSubscriptionExpired   UserSubscriptionStatus = "expired"
	UserSubscriptionCancelled UserSubscriptionStatus = "cancelled"
)

// UserSubscription купленный клиентом абонемент
type UserSubscription struct {
	ID                 int64                  `json:"id"`
	UserID             int64                  `json:"user_id"`
	SubscriptionTypeID int64                  `json:"subscription_type_id"`
	PurchaseDate       time.Time              `json:"purchase_date"`
	StartDate          time.Time              `json:"start_date"`
	EndDate            time.Time              `json:"end_date"`
	Status             UserSubscriptionStatus `json:"status"`
	VisitsLeft         *int                   `json:"visits_left"`
}
