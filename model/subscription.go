package model

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusInactive, SubscriptionStatusCanceled:
		return true
	}
	return false
}

// Subscription is a billing plan held by a user. A user may hold several active ones.
type Subscription struct {
	ID                   uint               `gorm:"primaryKey" json:"id"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	UserID               uint               `gorm:"not null;index" json:"user_id"`
	PlanName             string             `gorm:"type:varchar(100);not null" json:"plan_name"`
	StartDate            time.Time          `gorm:"not null" json:"start_date"`
	EndDate              *time.Time         `gorm:"check:end_date IS NULL OR end_date >= start_date" json:"end_date,omitempty"`
	Status               SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StripeSubscriptionID string             `gorm:"type:varchar(255)" json:"stripe_subscription_id,omitempty"`
}

func (s *Subscription) BeforeSave(tx *gorm.DB) error {
	if s.PlanName == "" {
		return notNull("subscriptions", "plan_name")
	}
	if s.Status == "" {
		s.Status = SubscriptionStatusActive
	}
	if !s.Status.Valid() {
		return checkFailed("subscriptions", "status", "status must be one of active, inactive, canceled")
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return checkFailed("subscriptions", "end_date", "end_date must not be before start_date")
	}
	return nil
}
