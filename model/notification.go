package model

import (
	"time"

	"gorm.io/gorm"
)

// NotificationType represents what a notification is about
type NotificationType string

const (
	NotificationTypeBooking  NotificationType = "booking"
	NotificationTypePayment  NotificationType = "payment"
	NotificationTypeReminder NotificationType = "reminder"
	NotificationTypeGeneral  NotificationType = "general"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeBooking, NotificationTypePayment, NotificationTypeReminder, NotificationTypeGeneral:
		return true
	}
	return false
}

// NotificationStatus only ever moves from unread to read
type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)

// Notification represents a message for a user
type Notification struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	UserID    uint               `gorm:"not null;index" json:"user_id"`
	Message   string             `gorm:"type:text;not null" json:"message"`
	Type      NotificationType   `gorm:"type:varchar(20);not null" json:"type"`
	Status    NotificationStatus `gorm:"type:varchar(20);not null;default:'unread';index" json:"status"`
	BookingID *uint              `gorm:"index" json:"booking_id,omitempty"` // Link to Booking if applicable
	ReadAt    *time.Time         `json:"read_at,omitempty"`

	// Relationships
	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:SET NULL" json:"-"`
}

func (n *Notification) BeforeSave(tx *gorm.DB) error {
	if n.Message == "" {
		return notNull("notifications", "message")
	}
	if n.Type == "" {
		n.Type = NotificationTypeGeneral
	}
	if !n.Type.Valid() {
		return checkFailed("notifications", "type", "type must be one of booking, payment, reminder, general")
	}
	if n.Status == "" {
		n.Status = NotificationStatusUnread
	}
	if n.Status != NotificationStatusUnread && n.Status != NotificationStatusRead {
		return checkFailed("notifications", "status", "status must be unread or read")
	}
	return nil
}

// MarkRead transitions the notification to read. It reports false when it was already read.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.Status == NotificationStatusRead {
		return false
	}
	n.Status = NotificationStatusRead
	n.ReadAt = &now
	return true
}

// NotificationResponse represents the API response format for a notification
type NotificationResponse struct {
	ID        uint               `json:"id"`
	UserID    uint               `json:"user_id"`
	Type      NotificationType   `json:"type"`
	Message   string             `json:"message"`
	Status    NotificationStatus `json:"status"`
	BookingID *uint              `json:"booking_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	ReadAt    *time.Time         `json:"read_at,omitempty"`
}

// ToResponse converts a Notification to NotificationResponse
func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Message:   n.Message,
		Status:    n.Status,
		BookingID: n.BookingID,
		CreatedAt: n.CreatedAt,
		ReadAt:    n.ReadAt,
	}
}
