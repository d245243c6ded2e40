package model

import (
	"time"

	"gorm.io/gorm"
)

// Booking records a user enrolling in a course. A user may book the same course more than once.
type Booking struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	CourseID        uint      `gorm:"not null;index" json:"course_id"`
	BookingDate     time.Time `gorm:"not null" json:"booking_date"`
	CalendarEventID *string   `gorm:"type:varchar(255)" json:"calendar_event_id,omitempty"`

	// Relationships
	Invoice *Invoice `gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.BookingDate.IsZero() {
		b.BookingDate = time.Now().UTC()
	}
	return nil
}

// BookingResponse is the API representation of a booking
type BookingResponse struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	CourseID        uint      `json:"course_id"`
	BookingDate     time.Time `json:"booking_date"`
	CalendarEventID *string   `json:"calendar_event_id,omitempty"`
}

func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		CourseID:        b.CourseID,
		BookingDate:     b.BookingDate,
		CalendarEventID: b.CalendarEventID,
	}
}

// Feedback is a rated comment left by a user on a course
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
}

// TableName keeps the singular table name
func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) BeforeSave(tx *gorm.DB) error {
	if f.Rating < 1 || f.Rating > 5 {
		return checkFailed("feedback", "rating", "rating must be between 1 and 5")
	}
	return nil
}
