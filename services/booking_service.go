package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/utils/validation"
)

// BookingService enrolls users in courses
type BookingService struct {
	store     database.Storage
	validator *validation.Validator
	log       zerolog.Logger
}

func NewBookingService(store database.Storage, v *validation.Validator, log zerolog.Logger) *BookingService {
	return &BookingService{
		store:     store,
		validator: v,
		log:       log.With().Str("service", "booking").Logger(),
	}
}

// CreateBookingRequest represents a booking payload
type CreateBookingRequest struct {
	UserID          uint       `json:"user_id" validate:"required"`
	CourseID        uint       `json:"course_id" validate:"required"`
	BookingDate     *time.Time `json:"booking_date"`
	CalendarEventID *string    `json:"calendar_event_id" validate:"omitempty,max=255"`
}

// BookingMessage is the notification text sent for a new booking
func BookingMessage(courseTitle string) string {
	return fmt.Sprintf("You have successfully booked the course: %s", courseTitle)
}

// Create stores the booking and its notification together. The user is checked before the course.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*model.Booking, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		UserID:          req.UserID,
		CourseID:        req.CourseID,
		CalendarEventID: req.CalendarEventID,
	}
	if req.BookingDate != nil {
		booking.BookingDate = req.BookingDate.UTC()
	}

	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, req.UserID); err != nil {
			return err
		}
		course, err := repos.Courses.GetByID(ctx, req.CourseID)
		if err != nil {
			return err
		}

		if err := repos.Bookings.Create(ctx, booking); err != nil {
			return err
		}

		return repos.Notifications.Create(ctx, &model.Notification{
			UserID:    booking.UserID,
			Message:   BookingMessage(course.Title),
			Type:      model.NotificationTypeBooking,
			BookingID: &booking.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("booking_id", booking.ID).Uint("user_id", booking.UserID).Uint("course_id", booking.CourseID).Msg("course booked")
	return booking, nil
}

// ListByUser returns the bookings of an existing user
func (s *BookingService) ListByUser(ctx context.Context, userID uint) ([]model.Booking, error) {
	repos := s.store.Repos()
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return repos.Bookings.ListByUser(ctx, userID)
}
