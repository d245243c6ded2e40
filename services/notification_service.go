package services

import (
	"context"
	"time"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/validation"
)

// NotificationService handles user notifications
type NotificationService struct {
	store     database.Storage
	validator *validation.Validator
	now       func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(store database.Storage, v *validation.Validator) *NotificationService {
	return &NotificationService{
		store:     store,
		validator: v,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
	UserID    uint                   `json:"user_id" validate:"required"`
	Type      model.NotificationType `json:"type" validate:"omitempty,oneof=booking payment reminder general"`
	Message   string                 `json:"message" validate:"required"`
	BookingID *uint                  `json:"booking_id"`
}

// CreateNotification stores a notification for an existing user
func (s *NotificationService) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*model.Notification, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	notification := &model.Notification{
		UserID:    req.UserID,
		Type:      req.Type,
		Message:   req.Message,
		BookingID: req.BookingID,
	}

	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, req.UserID); err != nil {
			return err
		}
		if req.BookingID != nil {
			if _, err := repos.Bookings.GetByID(ctx, *req.BookingID); err != nil {
				return err
			}
		}
		return repos.Notifications.Create(ctx, notification)
	})
	if err != nil {
		return nil, err
	}
	return notification, nil
}

// ListByUser returns a user's notifications; an empty result is reported as not found
func (s *NotificationService) ListByUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	notifications, err := s.store.Repos().Notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(notifications) == 0 {
		return nil, apperrors.NewNotFoundError("notifications")
	}
	return notifications, nil
}

// MarkRead moves a notification to read. Marking an already read notification changes nothing.
func (s *NotificationService) MarkRead(ctx context.Context, actor *model.User, notificationID uint) (*model.Notification, error) {
	var notification *model.Notification
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		n, err := repos.Notifications.GetByID(ctx, notificationID)
		if err != nil {
			return err
		}
		if err := authorizeOwner(actor, n.UserID); err != nil {
			return err
		}

		if n.MarkRead(s.now()) {
			if err := repos.Notifications.MarkRead(ctx, n.ID, *n.ReadAt); err != nil {
				return err
			}
		}
		notification = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notification, nil
}

// MarkAllRead marks every unread notification of the user and returns how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.store.Repos().Notifications.MarkAllRead(ctx, userID, s.now())
}

// UnreadCount returns the number of unread notifications of the user
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.store.Repos().Notifications.CountUnread(ctx, userID)
}
