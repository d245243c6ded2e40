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

// SubscriptionService manages billing plans. A user may hold any number of active subscriptions.
type SubscriptionService struct {
	store     database.Storage
	validator *validation.Validator
	now       func() time.Time
}

func NewSubscriptionService(store database.Storage, v *validation.Validator) *SubscriptionService {
	return &SubscriptionService{
		store:     store,
		validator: v,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateSubscriptionRequest represents a new subscription. StartDate defaults to now.
type CreateSubscriptionRequest struct {
	UserID               uint                     `json:"user_id" validate:"required"`
	PlanName             string                   `json:"plan_name" validate:"required,max=100"`
	StartDate            *time.Time               `json:"start_date"`
	EndDate              *time.Time               `json:"end_date"`
	Status               model.SubscriptionStatus `json:"status" validate:"omitempty,oneof=active inactive canceled"`
	StripeSubscriptionID string                   `json:"stripe_subscription_id" validate:"max=255"`
}

func (s *SubscriptionService) Create(ctx context.Context, req CreateSubscriptionRequest) (*model.Subscription, error) {
	req.PlanName = validation.SanitizeString(req.PlanName)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	start := s.now()
	if req.StartDate != nil {
		start = req.StartDate.UTC()
	}
	sub := &model.Subscription{
		UserID:               req.UserID,
		PlanName:             req.PlanName,
		StartDate:            start,
		Status:               req.Status,
		StripeSubscriptionID: req.StripeSubscriptionID,
	}
	if req.EndDate != nil {
		end := req.EndDate.UTC()
		if end.Before(start) {
			return nil, apperrors.NewValidationError("end_date must not be before start_date")
		}
		sub.EndDate = &end
	}
	if sub.Status == "" {
		sub.Status = model.SubscriptionStatusActive
	}

	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, req.UserID); err != nil {
			return err
		}
		return repos.Subscriptions.Create(ctx, sub)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// ListByUser returns the subscriptions of an existing user
func (s *SubscriptionService) ListByUser(ctx context.Context, userID uint) ([]model.Subscription, error) {
	repos := s.store.Repos()
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return repos.Subscriptions.ListByUser(ctx, userID)
}

// Cancel marks the subscription canceled and closes it now when it has no end date.
// A subscription that has not started yet ends on its start date.
func (s *SubscriptionService) Cancel(ctx context.Context, actor *model.User, id uint) (*model.Subscription, error) {
	var sub *model.Subscription
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		found, err := repos.Subscriptions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authorizeOwner(actor, found.UserID); err != nil {
			return err
		}

		found.Status = model.SubscriptionStatusCanceled
		if found.EndDate == nil {
			end := s.now()
			if end.Before(found.StartDate) {
				end = found.StartDate
			}
			found.EndDate = &end
		}
		if err := repos.Subscriptions.Update(ctx, found); err != nil {
			return err
		}
		sub = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}
