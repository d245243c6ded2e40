package services

import (
	"context"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/validation"
)

// FeedbackService stores course ratings
type FeedbackService struct {
	store     database.Storage
	validator *validation.Validator
}

func NewFeedbackService(store database.Storage, v *validation.Validator) *FeedbackService {
	return &FeedbackService{store: store, validator: v}
}

// CreateFeedbackRequest represents a rating left on a course
type CreateFeedbackRequest struct {
	UserID   uint   `json:"user_id" validate:"required"`
	CourseID uint   `json:"course_id" validate:"required"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment" validate:"max=2000"`
}

func (s *FeedbackService) Create(ctx context.Context, req CreateFeedbackRequest) (*model.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	feedback := &model.Feedback{
		UserID:   req.UserID,
		CourseID: req.CourseID,
		Rating:   req.Rating,
		Comment:  validation.SanitizeString(req.Comment),
	}
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Users.GetByID(ctx, req.UserID); err != nil {
			return err
		}
		if _, err := repos.Courses.GetByID(ctx, req.CourseID); err != nil {
			return err
		}
		return repos.Feedback.Create(ctx, feedback)
	})
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

// ListByCourse returns the feedback of an existing course
func (s *FeedbackService) ListByCourse(ctx context.Context, courseID uint) ([]model.Feedback, error) {
	repos := s.store.Repos()
	if _, err := repos.Courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return repos.Feedback.ListByCourse(ctx, courseID)
}
