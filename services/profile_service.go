package services

import (
	"context"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/validation"
)

// ProfileService reads and updates the extension record of a user
type ProfileService struct {
	store     database.Storage
	validator *validation.Validator
}

func NewProfileService(store database.Storage, v *validation.Validator) *ProfileService {
	return &ProfileService{store: store, validator: v}
}

// loadExtension fetches the record matching the user's kind. Missing rows are never created here.
func loadExtension(ctx context.Context, repos *repository.Repositories, user *model.User) (model.UserExtension, error) {
	ext := model.UserExtension{Kind: model.ExtensionKindFor(user)}
	switch ext.Kind {
	case model.ExtensionInstructor:
		in, err := repos.Instructors.GetByUserID(ctx, user.ID)
		if err != nil {
			return ext, err
		}
		ext.Instructor = in
	case model.ExtensionProfile:
		p, err := repos.Profiles.GetByUserID(ctx, user.ID)
		if err != nil {
			return ext, err
		}
		ext.Profile = p
	default:
		return ext, apperrors.NewNotFoundError("profile")
	}
	return ext, nil
}

func saveExtension(ctx context.Context, repos *repository.Repositories, ext model.UserExtension) error {
	switch ext.Kind {
	case model.ExtensionInstructor:
		return repos.Instructors.Update(ctx, ext.Instructor)
	case model.ExtensionProfile:
		return repos.Profiles.Update(ctx, ext.Profile)
	}
	return apperrors.NewNotFoundError("profile")
}

// Get returns the user's profile or instructor record
func (s *ProfileService) Get(ctx context.Context, userID uint) (model.UserExtension, error) {
	repos := s.store.Repos()
	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return model.UserExtension{}, err
	}
	return loadExtension(ctx, repos, user)
}

// Update merges the non-nil patch fields into the user's extension record
func (s *ProfileService) Update(ctx context.Context, userID uint, patch model.ProfilePatch) (model.UserExtension, error) {
	if err := s.validator.Validate(patch); err != nil {
		return model.UserExtension{}, err
	}

	var ext model.UserExtension
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		user, err := repos.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		ext, err = loadExtension(ctx, repos, user)
		if err != nil {
			return err
		}
		patch.Apply(&ext)
		return saveExtension(ctx, repos, ext)
	})
	if err != nil {
		return model.UserExtension{}, err
	}
	return ext, nil
}

// InstructorService manages instructor records
type InstructorService struct {
	store     database.Storage
	validator *validation.Validator
}

func NewInstructorService(store database.Storage, v *validation.Validator) *InstructorService {
	return &InstructorService{store: store, validator: v}
}

// CreateInstructorRequest represents the payload for creating an instructor record
type CreateInstructorRequest struct {
	UserID         uint    `json:"user_id" validate:"required"`
	Bio            string  `json:"bio"`
	Expertise      string  `json:"expertise" validate:"max=255"`
	Rate           float64 `json:"rate" validate:"gte=0"`
	ProfilePicture string  `json:"profile_picture" validate:"max=500"`
}

func (s *InstructorService) toResponse(ctx context.Context, repos *repository.Repositories, in *model.Instructor) (model.InstructorResponse, error) {
	user, err := repos.Users.GetByID(ctx, in.UserID)
	if err != nil {
		return model.InstructorResponse{}, err
	}
	return in.ToResponse(user.Username), nil
}

func (s *InstructorService) List(ctx context.Context) ([]model.InstructorResponse, error) {
	repos := s.store.Repos()
	instructors, err := repos.Instructors.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.InstructorResponse, 0, len(instructors))
	for i := range instructors {
		resp, err := s.toResponse(ctx, repos, &instructors[i])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *InstructorService) Get(ctx context.Context, id uint) (model.InstructorResponse, error) {
	repos := s.store.Repos()
	in, err := repos.Instructors.GetByID(ctx, id)
	if err != nil {
		return model.InstructorResponse{}, err
	}
	return s.toResponse(ctx, repos, in)
}

// GetRecord returns the stored instructor row without the user join
func (s *InstructorService) GetRecord(ctx context.Context, id uint) (*model.Instructor, error) {
	return s.store.Repos().Instructors.GetByID(ctx, id)
}

// Create adds the instructor record of a user flagged as instructor
func (s *InstructorService) Create(ctx context.Context, req CreateInstructorRequest) (model.InstructorResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return model.InstructorResponse{}, err
	}

	var resp model.InstructorResponse
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		user, err := repos.Users.GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !user.IsInstructor {
			return apperrors.NewValidationError("user %d is not an instructor", user.ID)
		}

		if _, err := repos.Instructors.GetByUserID(ctx, user.ID); err == nil {
			return apperrors.NewConflictError("instructor profile already exists for user %d", user.ID)
		} else if !isNotFound(err) {
			return err
		}

		in := &model.Instructor{
			UserID:         user.ID,
			Bio:            req.Bio,
			Expertise:      req.Expertise,
			Rate:           req.Rate,
			ProfilePicture: req.ProfilePicture,
		}
		if err := repos.Instructors.Create(ctx, in); err != nil {
			return err
		}
		resp = in.ToResponse(user.Username)
		return nil
	})
	return resp, err
}

// Update merges the patch into the instructor record. Only the owner or an admin may change it.
func (s *InstructorService) Update(ctx context.Context, actor *model.User, id uint, patch model.ProfilePatch) (model.InstructorResponse, error) {
	if err := s.validator.Validate(patch); err != nil {
		return model.InstructorResponse{}, err
	}

	var resp model.InstructorResponse
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		in, err := repos.Instructors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authorizeOwner(actor, in.UserID); err != nil {
			return err
		}

		ext := model.UserExtension{Kind: model.ExtensionInstructor, Instructor: in}
		patch.Apply(&ext)
		if err := repos.Instructors.Update(ctx, in); err != nil {
			return err
		}
		resp, err = s.toResponse(ctx, repos, in)
		return err
	})
	return resp, err
}

// Delete removes the instructor record; the user itself is kept
func (s *InstructorService) Delete(ctx context.Context, actor *model.User, id uint) error {
	return s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		in, err := repos.Instructors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authorizeOwner(actor, in.UserID); err != nil {
			return err
		}
		return repos.Instructors.Delete(ctx, in.ID)
	})
}

// Courses lists the courses taught by the instructor with the given record id
func (s *InstructorService) Courses(ctx context.Context, id uint) ([]model.CourseResponse, error) {
	repos := s.store.Repos()
	in, err := repos.Instructors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	courses, err := repos.Courses.ListByInstructor(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	return courseResponses(courses), nil
}
