package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/repository"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
	"github.com/nexpertia/marketplace-api/utils/validation"
)

// CourseService manages courses and their categories
type CourseService struct {
	store     database.Storage
	validator *validation.Validator
	log       zerolog.Logger
}

func NewCourseService(store database.Storage, v *validation.Validator, log zerolog.Logger) *CourseService {
	return &CourseService{
		store:     store,
		validator: v,
		log:       log.With().Str("service", "course").Logger(),
	}
}

// CreateCourseRequest represents the payload for creating a course.
// InstructorID is the instructor's user id and defaults to the caller.
type CreateCourseRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"gte=0"`
	CategoryID   uint     `json:"category_id" validate:"required"`
	InstructorID uint     `json:"instructor_id"`
	Resources    []string `json:"resources" validate:"omitempty,dive,required,max=500"`
}

// Create checks category and instructor before inserting the course
func (s *CourseService) Create(ctx context.Context, actor *model.User, req CreateCourseRequest) (*model.CourseResponse, error) {
	req.Title = validation.SanitizeString(req.Title)
	if req.InstructorID == 0 && actor != nil {
		req.InstructorID = actor.ID
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if actor != nil && actor.Role != model.RoleAdmin && actor.ID != req.InstructorID {
		return nil, apperrors.NewAuthorizationError("instructors can only create their own courses")
	}

	var course *model.Course
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Categories.GetByID(ctx, req.CategoryID); err != nil {
			return err
		}
		instructor, err := repos.Users.GetByID(ctx, req.InstructorID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("instructor")
			}
			return err
		}
		if !instructor.IsInstructor {
			return apperrors.NewValidationError("user %d is not an instructor", instructor.ID)
		}

		c := &model.Course{
			Title:        req.Title,
			Description:  req.Description,
			Price:        req.Price,
			CategoryID:   req.CategoryID,
			InstructorID: instructor.ID,
			Resources:    req.Resources,
		}
		if err := repos.Courses.Create(ctx, c); err != nil {
			return err
		}

		course, err = repos.Courses.GetDetailed(ctx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("course_id", course.ID).Uint("instructor_id", course.InstructorID).Msg("course created")
	resp := course.ToResponse()
	return &resp, nil
}

// List returns every course, or those of one category
func (s *CourseService) List(ctx context.Context, categoryID *uint) ([]model.CourseResponse, error) {
	courses, err := s.store.Repos().Courses.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return courseResponses(courses), nil
}

func (s *CourseService) Get(ctx context.Context, id uint) (*model.CourseResponse, error) {
	course, err := s.store.Repos().Courses.GetDetailed(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := course.ToResponse()
	return &resp, nil
}

// AddResourcesRequest carries links appended to a course
type AddResourcesRequest struct {
	Resources []string `json:"resources" validate:"required,min=1,dive,required,max=500"`
}

// AddResources appends links to the course's resource list. Only its instructor or an admin may do so.
func (s *CourseService) AddResources(ctx context.Context, actor *model.User, courseID uint, req AddResourcesRequest) (*model.CourseResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var course *model.Course
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		c, err := repos.Courses.GetByID(ctx, courseID)
		if err != nil {
			return err
		}
		if actor != nil && actor.Role != model.RoleAdmin && actor.ID != c.InstructorID {
			return apperrors.NewAuthorizationError("only the course instructor can add resources")
		}

		for _, r := range req.Resources {
			c.Resources = append(c.Resources, strings.TrimSpace(r))
		}
		if err := repos.Courses.Update(ctx, c); err != nil {
			return err
		}

		course, err = repos.Courses.GetDetailed(ctx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := course.ToResponse()
	return &resp, nil
}

// CreateCategoryRequest represents the payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (s *CourseService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.store.Repos().Categories.List(ctx)
}

// CreateCategory rejects names already in use
func (s *CourseService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	req.Name = validation.SanitizeString(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	category := &model.Category{Name: req.Name}
	err := s.store.WithTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Categories.GetByName(ctx, req.Name); err == nil {
			return apperrors.NewConflictError("category %q already exists", req.Name)
		} else if !isNotFound(err) {
			return err
		}
		return repos.Categories.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func courseResponses(courses []model.Course) []model.CourseResponse {
	out := make([]model.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, courses[i].ToResponse())
	}
	return out
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
