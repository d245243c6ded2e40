package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nexpertia/marketplace-api/model"
)

type CategoryRepository struct {
	db *gorm.DB
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return create(ctx, r.db, category, "category")
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	return first[model.Category](ctx, r.db, "category", "id = ?", id)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	return first[model.Category](ctx, r.db, "category", "name = ?", name)
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	return list[model.Category](ctx, r.db, "category", nil)
}

type CourseRepository struct {
	db *gorm.DB
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return create(ctx, r.db, course, "course")
}

func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	return save(ctx, r.db, course, "course")
}

func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Course](ctx, r.db, id, "course")
}

// GetByID loads the course without its associations
func (r *CourseRepository) GetByID(ctx context.Context, id uint) (*model.Course, error) {
	return first[model.Course](ctx, r.db, "course", "id = ?", id)
}

// GetDetailed loads the course with category and instructor for serialization
func (r *CourseRepository) GetDetailed(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.detailed(ctx).Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, TranslateError(err, "course")
	}
	return &course, nil
}

// List returns all courses, or those of one category when categoryID is set
func (r *CourseRepository) List(ctx context.Context, categoryID *uint) ([]model.Course, error) {
	query := r.detailed(ctx)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	courses := []model.Course{}
	if err := query.Order("id ASC").Find(&courses).Error; err != nil {
		return nil, TranslateError(err, "course")
	}
	return courses, nil
}

func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorUserID uint) ([]model.Course, error) {
	courses := []model.Course{}
	err := r.detailed(ctx).Where("instructor_id = ?", instructorUserID).Order("id ASC").Find(&courses).Error
	if err != nil {
		return nil, TranslateError(err, "course")
	}
	return courses, nil
}

func (r *CourseRepository) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Preload("Instructor")
}
