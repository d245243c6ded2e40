package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nexpertia/marketplace-api/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return create(ctx, r.db, profile, "profile")
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	return save(ctx, r.db, profile, "profile")
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uint) (*model.Profile, error) {
	return first[model.Profile](ctx, r.db, "profile", "id = ?", id)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	return first[model.Profile](ctx, r.db, "profile", "user_id = ?", userID)
}

func (r *ProfileRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Profile](ctx, r.db, id, "profile")
}

type InstructorRepository struct {
	db *gorm.DB
}

func (r *InstructorRepository) Create(ctx context.Context, instructor *model.Instructor) error {
	return create(ctx, r.db, instructor, "instructor")
}

func (r *InstructorRepository) Update(ctx context.Context, instructor *model.Instructor) error {
	return save(ctx, r.db, instructor, "instructor")
}

func (r *InstructorRepository) GetByID(ctx context.Context, id uint) (*model.Instructor, error) {
	return first[model.Instructor](ctx, r.db, "instructor", "id = ?", id)
}

func (r *InstructorRepository) GetByUserID(ctx context.Context, userID uint) (*model.Instructor, error) {
	return first[model.Instructor](ctx, r.db, "instructor", "user_id = ?", userID)
}

func (r *InstructorRepository) List(ctx context.Context) ([]model.Instructor, error) {
	return list[model.Instructor](ctx, r.db, "instructor", nil)
}

func (r *InstructorRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Instructor](ctx, r.db, id, "instructor")
}
