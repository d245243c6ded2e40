package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nexpertia/marketplace-api/model"
)

type BookingRepository struct {
	db *gorm.DB
}

func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return create(ctx, r.db, booking, "booking")
}

func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return save(ctx, r.db, booking, "booking")
}

func (r *BookingRepository) GetByID(ctx context.Context, id uint) (*model.Booking, error) {
	return first[model.Booking](ctx, r.db, "booking", "id = ?", id)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Booking, error) {
	return list[model.Booking](ctx, r.db, "booking", "user_id = ?", userID)
}

func (r *BookingRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Booking, error) {
	return list[model.Booking](ctx, r.db, "booking", "course_id = ?", courseID)
}

func (r *BookingRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Booking](ctx, r.db, id, "booking")
}

type FeedbackRepository struct {
	db *gorm.DB
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return create(ctx, r.db, feedback, "feedback")
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id uint) (*model.Feedback, error) {
	return first[model.Feedback](ctx, r.db, "feedback", "id = ?", id)
}

func (r *FeedbackRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.Feedback, error) {
	return list[model.Feedback](ctx, r.db, "feedback", "course_id = ?", courseID)
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Feedback](ctx, r.db, id, "feedback")
}
