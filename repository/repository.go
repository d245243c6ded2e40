package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repositories bundles every entity repository over one handle. Built on a transaction it
// makes all writes part of that unit of work; repositories never commit on their own.
type Repositories struct {
	Users            *UserRepository
	Profiles         *ProfileRepository
	Instructors      *InstructorRepository
	Categories       *CategoryRepository
	Courses          *CourseRepository
	Bookings         *BookingRepository
	Feedback         *FeedbackRepository
	Invoices         *InvoiceRepository
	InvoiceTemplates *InvoiceTemplateRepository
	Notifications    *NotificationRepository
	Subscriptions    *SubscriptionRepository
	TokenBlacklist   *TokenBlacklistRepository
}

// New binds all repositories to db, which may be a plain handle or a transaction
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:            &UserRepository{db: db},
		Profiles:         &ProfileRepository{db: db},
		Instructors:      &InstructorRepository{db: db},
		Categories:       &CategoryRepository{db: db},
		Courses:          &CourseRepository{db: db},
		Bookings:         &BookingRepository{db: db},
		Feedback:         &FeedbackRepository{db: db},
		Invoices:         &InvoiceRepository{db: db},
		InvoiceTemplates: &InvoiceTemplateRepository{db: db},
		Notifications:    &NotificationRepository{db: db},
		Subscriptions:    &SubscriptionRepository{db: db},
		TokenBlacklist:   &TokenBlacklistRepository{db: db},
	}
}

func create[T any](ctx context.Context, db *gorm.DB, row *T, resource string) error {
	return TranslateError(db.WithContext(ctx).Omit(clause.Associations).Create(row).Error, resource)
}

func save[T any](ctx context.Context, db *gorm.DB, row *T, resource string) error {
	return TranslateError(db.WithContext(ctx).Omit(clause.Associations).Save(row).Error, resource)
}

func first[T any](ctx context.Context, db *gorm.DB, resource string, query interface{}, args ...interface{}) (*T, error) {
	var row T
	if err := db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		return nil, TranslateError(err, resource)
	}
	return &row, nil
}

func list[T any](ctx context.Context, db *gorm.DB, resource string, query interface{}, args ...interface{}) ([]T, error) {
	rows := []T{}
	q := db.WithContext(ctx)
	if query != nil {
		q = q.Where(query, args...)
	}
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, TranslateError(err, resource)
	}
	return rows, nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint, resource string) error {
	var row T
	result := db.WithContext(ctx).Delete(&row, id)
	if result.Error != nil {
		return TranslateError(result.Error, resource)
	}
	if result.RowsAffected == 0 {
		return TranslateError(gorm.ErrRecordNotFound, resource)
	}
	return nil
}
