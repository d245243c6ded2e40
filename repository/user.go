package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/nexpertia/marketplace-api/model"
)

type UserRepository struct {
	db *gorm.DB
}

// UserFilter narrows Users.List. Zero values disable a filter.
type UserFilter struct {
	Role   model.Role
	Search string
	Page   int
	Limit  int
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return create(ctx, r.db, user, "user")
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return save(ctx, r.db, user, "user")
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return first[model.User](ctx, r.db, "user", "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return first[model.User](ctx, r.db, "user", "email = ?", strings.ToLower(email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return first[model.User](ctx, r.db, "user", "username = ?", username)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", strings.ToLower(email))
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *UserRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, TranslateError(err, "user")
	}
	return count > 0, nil
}

// List returns one page of users ordered by id plus the total number of matches
func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, TranslateError(err, "user")
	}

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	users := []model.User{}
	if err := query.Order("id ASC").Find(&users).Error; err != nil {
		return nil, 0, TranslateError(err, "user")
	}
	return users, total, nil
}

// CountDependents counts the rows that keep a user from being deleted, keyed by kind.
// Kinds with no rows are omitted.
func (r *UserRepository) CountDependents(ctx context.Context, userID uint) (map[string]int64, error) {
	checks := []struct {
		kind   string
		model  interface{}
		column string
	}{
		{"bookings", &model.Booking{}, "user_id"},
		{"courses", &model.Course{}, "instructor_id"},
		{"invoices", &model.Invoice{}, "user_id"},
		{"subscriptions", &model.Subscription{}, "user_id"},
	}

	counts := make(map[string]int64)
	for _, check := range checks {
		var n int64
		if err := r.db.WithContext(ctx).Model(check.model).Where(check.column+" = ?", userID).Count(&n).Error; err != nil {
			return nil, TranslateError(err, check.kind)
		}
		if n > 0 {
			counts[check.kind] = n
		}
	}
	return counts, nil
}

// Delete removes the user and the rows that belong only to it. Rows that restrict deletion
// must be checked by the caller first.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	owned := []interface{}{
		&model.Profile{},
		&model.Instructor{},
		&model.Notification{},
		&model.Feedback{},
		&model.InvoiceTemplateSetting{},
		&model.JWTTokenBlacklist{},
	}
	for _, m := range owned {
		if err := db.Where("user_id = ?", id).Delete(m).Error; err != nil {
			return TranslateError(err, "user")
		}
	}
	return deleteByID[model.User](ctx, r.db, id, "user")
}
