package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nexpertia/marketplace-api/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return create(ctx, r.db, notification, "notification")
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uint) (*model.Notification, error) {
	return first[model.Notification](ctx, r.db, "notification", "id = ?", id)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	return list[model.Notification](ctx, r.db, "notification", "user_id = ?", userID)
}

// statusUpdate skips the model hooks, which would validate the empty model used as the target
func (r *NotificationRepository) statusUpdate(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Session(&gorm.Session{SkipHooks: true}).Model(&model.Notification{})
}

// MarkRead moves one notification from unread to read. Already-read rows are left untouched.
func (r *NotificationRepository) MarkRead(ctx context.Context, id uint, at time.Time) error {
	return TranslateError(r.statusUpdate(ctx).
		Where("id = ? AND status = ?", id, model.NotificationStatusUnread).
		Updates(map[string]interface{}{
			"status":  model.NotificationStatusRead,
			"read_at": at,
		}).Error, "notification")
}

// MarkAllRead returns the number of notifications that changed state
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error) {
	result := r.statusUpdate(ctx).
		Where("user_id = ? AND status = ?", userID, model.NotificationStatusUnread).
		Updates(map[string]interface{}{
			"status":  model.NotificationStatusRead,
			"read_at": at,
		})
	if result.Error != nil {
		return 0, TranslateError(result.Error, "notification")
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND status = ?", userID, model.NotificationStatusUnread).
		Count(&count).Error
	return count, TranslateError(err, "notification")
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscription *model.Subscription) error {
	return create(ctx, r.db, subscription, "subscription")
}

func (r *SubscriptionRepository) Update(ctx context.Context, subscription *model.Subscription) error {
	return save(ctx, r.db, subscription, "subscription")
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uint) (*model.Subscription, error) {
	return first[model.Subscription](ctx, r.db, "subscription", "id = ?", id)
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uint) ([]model.Subscription, error) {
	return list[model.Subscription](ctx, r.db, "subscription", "user_id = ?", userID)
}

type TokenBlacklistRepository struct {
	db *gorm.DB
}

func (r *TokenBlacklistRepository) Create(ctx context.Context, entry *model.JWTTokenBlacklist) error {
	return create(ctx, r.db, entry, "revoked token")
}

func (r *TokenBlacklistRepository) Exists(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.JWTTokenBlacklist{}).Where("token = ?", jti).Count(&count).Error
	return count > 0, TranslateError(err, "revoked token")
}

// DeleteExpired removes entries whose tokens could no longer be used anyway
func (r *TokenBlacklistRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.JWTTokenBlacklist{})
	return result.RowsAffected, TranslateError(result.Error, "revoked token")
}
