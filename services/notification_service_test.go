package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexpertia/marketplace-api/database/dbtest"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

func TestMarkReadIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := dbtest.CreateUser(t, env.store, "quinn", model.RoleStudent)

	n, err := env.svc.Notifications.CreateNotification(ctx, CreateNotificationRequest{
		UserID:  user.ID,
		Type:    model.NotificationTypeReminder,
		Message: "Class starts in one hour",
	})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusUnread, n.Status)

	first, err := env.svc.Notifications.MarkRead(ctx, user, n.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusRead, first.Status)
	require.NotNil(t, first.ReadAt)

	second, err := env.svc.Notifications.MarkRead(ctx, user, n.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusRead, second.Status)
	require.NotNil(t, second.ReadAt)
	assert.WithinDuration(t, *first.ReadAt, *second.ReadAt, time.Millisecond)

	stored, err := env.store.Repos().Notifications.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationStatusRead, stored.Status)
}

func TestMarkReadRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := dbtest.CreateUser(t, env.store, "rosa", model.RoleStudent)
	other := dbtest.CreateUser(t, env.store, "sam", model.RoleStudent)
	admin := dbtest.CreateUser(t, env.store, "root", model.RoleAdmin)

	n, err := env.svc.Notifications.CreateNotification(ctx, CreateNotificationRequest{UserID: owner.ID, Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationTypeGeneral, n.Type)

	_, err = env.svc.Notifications.MarkRead(ctx, other, n.ID)
	require.ErrorIs(t, err, apperrors.ErrAuthorization)

	_, err = env.svc.Notifications.MarkRead(ctx, admin, n.ID)
	require.NoError(t, err)

	_, err = env.svc.Notifications.MarkRead(ctx, owner, 9999)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListNotificationsEmpty(t *testing.T) {
	env := newTestEnv(t)
	user := dbtest.CreateUser(t, env.store, "tina", model.RoleStudent)

	_, err := env.svc.Notifications.ListByUser(context.Background(), user.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "notifications not found", err.Error())
}

func TestMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := dbtest.CreateUser(t, env.store, "uma", model.RoleStudent)

	for _, msg := range []string{"one", "two", "three"} {
		_, err := env.svc.Notifications.CreateNotification(ctx, CreateNotificationRequest{UserID: user.ID, Message: msg})
		require.NoError(t, err)
	}

	unread, err := env.svc.Notifications.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	updated, err := env.svc.Notifications.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, updated)

	updated, err = env.svc.Notifications.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, updated)

	unread, err = env.svc.Notifications.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestCreateNotificationUnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := dbtest.CreateUser(t, env.store, "vera", model.RoleStudent)

	_, err := env.svc.Notifications.CreateNotification(ctx, CreateNotificationRequest{UserID: 9999, Message: "x"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	bookingID := uint(9999)
	_, err = env.svc.Notifications.CreateNotification(ctx, CreateNotificationRequest{UserID: user.ID, Message: "x", BookingID: &bookingID})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "booking not found", err.Error())
}

func TestCreateNotificationValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := dbtest.CreateUser(t, env.store, "wren", model.RoleStudent)

	_, err := env.svc.Notifications.CreateNotification(ctx, CreateNotificationRequest{UserID: user.ID, Type: "spam", Message: "x"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "type must be one of")

	_, err = env.svc.Notifications.CreateNotification(ctx, CreateNotificationRequest{UserID: user.ID})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "message is required")

	list, err := env.store.Repos().Notifications.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
