package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexpertia/marketplace-api/database/dbtest"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	dbtest.CreateUser(t, env.store, "admin", model.RoleAdmin)
	dbtest.CreateUser(t, env.store, "anna", model.RoleStudent)
	dbtest.CreateUser(t, env.store, "bert", model.RoleStudent)
	dbtest.CreateUser(t, env.store, "carla", model.RoleInstructor)

	users, total, err := env.svc.Admin.ListUsers(ctx, ListUsersRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, users, 4)

	students, total, err := env.svc.Admin.ListUsers(ctx, ListUsersRequest{Role: "student", Limit: 1, Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, students, 1)
	assert.Equal(t, "bert", students[0].Username)

	found, _, err := env.svc.Admin.ListUsers(ctx, ListUsersRequest{Search: "carl"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "carla", found[0].Username)

	_, _, err = env.svc.Admin.ListUsers(ctx, ListUsersRequest{Role: "tutor"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeleteUserRestrictedByBookings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := dbtest.CreateUser(t, env.store, "admin", model.RoleAdmin)
	student := dbtest.CreateUser(t, env.store, "dieter", model.RoleStudent)
	tutor := dbtest.CreateUser(t, env.store, "eva", model.RoleInstructor)
	course := dbtest.CreateCourse(t, env.store, "Welding", dbtest.CreateCategory(t, env.store, "Crafts"), tutor)

	_, err := env.svc.Bookings.Create(ctx, CreateBookingRequest{UserID: student.ID, CourseID: course.ID})
	require.NoError(t, err)

	err = env.svc.Admin.DeleteUser(ctx, admin.ID, student.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "user still has 1 bookings", err.Error())

	err = env.svc.Admin.DeleteUser(ctx, admin.ID, tutor.ID)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "user still has 1 courses", err.Error())

	_, err = env.store.Repos().Users.GetByID(ctx, student.ID)
	require.NoError(t, err)
}

func TestDeleteUserRemovesOwnedRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := dbtest.CreateUser(t, env.store, "admin", model.RoleAdmin)
	student := dbtest.CreateUser(t, env.store, "fritz", model.RoleStudent)

	_, err := env.svc.Notifications.CreateNotification(ctx, CreateNotificationRequest{UserID: student.ID, Message: "welcome"})
	require.NoError(t, err)

	require.NoError(t, env.svc.Admin.DeleteUser(ctx, admin.ID, student.ID))

	_, err = env.store.Repos().Users.GetByID(ctx, student.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	var profiles, notifications int64
	require.NoError(t, env.store.DB().Model(&model.Profile{}).Where("user_id = ?", student.ID).Count(&profiles).Error)
	require.NoError(t, env.store.DB().Model(&model.Notification{}).Where("user_id = ?", student.ID).Count(&notifications).Error)
	assert.Zero(t, profiles)
	assert.Zero(t, notifications)

	err = env.svc.Admin.DeleteUser(ctx, admin.ID, student.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteUserSelf(t *testing.T) {
	env := newTestEnv(t)
	admin := dbtest.CreateUser(t, env.store, "admin", model.RoleAdmin)

	err := env.svc.Admin.DeleteUser(context.Background(), admin.ID, admin.ID)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
