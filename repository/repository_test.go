package repository_test

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

func TestUserLookups(t *testing.T) {
	store := dbtest.New(t)
	ctx := context.Background()
	repos := store.Repos()
	user := dbtest.CreateUser(t, store, "grace", model.RoleStudent)

	found, err := repos.Users.GetByUsername(ctx, "grace")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	exists, err := repos.Users.ExistsByUsername(ctx, "grace")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Users.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repos.Users.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "user not found", err.Error())

	dup := &model.User{Username: "grace2", Email: "grace@example.com", PasswordHash: "x", Role: model.RoleStudent}
	err = repos.Users.Create(ctx, dup)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "email already exists", err.Error())
}

func TestUserRoleMustMatchInstructorFlag(t *testing.T) {
	store := dbtest.New(t)
	err := store.Repos().Users.Create(context.Background(), &model.User{
		Username:     "henry",
		Email:        "henry@example.com",
		PasswordHash: "x",
		Role:         model.RoleStudent,
		IsInstructor: true,
	})
	require.ErrorIs(t, err, apperrors.ErrConstraintViolation)
}

func TestBookingRepository(t *testing.T) {
	store := dbtest.New(t)
	ctx := context.Background()
	repos := store.Repos()
	student := dbtest.CreateUser(t, store, "ida", model.RoleStudent)
	tutor := dbtest.CreateUser(t, store, "jan", model.RoleInstructor)
	course := dbtest.CreateCourse(t, store, "Pottery", dbtest.CreateCategory(t, store, "Arts"), tutor)

	first := &model.Booking{UserID: student.ID, CourseID: course.ID}
	second := &model.Booking{UserID: student.ID, CourseID: course.ID}
	require.NoError(t, repos.Bookings.Create(ctx, first))
	require.NoError(t, repos.Bookings.Create(ctx, second))
	assert.False(t, first.BookingDate.IsZero())

	bookings, err := repos.Bookings.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, first.ID, bookings[0].ID)
	assert.Equal(t, second.ID, bookings[1].ID)

	event := "cal-123"
	second.CalendarEventID = &event
	require.NoError(t, repos.Bookings.Update(ctx, second))
	reloaded, err := repos.Bookings.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.CalendarEventID)
	assert.Equal(t, "cal-123", *reloaded.CalendarEventID)

	require.NoError(t, repos.Bookings.Delete(ctx, second.ID))
	err = repos.Bookings.Delete(ctx, second.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "booking not found", err.Error())
}

func TestForeignKeysAreEnforced(t *testing.T) {
	store := dbtest.New(t)
	ctx := context.Background()
	repos := store.Repos()
	student := dbtest.CreateUser(t, store, "kim", model.RoleStudent)
	tutor := dbtest.CreateUser(t, store, "lea", model.RoleInstructor)
	course := dbtest.CreateCourse(t, store, "Chess", dbtest.CreateCategory(t, store, "Games"), tutor)

	err := repos.Bookings.Create(ctx, &model.Booking{UserID: student.ID, CourseID: 9999})
	require.ErrorIs(t, err, apperrors.ErrConstraintViolation)

	require.NoError(t, repos.Bookings.Create(ctx, &model.Booking{UserID: student.ID, CourseID: course.ID}))

	// booked courses cannot be removed
	err = repos.Courses.Delete(ctx, course.ID)
	require.ErrorIs(t, err, apperrors.ErrConstraintViolation)

	unbooked := dbtest.CreateCourse(t, store, "Go", dbtest.CreateCategory(t, store, "Strategy"), tutor)
	require.NoError(t, repos.Courses.Delete(ctx, unbooked.ID))
}

func TestFeedbackRepository(t *testing.T) {
	store := dbtest.New(t)
	ctx := context.Background()
	repos := store.Repos()
	student := dbtest.CreateUser(t, store, "max", model.RoleStudent)
	tutor := dbtest.CreateUser(t, store, "nina", model.RoleInstructor)
	course := dbtest.CreateCourse(t, store, "Yoga", dbtest.CreateCategory(t, store, "Sports"), tutor)

	err := repos.Feedback.Create(ctx, &model.Feedback{UserID: student.ID, CourseID: course.ID, Rating: 6})
	var cv *apperrors.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, apperrors.ConstraintCheck, cv.Kind)

	fb := &model.Feedback{UserID: student.ID, CourseID: course.ID, Rating: 5, Comment: "great"}
	require.NoError(t, repos.Feedback.Create(ctx, fb))

	got, err := repos.Feedback.GetByID(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, "great", got.Comment)

	require.NoError(t, repos.Feedback.Delete(ctx, fb.ID))
	list, err := repos.Feedback.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProfileRepository(t *testing.T) {
	store := dbtest.New(t)
	ctx := context.Background()
	repos := store.Repos()
	student := dbtest.CreateUser(t, store, "olga", model.RoleStudent)

	profile, err := repos.Profiles.GetByUserID(ctx, student.ID)
	require.NoError(t, err)

	byID, err := repos.Profiles.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, byID.UserID)

	// one profile per user
	err = repos.Profiles.Create(ctx, &model.Profile{UserID: student.ID})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, repos.Profiles.Delete(ctx, profile.ID))
	_, err = repos.Profiles.GetByUserID(ctx, student.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "profile not found", err.Error())
}

func TestInvoiceRepository(t *testing.T) {
	store := dbtest.New(t)
	ctx := context.Background()
	repos := store.Repos()
	student := dbtest.CreateUser(t, store, "paul", model.RoleStudent)
	tutor := dbtest.CreateUser(t, store, "quinn", model.RoleInstructor)
	course := dbtest.CreateCourse(t, store, "Sailing", dbtest.CreateCategory(t, store, "Outdoor"), tutor)
	booking := &model.Booking{UserID: student.ID, CourseID: course.ID}
	require.NoError(t, repos.Bookings.Create(ctx, booking))

	invoice := &model.Invoice{
		BookingID:     booking.ID,
		UserID:        student.ID,
		InvoiceNumber: "INV-20261015-0000ABCD",
		Amount:        49.5,
		DueDate:       time.Now().UTC().AddDate(0, 0, 14),
	}
	require.NoError(t, repos.Invoices.Create(ctx, invoice))

	found, err := repos.Invoices.GetByNumber(ctx, "INV-20261015-0000ABCD")
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, found.ID)
	assert.Equal(t, model.InvoiceStatusUnpaid, found.Status)

	_, err = repos.Invoices.GetByNumber(ctx, "INV-missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "invoice not found", err.Error())

	require.NoError(t, repos.Invoices.Delete(ctx, invoice.ID))
	_, err = repos.Invoices.GetByBookingID(ctx, booking.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
