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

func strPtr(s string) *string { return &s }

func TestProfileUpdateIsPartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.svc.Auth.Register(ctx, registerRequest("wendy", false))
	require.NoError(t, err)
	require.Equal(t, "1 Main Street", reg.Extension.Profile.Address)

	_, err = env.svc.Profiles.Update(ctx, reg.User.ID, model.ProfilePatch{Bio: strPtr("Loves maths")})
	require.NoError(t, err)

	ext, err := env.svc.Profiles.Update(ctx, reg.User.ID, model.ProfilePatch{PhoneNumber: strPtr("+49 30 123")})
	require.NoError(t, err)
	require.Equal(t, model.ExtensionProfile, ext.Kind)
	assert.Equal(t, "Loves maths", ext.Profile.Bio)
	assert.Equal(t, "1 Main Street", ext.Profile.Address)
	assert.Equal(t, "+49 30 123", ext.Profile.PhoneNumber)

	stored, err := env.svc.Profiles.Get(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, ext.Profile.Bio, stored.Profile.Bio)
	assert.Equal(t, ext.Profile.Address, stored.Profile.Address)
}

func TestInstructorProfileUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tutor := dbtest.CreateUser(t, env.store, "xavier", model.RoleInstructor)

	rate := 45.0
	ext, err := env.svc.Profiles.Update(ctx, tutor.ID, model.ProfilePatch{
		Expertise: strPtr("Jazz piano"),
		Rate:      &rate,
		Address:   strPtr("ignored for instructors"),
	})
	require.NoError(t, err)
	require.Equal(t, model.ExtensionInstructor, ext.Kind)
	assert.Equal(t, "Jazz piano", ext.Instructor.Expertise)
	assert.Equal(t, 45.0, ext.Instructor.Rate)

	ext, err = env.svc.Profiles.Update(ctx, tutor.ID, model.ProfilePatch{Bio: strPtr("20 years on stage")})
	require.NoError(t, err)
	assert.Equal(t, "Jazz piano", ext.Instructor.Expertise)
	assert.Equal(t, "20 years on stage", ext.Instructor.Bio)

	negative := -1.0
	_, err = env.svc.Profiles.Update(ctx, tutor.ID, model.ProfilePatch{Rate: &negative})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestProfileMissingExtension(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := dbtest.CreateUser(t, env.store, "yara", model.RoleAdmin)

	_, err := env.svc.Profiles.Get(ctx, admin.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "profile not found", err.Error())

	// a student whose profile row was removed is not given a new one
	student := dbtest.CreateUser(t, env.store, "zack", model.RoleStudent)
	require.NoError(t, env.store.DB().Where("user_id = ?", student.ID).Delete(&model.Profile{}).Error)

	_, err = env.svc.Profiles.Update(ctx, student.ID, model.ProfilePatch{Bio: strPtr("hi")})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	var count int64
	require.NoError(t, env.store.DB().Model(&model.Profile{}).Where("user_id = ?", student.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInstructorRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tutor := dbtest.CreateUser(t, env.store, "amber", model.RoleInstructor)
	other := dbtest.CreateUser(t, env.store, "brian", model.RoleInstructor)
	student := dbtest.CreateUser(t, env.store, "chloe", model.RoleStudent)

	list, err := env.svc.Instructors.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "amber", list[0].Username)

	record, err := env.store.Repos().Instructors.GetByUserID(ctx, tutor.ID)
	require.NoError(t, err)

	_, err = env.svc.Instructors.Update(ctx, other, record.ID, model.ProfilePatch{Bio: strPtr("hijack")})
	require.ErrorIs(t, err, apperrors.ErrAuthorization)

	updated, err := env.svc.Instructors.Update(ctx, tutor, record.ID, model.ProfilePatch{Bio: strPtr("mine")})
	require.NoError(t, err)
	assert.Equal(t, "mine", updated.Bio)

	_, err = env.svc.Instructors.Create(ctx, CreateInstructorRequest{UserID: tutor.ID})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = env.svc.Instructors.Create(ctx, CreateInstructorRequest{UserID: student.ID})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, env.svc.Instructors.Delete(ctx, tutor, record.ID))
	_, err = env.svc.Instructors.Get(ctx, record.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	created, err := env.svc.Instructors.Create(ctx, CreateInstructorRequest{UserID: tutor.ID, Expertise: "Cello", Rate: 30})
	require.NoError(t, err)
	assert.Equal(t, "amber", created.Username)
	assert.Equal(t, "Cello", created.Expertise)
}

func TestUploadProfilePicture(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := dbtest.CreateUser(t, env.store, "dora", model.RoleStudent)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	url, err := env.svc.Uploads.ProfilePicture(ctx, student.ID, "me.png", png)
	require.NoError(t, err)
	assert.Regexp(t, `^/uploads/profile_pictures/[0-9a-f-]{36}\.png$`, url)

	ext, err := env.svc.Profiles.Get(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, url, ext.Profile.ProfilePicture)

	_, err = env.svc.Uploads.ProfilePicture(ctx, student.ID, "me.exe", png)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.svc.Uploads.ProfilePicture(ctx, student.ID, "me.jpg", png)
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
