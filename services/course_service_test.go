package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexpertia/marketplace-api/database/dbtest"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

func TestCreateCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tutor := dbtest.CreateUser(t, env.store, "elena", model.RoleInstructor)
	category := dbtest.CreateCategory(t, env.store, "Programming")

	course, err := env.svc.Courses.Create(ctx, tutor, CreateCourseRequest{
		Title:       "  Intro to Go  ",
		Description: "Types, interfaces and goroutines",
		Price:       99.9,
		CategoryID:  category.ID,
		Resources:   []string{"https://go.dev/tour"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", course.Title)
	assert.Equal(t, "Programming", course.Category)
	assert.Equal(t, tutor.ID, course.Instructor.ID)
	assert.Equal(t, "elena", course.Instructor.Username)
	assert.Equal(t, []string{"https://go.dev/tour"}, course.Resources)

	got, err := env.svc.Courses.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.Title, got.Title)
	assert.Equal(t, course.Resources, got.Resources)
}

func TestCreateCourseReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := dbtest.CreateUser(t, env.store, "fiona", model.RoleAdmin)
	tutor := dbtest.CreateUser(t, env.store, "george", model.RoleInstructor)
	student := dbtest.CreateUser(t, env.store, "hana", model.RoleStudent)
	category := dbtest.CreateCategory(t, env.store, "Music")

	_, err := env.svc.Courses.Create(ctx, admin, CreateCourseRequest{Title: "Guitar", CategoryID: 9999, InstructorID: tutor.ID})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "category not found", err.Error())

	_, err = env.svc.Courses.Create(ctx, admin, CreateCourseRequest{Title: "Guitar", CategoryID: category.ID, InstructorID: 9999})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "instructor not found", err.Error())

	_, err = env.svc.Courses.Create(ctx, admin, CreateCourseRequest{Title: "Guitar", CategoryID: category.ID, InstructorID: student.ID})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.svc.Courses.Create(ctx, tutor, CreateCourseRequest{Title: "Guitar", CategoryID: category.ID, InstructorID: admin.ID})
	require.ErrorIs(t, err, apperrors.ErrAuthorization)

	_, err = env.svc.Courses.Create(ctx, admin, CreateCourseRequest{Title: "Guitar", Price: -5, CategoryID: category.ID, InstructorID: tutor.ID})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	course, err := env.svc.Courses.Create(ctx, admin, CreateCourseRequest{Title: "Guitar", CategoryID: category.ID, InstructorID: tutor.ID})
	require.NoError(t, err)
	assert.Equal(t, tutor.ID, course.Instructor.ID)
	assert.Equal(t, []string{}, course.Resources)
}

func TestListCoursesByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tutor := dbtest.CreateUser(t, env.store, "igor", model.RoleInstructor)
	music := dbtest.CreateCategory(t, env.store, "Music")
	maths := dbtest.CreateCategory(t, env.store, "Mathematics")
	dbtest.CreateCourse(t, env.store, "Violin", music, tutor)
	dbtest.CreateCourse(t, env.store, "Calculus", maths, tutor)
	dbtest.CreateCourse(t, env.store, "Drums", music, tutor)

	all, err := env.svc.Courses.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyMusic, err := env.svc.Courses.List(ctx, &music.ID)
	require.NoError(t, err)
	require.Len(t, onlyMusic, 2)
	for _, c := range onlyMusic {
		assert.Equal(t, "Music", c.Category)
		assert.Equal(t, "igor", c.Instructor.Username)
	}

	record, err := env.store.Repos().Instructors.GetByUserID(ctx, tutor.ID)
	require.NoError(t, err)
	taught, err := env.svc.Instructors.Courses(ctx, record.ID)
	require.NoError(t, err)
	assert.Len(t, taught, 3)
}

func TestAddResources(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tutor := dbtest.CreateUser(t, env.store, "julia", model.RoleInstructor)
	stranger := dbtest.CreateUser(t, env.store, "karl", model.RoleInstructor)
	course := dbtest.CreateCourse(t, env.store, "Painting", dbtest.CreateCategory(t, env.store, "Art"), tutor)

	resp, err := env.svc.Courses.AddResources(ctx, tutor, course.ID, AddResourcesRequest{Resources: []string{"https://a.example/1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/1"}, resp.Resources)

	resp, err = env.svc.Courses.AddResources(ctx, tutor, course.ID, AddResourcesRequest{Resources: []string{"https://a.example/2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/1", "https://a.example/2"}, resp.Resources)

	_, err = env.svc.Courses.AddResources(ctx, stranger, course.ID, AddResourcesRequest{Resources: []string{"x"}})
	require.ErrorIs(t, err, apperrors.ErrAuthorization)

	_, err = env.svc.Courses.AddResources(ctx, tutor, 9999, AddResourcesRequest{Resources: []string{"x"}})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.svc.Courses.AddResources(ctx, tutor, course.ID, AddResourcesRequest{})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Courses.CreateCategory(ctx, CreateCategoryRequest{Name: "Languages"})
	require.NoError(t, err)

	_, err = env.svc.Courses.CreateCategory(ctx, CreateCategoryRequest{Name: "Languages"})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	categories, err := env.svc.Courses.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestCourseResponseJSONRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tutor := dbtest.CreateUser(t, env.store, "lena", model.RoleInstructor)
	category := dbtest.CreateCategory(t, env.store, "Business")

	created, err := env.svc.Courses.Create(ctx, tutor, CreateCourseRequest{
		Title:       "Bookkeeping",
		Description: "Double entry basics",
		Price:       12.5,
		CategoryID:  category.ID,
	})
	require.NoError(t, err)

	body, err := json.Marshal(created)
	require.NoError(t, err)

	var decoded model.CourseResponse
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "Bookkeeping", decoded.Title)
	assert.Equal(t, "Double entry basics", decoded.Description)
	assert.Equal(t, 12.5, decoded.Price)
	assert.Equal(t, "Business", decoded.Category)
	assert.Equal(t, tutor.ID, decoded.Instructor.ID)
	assert.Equal(t, "lena", decoded.Instructor.Username)
}

func TestFeedback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := dbtest.CreateUser(t, env.store, "milo", model.RoleStudent)
	tutor := dbtest.CreateUser(t, env.store, "nora", model.RoleInstructor)
	course := dbtest.CreateCourse(t, env.store, "Yoga", dbtest.CreateCategory(t, env.store, "Sport"), tutor)

	for _, rating := range []int{0, 6} {
		_, err := env.svc.Feedback.Create(ctx, CreateFeedbackRequest{UserID: student.ID, CourseID: course.ID, Rating: rating})
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, "rating must be between 1 and 5", err.Error())
	}

	_, err := env.svc.Feedback.Create(ctx, CreateFeedbackRequest{UserID: student.ID, CourseID: 9999, Rating: 4})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	fb, err := env.svc.Feedback.Create(ctx, CreateFeedbackRequest{UserID: student.ID, CourseID: course.ID, Rating: 5, Comment: " great "})
	require.NoError(t, err)
	assert.Equal(t, "great", fb.Comment)

	list, err := env.svc.Feedback.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Rating)
}
