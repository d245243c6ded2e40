// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nexpertia/marketplace-api/database"
	"github.com/nexpertia/marketplace-api/model"
	"github.com/nexpertia/marketplace-api/utils/auth"
)

// Password is the plain password of every user created by CreateUser
const Password = "password123"

// New returns a migrated store backed by a private in-memory SQLite database
func New(t testing.TB) *database.GORMStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := database.NewGORMStore(db, zerolog.Nop())
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Hasher is a bcrypt hasher at the lowest cost
func Hasher() auth.PasswordHasher {
	return auth.NewBcryptHasher(4)
}

// CreateUser inserts a user with the given role, plus the extension row a registration would create
func CreateUser(t testing.TB, store *database.GORMStore, username string, role model.Role) *model.User {
	t.Helper()
	ctx := context.Background()

	hash, err := Hasher().Hash(Password)
	require.NoError(t, err)

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		IsInstructor: role == model.RoleInstructor,
	}
	repos := store.Repos()
	require.NoError(t, repos.Users.Create(ctx, user))

	ext := model.NewExtensionFor(user)
	switch ext.Kind {
	case model.ExtensionInstructor:
		require.NoError(t, repos.Instructors.Create(ctx, ext.Instructor))
	case model.ExtensionProfile:
		require.NoError(t, repos.Profiles.Create(ctx, ext.Profile))
	}
	return user
}

// CreateCategory inserts a category
func CreateCategory(t testing.TB, store *database.GORMStore, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, store.Repos().Categories.Create(context.Background(), category))
	return category
}

// CreateCourse inserts a course taught by instructor
func CreateCourse(t testing.TB, store *database.GORMStore, title string, category *model.Category, instructor *model.User) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:        title,
		Price:        49.5,
		CategoryID:   category.ID,
		InstructorID: instructor.ID,
	}
	require.NoError(t, store.Repos().Courses.Create(context.Background(), course))
	return course
}
