package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

func TestTranslateErrorNotFound(t *testing.T) {
	err := TranslateError(fmt.Errorf("query: %w", gorm.ErrRecordNotFound), "course")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "course not found", err.Error())
}

func TestTranslateErrorPassesAppErrors(t *testing.T) {
	original := apperrors.NewValidationError("price must be greater than or equal to 0")
	assert.Same(t, original, TranslateError(original, "course"))
	assert.NoError(t, TranslateError(nil, "course"))
}

func TestTranslateErrorSQLiteMessages(t *testing.T) {
	tests := []struct {
		msg        string
		kind       apperrors.ConstraintKind
		constraint string
		public     string
	}{
		{"UNIQUE constraint failed: users.email", apperrors.ConstraintUnique, "users.email", "email already exists"},
		{"FOREIGN KEY constraint failed", apperrors.ConstraintForeignKey, "", "referenced record does not exist or is still in use"},
		{"NOT NULL constraint failed: courses.title", apperrors.ConstraintNotNull, "courses.title", "courses.title is required"},
		{"CHECK constraint failed: chk_courses_price", apperrors.ConstraintCheck, "chk_courses_price", "value violates constraint chk_courses_price"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := TranslateError(errors.New(tt.msg), "course")
			var cv *apperrors.ConstraintViolation
			require.ErrorAs(t, err, &cv)
			assert.Equal(t, tt.kind, cv.Kind)
			assert.Equal(t, tt.constraint, cv.Constraint)
			assert.Equal(t, tt.public, cv.Message)
		})
	}
}

func TestTranslateErrorPostgres(t *testing.T) {
	err := TranslateError(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_users_email",
		Detail:         "Key (email)=(a@example.com) already exists.",
	}, "user")
	require.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "email already exists", err.Error())

	err = TranslateError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_bookings_course"}, "booking")
	var cv *apperrors.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, apperrors.ConstraintForeignKey, cv.Kind)
	assert.Equal(t, "fk_bookings_course", cv.Constraint)
}

func TestTranslateErrorGormSentinels(t *testing.T) {
	assert.ErrorIs(t, TranslateError(gorm.ErrDuplicatedKey, "category"), apperrors.ErrConflict)
	assert.ErrorIs(t, TranslateError(gorm.ErrForeignKeyViolated, "booking"), apperrors.ErrConstraintViolation)
}

func TestTranslateErrorFallsBackToPersistence(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := TranslateError(cause, "course")
	require.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to persist changes", apperrors.PublicMessage(err))
}
