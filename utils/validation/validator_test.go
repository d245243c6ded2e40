package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

type signup struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Rate     *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
	Role     string   `json:"role" validate:"omitempty,oneof=student instructor"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(signup{Email: "a@example.com", Password: "password123"}))

	err := v.Validate(signup{Password: "short"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "email is required; password must be at least 8 characters", err.Error())

	rate := -1.0
	err = v.Validate(signup{Email: "a@example.com", Password: "password123", Rate: &rate, Role: "admin"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "hourly_rate must be greater than or equal to 0; role must be one of student instructor", err.Error())
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()
	fields := FormatValidationErrors(v.ValidateStruct(signup{Email: "nope", Password: "password123"}))
	assert.Equal(t, map[string]string{"email": "invalid email format"}, fields)

	assert.Empty(t, FormatValidationErrors(nil))
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
		message  string
	}{
		{"alice_01", true, ""},
		{"bo", false, "username must be at least 3 characters"},
		{"a-very-long-username-over-thirty", false, "username must be at most 30 characters"},
		{"alice smith", false, "username can only contain letters, numbers, underscores, and hyphens"},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			valid, msg := ValidateUsername(tt.username)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("student@uni.example.com"))
	assert.False(t, ValidateEmail("student@"))
	assert.False(t, ValidateEmail("a@b"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Intro to Go", SanitizeString("  Intro\x00 to Go \n"))
}
