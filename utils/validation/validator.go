package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

var (
	// EmailRegex is a simple email validation regex
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// Validate runs struct validation and wraps failures as a validation error
// listing every offending field
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	fields := FormatValidationErrors(err)
	if len(fields) == 0 {
		return apperrors.NewValidationError("invalid request")
	}
	return apperrors.NewValidationError("%s", joinFieldErrors(fields))
}

func joinFieldErrors(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	return strings.Join(msgs, "; ")
}

// FormatValidationErrors converts validation errors to a user-friendly format
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				out[field] = fmt.Sprintf("%s is required", field)
			case "email":
				out[field] = "invalid email format"
			case "min":
				out[field] = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
			case "max":
				out[field] = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
			case "gte":
				out[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
			case "lte":
				out[field] = fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
			case "oneof":
				out[field] = fmt.Sprintf("%s must be one of %s", field, e.Param())
			default:
				out[field] = fmt.Sprintf("%s is invalid", field)
			}
		}
	}

	return out
}

// ValidateEmail checks if an email is valid
func ValidateEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	return EmailRegex.MatchString(email)
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) (bool, string) {
	if len(username) < 3 {
		return false, "username must be at least 3 characters"
	}
	if len(username) > 30 {
		return false, "username must be at most 30 characters"
	}

	// Only alphanumeric, underscore, and hyphen
	if !usernameRegex.MatchString(username) {
		return false, "username can only contain letters, numbers, underscores, and hyphens"
	}

	return true, ""
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}
