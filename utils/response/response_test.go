package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexpertia/marketplace-api/utils/apperrors"
)

func render(t *testing.T, err error) (int, Response) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return FromError(c, err) })

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestFromError(t *testing.T) {
	status, body := render(t, apperrors.NewNotFoundError("booking"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, body.Success)
	assert.Equal(t, "booking not found", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Empty(t, body.Error.Details)

	status, body = render(t, apperrors.NewConstraintViolation(apperrors.ConstraintUnique, "users.email", "email already exists", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CONSTRAINT_VIOLATION", body.Error.Code)
	assert.Equal(t, "users.email", body.Error.Details)

	status, body = render(t, errors.New("dial tcp 10.0.0.3:5432: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Message)
}

func TestCalculatePagination(t *testing.T) {
	assert.Equal(t, PaginationMeta{CurrentPage: 2, PerPage: 20, Total: 41, TotalPages: 3}, CalculatePagination(2, 20, 41))
	assert.Equal(t, PaginationMeta{CurrentPage: 1, PerPage: 10, Total: 0, TotalPages: 0}, CalculatePagination(0, 0, 0))
	assert.Equal(t, 100, CalculatePagination(1, 500, 5).PerPage)
}
