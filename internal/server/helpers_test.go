package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripcards/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"businessId", "business ID"},
		{"userId", "user ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, statusForError(models.NewNotFoundError("User", 1)))
	assert.Equal(t, fiber.StatusBadRequest, statusForError(models.NewValidationError("bad")))
	assert.Equal(t, fiber.StatusUnauthorized, statusForError(models.NewUnauthorizedError("no")))
	assert.Equal(t, fiber.StatusInternalServerError, statusForError(models.NewInternalError(errors.New("boom"))))
	assert.Equal(t, fiber.StatusInternalServerError, statusForError(errors.New("untyped")))
}

// Every failed request carries the same nested envelope:
// {"error": {"message": ..., "status": ...}}.
func TestErrorEnvelopeShape(t *testing.T) {
	srv, app, db := setupTestServer(t, &stubDirectory{})
	_, token := createTestUser(t, srv, db, "envelope_user", false)

	resp := doRequest(t, app, http.MethodGet, "/api/users/99999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)

	errObj := errorBody(t, body)
	assert.Equal(t, "User with ID 99999 not found", errObj["message"])
	assert.EqualValues(t, http.StatusNotFound, errObj["status"])
	assert.Len(t, errObj, 2)

	// internal error detail never leaks; unauthenticated requests use the
	// same shape
	resp = doRequest(t, app, http.MethodGet, "/api/users/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errObj = errorBody(t, decodeBody(t, resp))
	assert.EqualValues(t, http.StatusUnauthorized, errObj["status"])
	assert.NotEmpty(t, errObj["message"])
}

func TestParseID(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/things/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	t.Run("Valid", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/42", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("NonNumeric", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Zero", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/0", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Negative", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/things/-3", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// ReadinessCheck should report unhealthy when the database ping fails.
func TestReadinessCheckDatabaseDown(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing() // gorm.Open verifies the connection
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	s := &Server{db: db}
	app := fiber.New()
	app.Get("/health/ready", s.ReadinessCheck)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
