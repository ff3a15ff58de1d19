package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripcards/internal/config"
	"tripcards/internal/directory"
	"tripcards/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubDirectory is a canned directory client for handler tests.
type stubDirectory struct {
	searchResult []directory.Business
	business     *directory.Business
	reviews      []directory.Review
	terms        []string
	err          error
}

func (s *stubDirectory) Search(_ context.Context, _, _ string) ([]directory.Business, error) {
	return s.searchResult, s.err
}

func (s *stubDirectory) Business(_ context.Context, _ string) (*directory.Business, error) {
	return s.business, s.err
}

func (s *stubDirectory) Reviews(_ context.Context, _ string) ([]directory.Review, error) {
	return s.reviews, s.err
}

func (s *stubDirectory) Autocomplete(_ context.Context, _ string) ([]string, error) {
	return s.terms, s.err
}

// setupTestServer builds a Server over an in-memory database with all routes
// mounted, plus a stub directory client.
func setupTestServer(t *testing.T, dir directory.Client) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Destination{},
		&models.Category{},
		&models.Business{},
		&models.Tripcard{},
		&models.TripcardBusiness{},
		&models.Review{},
		&models.Follow{},
	))

	cfg := &config.Config{JWTSecret: "test_secret", Env: "test"}
	if dir == nil {
		dir = &stubDirectory{}
	}

	srv, err := NewServerWithDeps(cfg, db, nil, dir)
	require.NoError(t, err)
	srv.promMiddleware = nil

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, db
}

// createTestUser persists a user and returns it with a valid bearer token.
func createTestUser(t *testing.T, srv *Server, db *gorm.DB, username string, admin bool) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$10$1234567890123456789012345678901234567890123456789012", // not used for login here
		IsAdmin:  admin,
	}
	require.NoError(t, db.Create(user).Error)

	token, err := srv.generateToken(user)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// errorBody extracts the nested error object from a decoded response.
func errorBody(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected nested error object, got %v", body["error"])
	return errObj
}

func errorMessage(t *testing.T, body map[string]any) string {
	t.Helper()
	msg, _ := errorBody(t, body)["message"].(string)
	return msg
}
