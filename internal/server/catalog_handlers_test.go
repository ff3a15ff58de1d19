package server

import (
	"fmt"
	"net/http"
	"testing"

	"tripcards/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Covers the destination/category/business CRUD surface: regular users can
// create and read, mutation beyond that is admin-only.
func TestCatalogAdminGuards(t *testing.T) {
	srv, app, db := setupTestServer(t, nil)

	_, userToken := createTestUser(t, srv, db, "plain_user", false)
	_, adminToken := createTestUser(t, srv, db, "catalog_admin", true)

	// create a destination as a regular user
	resp := doRequest(t, app, http.MethodPost, "/api/destinations/", userToken, map[string]any{
		"city": "Tokyo", "state": "Tokyo", "country": "Japan",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	destID := uint(body["destination"].(map[string]any)["id"].(float64))
	destPath := fmt.Sprintf("/api/destinations/%d", destID)

	t.Run("PatchRequiresAdmin", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPatch, destPath, userToken, map[string]any{"latitude": 35.6})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = doRequest(t, app, http.MethodPatch, destPath, adminToken, map[string]any{"latitude": 35.6})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("DeleteRequiresAdmin", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodDelete, destPath, userToken, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/destinations/", userToken, map[string]any{"city": "Nowhere"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	srv, app, db := setupTestServer(t, nil)
	_, token := createTestUser(t, srv, db, "cat_user", false)

	resp := doRequest(t, app, http.MethodPost, "/api/categories/", token, map[string]any{
		"category_name": "Nightlife",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	t.Run("DuplicateIsValidationError", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/categories/", token, map[string]any{
			"category_name": "Nightlife",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Category already exists", errorMessage(t, body))
	})

	t.Run("FilterByName", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/categories/?category_name=night", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["categories"].([]any), 1)
	})
}

func TestBusinessEndpoints(t *testing.T) {
	srv, app, db := setupTestServer(t, nil)
	_, token := createTestUser(t, srv, db, "biz_user", false)

	dest := &models.Destination{City: "Barcelona", State: "Catalonia", Country: "Spain"}
	require.NoError(t, db.Create(dest).Error)
	cat := &models.Category{CategoryName: "Tapas"}
	require.NoError(t, db.Create(cat).Error)

	resp := doRequest(t, app, http.MethodPost, "/api/businesses/", token, map[string]any{
		"external_id":    "yelp-tapas",
		"name":           "El Xampanyet",
		"city":           "Barcelona",
		"rating":         4.5,
		"category_id":    cat.ID,
		"destination_id": dest.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	bizID := uint(body["business"].(map[string]any)["id"].(float64))

	t.Run("DuplicateIsValidationError", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/businesses/", token, map[string]any{
			"external_id":    "yelp-tapas",
			"name":           "El Xampanyet",
			"category_id":    cat.ID,
			"destination_id": dest.ID,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Contains(t, errorMessage(t, body), "Duplicate business")
	})

	t.Run("GetIncludesReviews", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/businesses/%d", bizID), token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "El Xampanyet", body["business"].(map[string]any)["name"])
	})

	t.Run("FilterByCityAndRating", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/businesses/?city=BARCELONA&rating=4", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Len(t, body["businesses"].([]any), 1)
	})

	t.Run("BadFilterValue", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/businesses/?rating=high", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
