// Package directory wraps the external business-directory HTTP API and
// reshapes its responses into this system's field names.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tripcards/internal/middleware"
)

const searchLimit = 50

// Business is a directory search result reshaped into this system's fields.
type Business struct {
	ExternalID  string  `json:"external_id"`
	Name        string  `json:"name"`
	Address1    string  `json:"address1"`
	Address2    string  `json:"address2"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	ZipCode     string  `json:"zip_code"`
	Phone       string  `json:"phone"`
	URL         string  `json:"url"`
	ImageURL    string  `json:"image_url"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	SubCategory string  `json:"sub_category"`
	Category    string  `json:"category_name"`
}

// Review is a directory-side review reshaped into this system's fields.
type Review struct {
	Text        string  `json:"text"`
	Username    string  `json:"username"`
	Rating      float64 `json:"rating"`
	TimeCreated string  `json:"time_created"`
	URL         string  `json:"url"`
}

// Client is the interface handlers depend on; tests substitute a stub.
type Client interface {
	Search(ctx context.Context, term, location string) ([]Business, error)
	Business(ctx context.Context, externalID string) (*Business, error)
	Reviews(ctx context.Context, externalID string) ([]Review, error)
	Autocomplete(ctx context.Context, text string) ([]string, error)
}

// UpstreamError carries the directory-side HTTP status so handlers can pass
// it through unchanged.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("directory API error: status %d: %s", e.Status, e.Body)
}

// HTTPClient is the production Client backed by net/http.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient returns a directory client for the given base URL and API key.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// upstream payload shapes; only the fields we reshape are decoded.
type wireLocation struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	ZipCode  string `json:"zip_code"`
}

type wireCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type wireCategory struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

type wireBusiness struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Location     wireLocation    `json:"location"`
	Coordinates  wireCoordinates `json:"coordinates"`
	Categories   []wireCategory  `json:"categories"`
	ImageURL     string          `json:"image_url"`
	URL          string          `json:"url"`
	DisplayPhone string          `json:"display_phone"`
	Rating       float64         `json:"rating"`
	ReviewCount  int             `json:"review_count"`
}

type wireReview struct {
	Text        string  `json:"text"`
	Rating      float64 `json:"rating"`
	TimeCreated string  `json:"time_created"`
	URL         string  `json:"url"`
	User        struct {
		Name string `json:"name"`
	} `json:"user"`
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, operation string, dest any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		middleware.DirectoryRequests.WithLabelValues(operation, "error").Inc()
		return err
	}
	defer resp.Body.Close()

	middleware.DirectoryRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func reshape(w wireBusiness) Business {
	b := Business{
		ExternalID:  w.ID,
		Name:        w.Name,
		Address1:    w.Location.Address1,
		Address2:    w.Location.Address2,
		City:        w.Location.City,
		State:       w.Location.State,
		Country:     w.Location.Country,
		ZipCode:     w.Location.ZipCode,
		Phone:       w.DisplayPhone,
		URL:         w.URL,
		ImageURL:    w.ImageURL,
		Latitude:    w.Coordinates.Latitude,
		Longitude:   w.Coordinates.Longitude,
		Rating:      w.Rating,
		ReviewCount: w.ReviewCount,
	}
	if len(w.Categories) > 0 {
		b.SubCategory = w.Categories[0].Alias
		b.Category = w.Categories[0].Title
	}
	return b
}

// Search queries the directory for businesses matching term near location.
func (c *HTTPClient) Search(ctx context.Context, term, location string) ([]Business, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("location", location)
	query.Set("sort_by", "best_match")
	query.Set("limit", strconv.Itoa(searchLimit))

	var payload struct {
		Businesses []wireBusiness `json:"businesses"`
	}
	if err := c.get(ctx, "/businesses/search", query, "search", &payload); err != nil {
		return nil, err
	}

	businesses := make([]Business, 0, len(payload.Businesses))
	for _, w := range payload.Businesses {
		businesses = append(businesses, reshape(w))
	}
	return businesses, nil
}

// Business fetches directory details for a single business.
func (c *HTTPClient) Business(ctx context.Context, externalID string) (*Business, error) {
	var payload wireBusiness
	if err := c.get(ctx, "/businesses/"+url.PathEscape(externalID), nil, "business", &payload); err != nil {
		return nil, err
	}
	b := reshape(payload)
	return &b, nil
}

// Reviews fetches directory-side reviews for a business.
func (c *HTTPClient) Reviews(ctx context.Context, externalID string) ([]Review, error) {
	var payload struct {
		Reviews []wireReview `json:"reviews"`
	}
	if err := c.get(ctx, "/businesses/"+url.PathEscape(externalID)+"/reviews", nil, "reviews", &payload); err != nil {
		return nil, err
	}

	reviews := make([]Review, 0, len(payload.Reviews))
	for _, w := range payload.Reviews {
		reviews = append(reviews, Review{
			Text:        w.Text,
			Username:    w.User.Name,
			Rating:      w.Rating,
			TimeCreated: w.TimeCreated,
			URL:         w.URL,
		})
	}
	return reviews, nil
}

// Autocomplete fetches search term suggestions for the given input text.
func (c *HTTPClient) Autocomplete(ctx context.Context, text string) ([]string, error) {
	query := url.Values{}
	query.Set("text", text)

	var payload struct {
		Terms []struct {
			Text string `json:"text"`
		} `json:"terms"`
	}
	if err := c.get(ctx, "/autocomplete", query, "autocomplete", &payload); err != nil {
		return nil, err
	}

	terms := make([]string, 0, len(payload.Terms))
	for _, t := range payload.Terms {
		terms = append(terms, t.Text)
	}
	return terms, nil
}
