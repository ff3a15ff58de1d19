package server

import (
	"encoding/json"
	"strconv"

	"tripcards/internal/models"
	"tripcards/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// CreateBusiness handles POST /api/businesses
func (s *Server) CreateBusiness(c *fiber.Ctx) error {
	var req struct {
		ExternalID          string  `json:"external_id"`
		Name                string  `json:"name"`
		Address1            string  `json:"address1"`
		Address2            string  `json:"address2"`
		City                string  `json:"city"`
		State               string  `json:"state"`
		Country             string  `json:"country"`
		ZipCode             string  `json:"zip_code"`
		Phone               string  `json:"phone"`
		URL                 string  `json:"url"`
		ImageURL            string  `json:"image_url"`
		Latitude            float64 `json:"latitude"`
		Longitude           float64 `json:"longitude"`
		Rating              float64 `json:"rating"`
		ExternalReviewCount int     `json:"external_review_count"`
		SubCategory         string  `json:"sub_category"`
		CategoryName        string  `json:"category_name"`
		CategoryID          uint    `json:"category_id"`
		DestinationID       uint    `json:"destination_id"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if req.ExternalID == "" || req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("External id and name are required"))
	}
	if req.CategoryID == 0 || req.DestinationID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Category id and destination id are required"))
	}

	business := &models.Business{
		ExternalID:          req.ExternalID,
		Name:                req.Name,
		Address1:            req.Address1,
		Address2:            req.Address2,
		City:                req.City,
		State:               req.State,
		Country:             req.Country,
		ZipCode:             req.ZipCode,
		Phone:               req.Phone,
		URL:                 req.URL,
		ImageURL:            req.ImageURL,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		Rating:              req.Rating,
		ExternalReviewCount: req.ExternalReviewCount,
		SubCategory:         req.SubCategory,
		CategoryName:        req.CategoryName,
		CategoryID:          req.CategoryID,
		DestinationID:       req.DestinationID,
	}
	if err := s.businessRepo.Create(c.Context(), business); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"business": business})
}

// GetBusinesses handles GET /api/businesses with optional filters.
func (s *Server) GetBusinesses(c *fiber.Ctx) error {
	filter := repository.BusinessFilter{
		ExternalID:   c.Query("external_id"),
		Name:         c.Query("name"),
		City:         c.Query("city"),
		ZipCode:      c.Query("zip_code"),
		CategoryName: c.Query("category_name"),
	}
	if v := c.Query("destination_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid destination id"))
		}
		filter.DestinationID = uint(id)
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid category id"))
		}
		filter.CategoryID = uint(id)
	}
	// "rating" filters to businesses rated at least this value
	if v := c.Query("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid minimum rating"))
		}
		filter.MinRating = rating
	}

	businesses, err := s.businessRepo.FindAll(c.Context(), filter)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"businesses": businesses})
}

// GetBusiness handles GET /api/businesses/:id and includes the business's reviews.
func (s *Server) GetBusiness(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	business, err := s.businessRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"business": business})
}

// UpdateBusiness handles PATCH /api/businesses/:id (admin only)
func (s *Server) UpdateBusiness(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	business, err := s.businessRepo.Update(c.Context(), id, fields)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"business": business})
}

// DeleteBusiness handles DELETE /api/businesses/:id (admin only)
func (s *Server) DeleteBusiness(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.businessRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": strconv.FormatUint(uint64(id), 10)})
}
