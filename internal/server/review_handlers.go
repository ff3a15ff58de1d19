package server

import (
	"encoding/json"
	"strconv"

	"tripcards/internal/models"
	"tripcards/internal/repository"
	"tripcards/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateReview handles POST /api/reviews. The author is always the
// authenticated user; username and business name snapshots are filled in by
// the service.
func (s *Server) CreateReview(c *fiber.Ctx) error {
	var req struct {
		BusinessID uint    `json:"business_id"`
		Text       string  `json:"text"`
		Rating     float64 `json:"rating"`
		ImageURL   string  `json:"image_url"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if req.BusinessID == 0 || req.Text == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Business id and text are required"))
	}
	if err := validation.ValidateRating(req.Rating); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	review, err := s.reviewService.Create(c.Context(), currentUserID(c), req.BusinessID, req.Text, req.Rating, req.ImageURL)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}

// GetReviews handles GET /api/reviews with optional filters.
func (s *Server) GetReviews(c *fiber.Ctx) error {
	filter := repository.ReviewFilter{
		Username:     c.Query("username"),
		BusinessName: c.Query("business_name"),
	}
	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid user id"))
		}
		filter.UserID = uint(id)
	}
	if v := c.Query("business_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid business id"))
		}
		filter.BusinessID = uint(id)
	}
	// "rating" filters to reviews rated at least this value
	if v := c.Query("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid minimum rating"))
		}
		filter.MinRating = rating
	}

	reviews, err := s.reviewRepo.FindAll(c.Context(), filter)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// GetReview handles GET /api/reviews/:id
func (s *Server) GetReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"review": review})
}

// UpdateReview handles PATCH /api/reviews/:id. Author or admin only.
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if err := s.requireSelfOrAdmin(c, review.UserID); err != nil {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if raw, ok := fields["rating"]; ok {
		rating, ok := raw.(float64)
		if !ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Rating must be a number"))
		}
		if err := validation.ValidateRating(rating); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	updated, err := s.reviewRepo.Update(c.Context(), id, fields)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"review": updated})
}

// DeleteReview handles DELETE /api/reviews/:id. Author or admin only.
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if err := s.requireSelfOrAdmin(c, review.UserID); err != nil {
		return nil
	}

	if err := s.reviewRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": strconv.FormatUint(uint64(id), 10)})
}
