package server

import (
	"errors"

	"tripcards/internal/cache"
	"tripcards/internal/directory"
	"tripcards/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondDirectoryError maps directory client failures onto responses.
// Upstream HTTP errors pass through with their original status so clients
// see what the directory said; everything else is an internal error.
func respondDirectoryError(c *fiber.Ctx, err error) error {
	var upstream *directory.UpstreamError
	if errors.As(err, &upstream) {
		return models.RespondWithError(c, upstream.Status,
			models.NewValidationError("Directory request failed"))
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}

// DirectorySearch handles GET /api/directory/search?term=&location=.
// Results are cached per (term, location) pair since the upstream is
// rate-limited and slow relative to Redis.
func (s *Server) DirectorySearch(c *fiber.Ctx) error {
	term := c.Query("term")
	location := c.Query("location")
	if term == "" || location == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Term and location are required"))
	}

	var businesses []directory.Business
	err := cache.Aside(c.Context(), cache.DirectorySearchKey(term, location), &businesses, cache.DirectorySearchTTL, func() error {
		var err error
		businesses, err = s.directory.Search(c.Context(), term, location)
		return err
	})
	if err != nil {
		return respondDirectoryError(c, err)
	}
	return c.JSON(fiber.Map{"businesses": businesses})
}

// DirectoryBusiness handles GET /api/directory/businesses/:externalId
func (s *Server) DirectoryBusiness(c *fiber.Ctx) error {
	externalID := c.Params("externalId")
	if externalID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("External id is required"))
	}

	business, err := s.directory.Business(c.Context(), externalID)
	if err != nil {
		return respondDirectoryError(c, err)
	}
	return c.JSON(fiber.Map{"business": business})
}

// DirectoryBusinessReviews handles GET /api/directory/businesses/:externalId/reviews
func (s *Server) DirectoryBusinessReviews(c *fiber.Ctx) error {
	externalID := c.Params("externalId")
	if externalID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("External id is required"))
	}

	reviews, err := s.directory.Reviews(c.Context(), externalID)
	if err != nil {
		return respondDirectoryError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// DirectoryAutocomplete handles GET /api/directory/autocomplete?text=
func (s *Server) DirectoryAutocomplete(c *fiber.Ctx) error {
	text := c.Query("text")
	if text == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Text is required"))
	}

	terms, err := s.directory.Autocomplete(c.Context(), text)
	if err != nil {
		return respondDirectoryError(c, err)
	}
	return c.JSON(fiber.Map{"terms": terms})
}
