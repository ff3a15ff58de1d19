package server

import (
	"encoding/json"
	"strconv"

	"tripcards/internal/models"
	"tripcards/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// CreateDestination handles POST /api/destinations
func (s *Server) CreateDestination(c *fiber.Ctx) error {
	var req struct {
		City      string  `json:"city"`
		State     string  `json:"state"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if req.City == "" || req.State == "" || req.Country == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("City, state, and country are required"))
	}

	destination := &models.Destination{
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.destinationRepo.Create(c.Context(), destination); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"destination": destination})
}

// GetDestinations handles GET /api/destinations with optional city/state/country filters.
func (s *Server) GetDestinations(c *fiber.Ctx) error {
	filter := repository.DestinationFilter{
		City:    c.Query("city"),
		State:   c.Query("state"),
		Country: c.Query("country"),
	}

	destinations, err := s.destinationRepo.FindAll(c.Context(), filter)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"destinations": destinations})
}

// GetDestination handles GET /api/destinations/:id
func (s *Server) GetDestination(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	destination, err := s.destinationRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"destination": destination})
}

// UpdateDestination handles PATCH /api/destinations/:id (admin only)
func (s *Server) UpdateDestination(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	destination, err := s.destinationRepo.Update(c.Context(), id, fields)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"destination": destination})
}

// DeleteDestination handles DELETE /api/destinations/:id (admin only)
func (s *Server) DeleteDestination(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.destinationRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": strconv.FormatUint(uint64(id), 10)})
}
