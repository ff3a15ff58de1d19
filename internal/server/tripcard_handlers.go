package server

import (
	"encoding/json"
	"strconv"

	"tripcards/internal/models"
	"tripcards/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const defaultTopDestinationsLimit = 6

// CreateTripcard handles POST /api/tripcards. The owner is always the
// authenticated user; the username and destination snapshot are filled in by
// the service.
func (s *Server) CreateTripcard(c *fiber.Ctx) error {
	var req struct {
		DestinationID uint `json:"destination_id"`
		KeepPrivate   bool `json:"keep_private"`
		HasVisited    bool `json:"has_visited"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if req.DestinationID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Destination id is required"))
	}

	tripcard, err := s.tripcardService.Create(c.Context(), currentUserID(c), req.DestinationID, req.KeepPrivate, req.HasVisited)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tripcard": tripcard})
}

// GetTripcards handles GET /api/tripcards with optional filters.
func (s *Server) GetTripcards(c *fiber.Ctx) error {
	filter := repository.TripcardFilter{
		Username: c.Query("username"),
		City:     c.Query("city"),
		State:    c.Query("state"),
		Country:  c.Query("country"),
	}
	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid user id"))
		}
		filter.UserID = uint(id)
	}
	if v := c.Query("destination_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid destination id"))
		}
		filter.DestinationID = uint(id)
	}
	if v := c.Query("has_visited"); v != "" {
		visited, err := strconv.ParseBool(v)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid has_visited value"))
		}
		filter.HasVisited = &visited
	}
	if v := c.Query("keep_private"); v != "" {
		private, err := strconv.ParseBool(v)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid keep_private value"))
		}
		filter.KeepPrivate = &private
	}

	tripcards, err := s.tripcardRepo.FindAll(c.Context(), filter)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"tripcards": tripcards})
}

// GetTripcard handles GET /api/tripcards/:id
func (s *Server) GetTripcard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tripcard, err := s.tripcardRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"tripcard": tripcard})
}

// UpdateTripcard handles PATCH /api/tripcards/:id. Only the owner or an
// admin may change a tripcard's flags.
func (s *Server) UpdateTripcard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tripcard, err := s.tripcardRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if err := s.requireSelfOrAdmin(c, tripcard.UserID); err != nil {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.tripcardRepo.Update(c.Context(), id, fields)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"tripcard": updated})
}

// DeleteTripcard handles DELETE /api/tripcards/:id. Owner or admin only;
// the tripcard's business links go with it.
func (s *Server) DeleteTripcard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tripcard, err := s.tripcardRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if err := s.requireSelfOrAdmin(c, tripcard.UserID); err != nil {
		return nil
	}

	if err := s.tripcardRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": strconv.FormatUint(uint64(id), 10)})
}

// AddBusinessToTripcard handles POST /api/tripcards/:id/businesses/:businessId
func (s *Server) AddBusinessToTripcard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	businessID, err := s.parseID(c, "businessId")
	if err != nil {
		return nil
	}

	tripcard, err := s.tripcardRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if err := s.requireSelfOrAdmin(c, tripcard.UserID); err != nil {
		return nil
	}

	link, err := s.tripcardService.AddBusiness(c.Context(), id, businessID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tripcard_business": link})
}

// RemoveBusinessFromTripcard handles DELETE /api/tripcards/:id/businesses/:businessId
func (s *Server) RemoveBusinessFromTripcard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	businessID, err := s.parseID(c, "businessId")
	if err != nil {
		return nil
	}

	tripcard, err := s.tripcardRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if err := s.requireSelfOrAdmin(c, tripcard.UserID); err != nil {
		return nil
	}

	if err := s.tripcardService.RemoveBusiness(c.Context(), id, businessID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": strconv.FormatUint(uint64(businessID), 10)})
}

// GetTripcardBusinesses handles GET /api/tripcards/:id/businesses
func (s *Server) GetTripcardBusinesses(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.tripcardRepo.GetByID(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}

	businesses, err := s.tripcardRepo.ListBusinesses(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"businesses": businesses})
}

// GetTopDestinations handles GET /api/tripcards/top-destinations. Public;
// results are cached briefly since the aggregation runs on every homepage
// load.
func (s *Server) GetTopDestinations(c *fiber.Ctx) error {
	limit := defaultTopDestinationsLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 20 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Limit must be between 1 and 20"))
		}
		limit = parsed
	}

	counts, err := s.tripcardRepo.TopDestinations(c.Context(), limit)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"top_destinations": counts})
}
