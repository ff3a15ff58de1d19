package server

import (
	"encoding/json"
	"strconv"

	"tripcards/internal/models"
	"tripcards/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory handles POST /api/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		CategoryName string `json:"category_name"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	if req.CategoryName == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Category name is required"))
	}

	category := &models.Category{CategoryName: req.CategoryName}
	if err := s.categoryRepo.Create(c.Context(), category); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

// GetCategories handles GET /api/categories with an optional category_name filter.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	filter := repository.CategoryFilter{
		CategoryName: c.Query("category_name"),
	}

	categories, err := s.categoryRepo.FindAll(c.Context(), filter)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetCategory handles GET /api/categories/:id
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

// UpdateCategory handles PATCH /api/categories/:id (admin only)
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryRepo.Update(c.Context(), id, fields)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"category": category})
}

// DeleteCategory handles DELETE /api/categories/:id (admin only)
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.categoryRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": strconv.FormatUint(uint64(id), 10)})
}
