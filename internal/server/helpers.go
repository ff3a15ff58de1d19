// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"tripcards/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "businessId" -> "business ID".
func humanizeParam(param string) string {
	switch param {
	case "id":
		return "ID"
	case "businessId":
		return "business ID"
	case "userId":
		return "user ID"
	}
	return param
}

// statusForError maps a typed application error to an HTTP status code.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}

// respondAppError serializes a typed error with its kind-appropriate status.
func respondAppError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

// currentUserID returns the authenticated user id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// currentUserIsAdmin reports whether the authenticated user carries the admin flag.
func currentUserIsAdmin(c *fiber.Ctx) bool {
	if admin, ok := c.Locals("isAdmin").(bool); ok {
		return admin
	}
	return false
}

// requireSelfOrAdmin ensures the authenticated user is the owner or an admin.
// On failure it writes a 401 JSON response and returns errResponseWritten.
func (s *Server) requireSelfOrAdmin(c *fiber.Ctx, ownerID uint) error {
	if currentUserID(c) == ownerID || currentUserIsAdmin(c) {
		return nil
	}
	_ = models.RespondWithError(c, fiber.StatusUnauthorized,
		models.NewUnauthorizedError("Insufficient privileges"))
	return errResponseWritten
}

// parseBody decodes a JSON request body into dest. On failure it writes a
// 400 JSON response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}
