// Package repository implements the data access layer for the application.
package repository

import (
	"strings"

	"tripcards/internal/models"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// containsPattern wraps a filter value for a case-insensitive partial match.
// LOWER(col) LIKE LOWER(?) behaves identically on Postgres and the sqlite
// driver used in tests, unlike ILIKE.
func containsPattern(v string) string {
	return "%" + v + "%"
}

// buildUpdates filters raw PATCH fields through an explicit allow-list
// mapping request field names to column names. Fields outside the allow-list
// are dropped; there is no raw-column passthrough. An empty result is a
// validation error so empty PATCH bodies never reach the database.
func buildUpdates(fields map[string]any, allowed map[string]string) (map[string]any, error) {
	updates := make(map[string]any, len(fields))
	for name, value := range fields {
		col, ok := allowed[name]
		if !ok {
			continue
		}
		updates[col] = value
	}
	if len(updates) == 0 {
		return nil, models.NewValidationError("No data to update")
	}
	return updates, nil
}
