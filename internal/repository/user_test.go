package repository

import (
	"context"
	"testing"

	"tripcards/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("CreateAndGetByID", func(t *testing.T) {
		user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hashed"}
		err := repo.Create(ctx, user)
		assert.NoError(t, err)
		assert.NotZero(t, user.ID)

		fetched, err := repo.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", fetched.Username)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", Password: "hashed"})
		assert.Error(t, err)
		appErr, ok := err.(*models.AppError)
		assert.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		appErr, ok := err.(*models.AppError)
		assert.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("GetByUsernameMissingReturnsNil", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("FindAllFiltersCaseInsensitive", func(t *testing.T) {
		_ = repo.Create(ctx, &models.User{Username: "Bobby", Email: "bob@example.com", Password: "hashed", FirstName: "Robert"})

		users, err := repo.FindAll(ctx, UserFilter{Username: "bob"})
		assert.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Equal(t, "Bobby", users[0].Username)

		users, err = repo.FindAll(ctx, UserFilter{FirstName: "rob"})
		assert.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("FindAllOrderedByUsername", func(t *testing.T) {
		users, err := repo.FindAll(ctx, UserFilter{})
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, len(users), 2)
		for i := 1; i < len(users); i++ {
			assert.LessOrEqual(t, users[i-1].Username, users[i].Username)
		}
	})

	t.Run("UpdateAllowList", func(t *testing.T) {
		user := &models.User{Username: "carla", Email: "carla@example.com", Password: "hashed"}
		_ = repo.Create(ctx, user)

		updated, err := repo.Update(ctx, user.ID, map[string]any{"first_name": "Carla", "bio": "traveler"})
		assert.NoError(t, err)
		assert.Equal(t, "Carla", updated.FirstName)
		assert.Equal(t, "traveler", updated.Bio)
	})

	t.Run("UpdateIgnoresUnknownAndRejectsEmpty", func(t *testing.T) {
		user := &models.User{Username: "dave", Email: "dave@example.com", Password: "hashed"}
		_ = repo.Create(ctx, user)

		// is_admin is not PATCHable; with nothing else in the patch this is an
		// empty update.
		_, err := repo.Update(ctx, user.ID, map[string]any{"is_admin": true})
		appErr, ok := err.(*models.AppError)
		assert.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Equal(t, "No data to update", appErr.Message)

		_, err = repo.Update(ctx, user.ID, map[string]any{})
		assert.Error(t, err)

		fetched, _ := repo.GetByID(ctx, user.ID)
		assert.False(t, fetched.IsAdmin)
	})

	t.Run("UpdateNotFound", func(t *testing.T) {
		_, err := repo.Update(ctx, 9999, map[string]any{"bio": "there is nobody here"})
		appErr, ok := err.(*models.AppError)
		assert.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		user := &models.User{Username: "erin", Email: "erin@example.com", Password: "hashed"}
		_ = repo.Create(ctx, user)

		assert.NoError(t, repo.Delete(ctx, user.ID))

		_, err := repo.GetByID(ctx, user.ID)
		assert.Error(t, err)

		err = repo.Delete(ctx, user.ID)
		appErr, ok := err.(*models.AppError)
		assert.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
