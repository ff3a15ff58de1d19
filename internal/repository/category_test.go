package repository

import (
	"context"
	"testing"

	"tripcards/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	t.Run("CreateAndDuplicate", func(t *testing.T) {
		assert.NoError(t, repo.Create(ctx, &models.Category{CategoryName: "Museums"}))

		err := repo.Create(ctx, &models.Category{CategoryName: "Museums"})
		appErr, ok := err.(*models.AppError)
		assert.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Equal(t, "Category already exists", appErr.Message)
	})

	t.Run("FilterAndOrder", func(t *testing.T) {
		_ = repo.Create(ctx, &models.Category{CategoryName: "Bars"})

		categories, err := repo.FindAll(ctx, CategoryFilter{CategoryName: "muse"})
		assert.NoError(t, err)
		assert.Len(t, categories, 1)

		categories, err = repo.FindAll(ctx, CategoryFilter{})
		assert.NoError(t, err)
		assert.Equal(t, "Bars", categories[0].CategoryName)
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		cat := &models.Category{CategoryName: "Temp"}
		_ = repo.Create(ctx, cat)

		updated, err := repo.Update(ctx, cat.ID, map[string]any{"category_name": "Tours"})
		assert.NoError(t, err)
		assert.Equal(t, "Tours", updated.CategoryName)

		assert.NoError(t, repo.Delete(ctx, cat.ID))
		err = repo.Delete(ctx, cat.ID)
		appErr, ok := err.(*models.AppError)
		assert.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
