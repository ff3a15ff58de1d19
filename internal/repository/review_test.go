package repository

import (
	"context"
	"testing"

	"tripcards/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReviewRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "critic", Email: "c@example.com", Password: "x"}
	db.Create(user)
	cat := &models.Category{CategoryName: "Restaurants"}
	db.Create(cat)
	dest := &models.Destination{City: "Chicago", State: "IL", Country: "United States"}
	db.Create(dest)
	biz := &models.Business{ExternalID: "ext-r", Name: "Deep Dish Place", CategoryID: cat.ID, DestinationID: dest.ID}
	db.Create(biz)

	t.Run("CreateAndGet", func(t *testing.T) {
		review := &models.Review{
			BusinessID: biz.ID, BusinessName: biz.Name,
			UserID: user.ID, Username: user.Username,
			Text: "Worth the wait", Rating: 5,
		}
		err := repo.Create(ctx, review)
		assert.NoError(t, err)
		assert.NotZero(t, review.ID)

		fetched, err := repo.GetByID(ctx, review.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Deep Dish Place", fetched.BusinessName)
	})

	t.Run("SameUserCanReviewTwice", func(t *testing.T) {
		err := repo.Create(ctx, &models.Review{
			BusinessID: biz.ID, BusinessName: biz.Name,
			UserID: user.ID, Username: user.Username,
			Text: "Back again", Rating: 4,
		})
		assert.NoError(t, err)
	})

	t.Run("FindAllFilters", func(t *testing.T) {
		reviews, err := repo.FindAll(ctx, ReviewFilter{BusinessID: biz.ID})
		assert.NoError(t, err)
		assert.Len(t, reviews, 2)

		reviews, err = repo.FindAll(ctx, ReviewFilter{Username: "crit"})
		assert.NoError(t, err)
		assert.Len(t, reviews, 2)

		reviews, err = repo.FindAll(ctx, ReviewFilter{MinRating: 5})
		assert.NoError(t, err)
		assert.Len(t, reviews, 1)
	})

	t.Run("UpdateAllowList", func(t *testing.T) {
		reviews, _ := repo.FindAll(ctx, ReviewFilter{MinRating: 5})
		id := reviews[0].ID

		updated, err := repo.Update(ctx, id, map[string]any{"text": "Edited", "rating": 3.0})
		assert.NoError(t, err)
		assert.Equal(t, "Edited", updated.Text)
		assert.Equal(t, 3.0, updated.Rating)

		// snapshot columns stay fixed
		_, err = repo.Update(ctx, id, map[string]any{"business_name": "Renamed"})
		assert.Error(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		reviews, _ := repo.FindAll(ctx, ReviewFilter{BusinessID: biz.ID})
		assert.NoError(t, repo.Delete(ctx, reviews[0].ID))

		err := repo.Delete(ctx, reviews[0].ID)
		appErr, ok := err.(*models.AppError)
		assert.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
