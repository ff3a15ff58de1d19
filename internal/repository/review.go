package repository

import (
	"context"
	"errors"

	"tripcards/internal/models"

	"gorm.io/gorm"
)

var reviewUpdatable = map[string]string{
	"text":      "text",
	"rating":    "rating",
	"image_url": "image_url",
}

// ReviewFilter carries the recognized findAll filters for reviews.
type ReviewFilter struct {
	UserID       uint
	BusinessID   uint
	Username     string
	BusinessName string
	MinRating    float64
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindAll(ctx context.Context, filter ReviewFilter) ([]models.Review, error)
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Review, error)
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) FindAll(ctx context.Context, filter ReviewFilter) ([]models.Review, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{})
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.BusinessID != 0 {
		q = q.Where("business_id = ?", filter.BusinessID)
	}
	if filter.Username != "" {
		q = q.Where("LOWER(username) LIKE LOWER(?)", containsPattern(filter.Username))
	}
	if filter.BusinessName != "" {
		q = q.Where("LOWER(business_name) LIKE LOWER(?)", containsPattern(filter.BusinessName))
	}
	if filter.MinRating > 0 {
		q = q.Where("rating >= ?", filter.MinRating)
	}

	var reviews []models.Review
	if err := q.Order("business_name").Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.Review, error) {
	updates, err := buildUpdates(fields, reviewUpdatable)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Review", id)
	}
	return r.GetByID(ctx, id)
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}
