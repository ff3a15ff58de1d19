package repository

import (
	"context"
	"errors"

	"tripcards/internal/models"

	"gorm.io/gorm"
)

var businessUpdatable = map[string]string{
	"name":                  "name",
	"address1":              "address1",
	"address2":              "address2",
	"city":                  "city",
	"state":                 "state",
	"country":               "country",
	"zip_code":              "zip_code",
	"phone":                 "phone",
	"url":                   "url",
	"image_url":             "image_url",
	"rating":                "rating",
	"external_review_count": "external_review_count",
	"sub_category":          "sub_category",
	"category_name":         "category_name",
	"category_id":           "category_id",
	"destination_id":        "destination_id",
}

// BusinessFilter carries the recognized findAll filters for businesses.
// Name, city, zip code and category name are case-insensitive partial
// matches; ids are exact; MinRating means "at least this rating".
type BusinessFilter struct {
	ExternalID    string
	DestinationID uint
	CategoryID    uint
	Name          string
	City          string
	ZipCode       string
	CategoryName  string
	MinRating     float64
}

// BusinessRepository defines persistence operations for businesses.
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	FindAll(ctx context.Context, filter BusinessFilter) ([]models.Business, error)
	GetByID(ctx context.Context, id uint) (*models.Business, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Business, error)
	Delete(ctx context.Context, id uint) error
}

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository returns a new BusinessRepository implementation.
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

// Create inserts the business. Duplicates on (external_id, name) lose on the
// composite unique index, so two concurrent identical creates cannot both
// succeed.
func (r *businessRepository) Create(ctx context.Context, business *models.Business) error {
	if err := r.db.WithContext(ctx).Create(business).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Duplicate business: " + business.Name)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *businessRepository) FindAll(ctx context.Context, filter BusinessFilter) ([]models.Business, error) {
	q := r.db.WithContext(ctx).Model(&models.Business{})
	if filter.ExternalID != "" {
		q = q.Where("external_id = ?", filter.ExternalID)
	}
	if filter.DestinationID != 0 {
		q = q.Where("destination_id = ?", filter.DestinationID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", containsPattern(filter.Name))
	}
	if filter.City != "" {
		q = q.Where("LOWER(city) LIKE LOWER(?)", containsPattern(filter.City))
	}
	if filter.ZipCode != "" {
		q = q.Where("LOWER(zip_code) LIKE LOWER(?)", containsPattern(filter.ZipCode))
	}
	if filter.CategoryName != "" {
		q = q.Where("LOWER(category_name) LIKE LOWER(?)", containsPattern(filter.CategoryName))
	}
	if filter.MinRating > 0 {
		q = q.Where("rating >= ?", filter.MinRating)
	}

	var businesses []models.Business
	if err := q.Order("city").Find(&businesses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return businesses, nil
}

// GetByID returns the business with its reviews attached, ordered by review id.
func (r *businessRepository) GetByID(ctx context.Context, id uint) (*models.Business, error) {
	var business models.Business
	err := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		First(&business, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Business", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &business, nil
}

func (r *businessRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.Business, error) {
	updates, err := buildUpdates(fields, businessUpdatable)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&models.Business{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return nil, models.NewValidationError("Duplicate business")
		}
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Business", id)
	}
	return r.GetByID(ctx, id)
}

func (r *businessRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Business{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Business", id)
	}
	return nil
}
