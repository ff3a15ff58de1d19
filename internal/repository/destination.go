package repository

import (
	"context"
	"errors"

	"tripcards/internal/models"

	"gorm.io/gorm"
)

var destinationUpdatable = map[string]string{
	"city":      "city",
	"state":     "state",
	"country":   "country",
	"latitude":  "latitude",
	"longitude": "longitude",
}

// DestinationFilter carries the recognized findAll filters for destinations.
// All string filters are case-insensitive partial matches.
type DestinationFilter struct {
	City    string
	State   string
	Country string
}

// DestinationRepository defines persistence operations for destinations.
type DestinationRepository interface {
	Create(ctx context.Context, destination *models.Destination) error
	FindAll(ctx context.Context, filter DestinationFilter) ([]models.Destination, error)
	GetByID(ctx context.Context, id uint) (*models.Destination, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Destination, error)
	Delete(ctx context.Context, id uint) error
}

type destinationRepository struct {
	db *gorm.DB
}

// NewDestinationRepository returns a new DestinationRepository implementation.
func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) Create(ctx context.Context, destination *models.Destination) error {
	if err := r.db.WithContext(ctx).Create(destination).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *destinationRepository) FindAll(ctx context.Context, filter DestinationFilter) ([]models.Destination, error) {
	q := r.db.WithContext(ctx).Model(&models.Destination{})
	if filter.City != "" {
		q = q.Where("LOWER(city) LIKE LOWER(?)", containsPattern(filter.City))
	}
	if filter.State != "" {
		q = q.Where("LOWER(state) LIKE LOWER(?)", containsPattern(filter.State))
	}
	if filter.Country != "" {
		q = q.Where("LOWER(country) LIKE LOWER(?)", containsPattern(filter.Country))
	}

	var destinations []models.Destination
	if err := q.Order("city").Find(&destinations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return destinations, nil
}

func (r *destinationRepository) GetByID(ctx context.Context, id uint) (*models.Destination, error) {
	var destination models.Destination
	if err := r.db.WithContext(ctx).First(&destination, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Destination", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &destination, nil
}

func (r *destinationRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.Destination, error) {
	updates, err := buildUpdates(fields, destinationUpdatable)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&models.Destination{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Destination", id)
	}
	return r.GetByID(ctx, id)
}

func (r *destinationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Destination{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Destination", id)
	}
	return nil
}
