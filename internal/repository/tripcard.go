package repository

import (
	"context"
	"errors"

	"tripcards/internal/cache"
	"tripcards/internal/models"

	"gorm.io/gorm"
)

const defaultTopDestinations = 6

var tripcardUpdatable = map[string]string{
	"keep_private": "keep_private",
	"has_visited":  "has_visited",
}

// TripcardFilter carries the recognized findAll filters for tripcards.
type TripcardFilter struct {
	UserID        uint
	DestinationID uint
	Username      string
	City          string
	State         string
	Country       string
	HasVisited    *bool
	KeepPrivate   *bool
}

// TripcardRepository defines persistence operations for tripcards and their
// business links.
type TripcardRepository interface {
	Create(ctx context.Context, tripcard *models.Tripcard) error
	FindAll(ctx context.Context, filter TripcardFilter) ([]models.Tripcard, error)
	GetByID(ctx context.Context, id uint) (*models.Tripcard, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Tripcard, error)
	Delete(ctx context.Context, id uint) error

	AddBusiness(ctx context.Context, tripcardID, businessID uint) (*models.TripcardBusiness, error)
	RemoveBusiness(ctx context.Context, tripcardID, businessID uint) error
	ListBusinesses(ctx context.Context, tripcardID uint) ([]models.Business, error)
	TopDestinations(ctx context.Context, limit int) ([]models.DestinationCount, error)
}

type tripcardRepository struct {
	db *gorm.DB
}

// NewTripcardRepository returns a new TripcardRepository implementation.
func NewTripcardRepository(db *gorm.DB) TripcardRepository {
	return &tripcardRepository{db: db}
}

func (r *tripcardRepository) Create(ctx context.Context, tripcard *models.Tripcard) error {
	if err := r.db.WithContext(ctx).Create(tripcard).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTopDestinations(ctx)
	return nil
}

func (r *tripcardRepository) FindAll(ctx context.Context, filter TripcardFilter) ([]models.Tripcard, error) {
	q := r.db.WithContext(ctx).Model(&models.Tripcard{})
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.DestinationID != 0 {
		q = q.Where("destination_id = ?", filter.DestinationID)
	}
	if filter.Username != "" {
		q = q.Where("LOWER(username) LIKE LOWER(?)", containsPattern(filter.Username))
	}
	if filter.City != "" {
		q = q.Where("LOWER(city) LIKE LOWER(?)", containsPattern(filter.City))
	}
	if filter.State != "" {
		q = q.Where("LOWER(state) LIKE LOWER(?)", containsPattern(filter.State))
	}
	if filter.Country != "" {
		q = q.Where("LOWER(country) LIKE LOWER(?)", containsPattern(filter.Country))
	}
	if filter.HasVisited != nil {
		q = q.Where("has_visited = ?", *filter.HasVisited)
	}
	if filter.KeepPrivate != nil {
		q = q.Where("keep_private = ?", *filter.KeepPrivate)
	}

	var tripcards []models.Tripcard
	if err := q.Order("city").Find(&tripcards).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tripcards, nil
}

// GetByID returns the tripcard with its business join rows attached. Reads
// go through the cache; every write path invalidates the key.
func (r *tripcardRepository) GetByID(ctx context.Context, id uint) (*models.Tripcard, error) {
	var tripcard models.Tripcard
	key := cache.TripcardKey(id)

	err := cache.Aside(ctx, key, &tripcard, cache.TripcardTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Businesses").
			First(&tripcard, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Tripcard", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tripcard, nil
}

func (r *tripcardRepository) Update(ctx context.Context, id uint, fields map[string]any) (*models.Tripcard, error) {
	updates, err := buildUpdates(fields, tripcardUpdatable)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&models.Tripcard{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Tripcard", id)
	}
	cache.InvalidateTripcard(ctx, id)
	return r.GetByID(ctx, id)
}

func (r *tripcardRepository) Delete(ctx context.Context, id uint) error {
	// Join rows go first so a removed tripcard leaves no dangling links.
	if err := r.db.WithContext(ctx).Where("tripcard_id = ?", id).Delete(&models.TripcardBusiness{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	res := r.db.WithContext(ctx).Delete(&models.Tripcard{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Tripcard", id)
	}
	cache.InvalidateTripcard(ctx, id)
	cache.InvalidateTopDestinations(ctx)
	return nil
}

// AddBusiness links a business to a tripcard. The composite unique index on
// (tripcard_id, business_id) rejects a second identical link.
func (r *tripcardRepository) AddBusiness(ctx context.Context, tripcardID, businessID uint) (*models.TripcardBusiness, error) {
	link := &models.TripcardBusiness{
		TripcardID: tripcardID,
		BusinessID: businessID,
	}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.NewValidationError("Business is already on this tripcard")
		}
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateTripcard(ctx, tripcardID)
	return link, nil
}

func (r *tripcardRepository) RemoveBusiness(ctx context.Context, tripcardID, businessID uint) error {
	res := r.db.WithContext(ctx).
		Where("tripcard_id = ? AND business_id = ?", tripcardID, businessID).
		Delete(&models.TripcardBusiness{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Business on tripcard", businessID)
	}
	cache.InvalidateTripcard(ctx, tripcardID)
	return nil
}

func (r *tripcardRepository) ListBusinesses(ctx context.Context, tripcardID uint) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.WithContext(ctx).
		Joins("JOIN tripcard_businesses ON tripcard_businesses.business_id = businesses.id").
		Where("tripcard_businesses.tripcard_id = ?", tripcardID).
		Find(&businesses).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return businesses, nil
}

// TopDestinations groups tripcards by destination and returns the `limit`
// most-added destination ids. Ties break by destination id ascending so the
// ordering is deterministic. Results are cached briefly; the cache is
// invalidated on tripcard create and delete.
func (r *tripcardRepository) TopDestinations(ctx context.Context, limit int) ([]models.DestinationCount, error) {
	if limit <= 0 {
		limit = defaultTopDestinations
	}

	var counts []models.DestinationCount
	key := cache.TopDestinationsKey(limit)

	err := cache.Aside(ctx, key, &counts, cache.TopDestinationsTTL, func() error {
		err := r.db.WithContext(ctx).
			Model(&models.Tripcard{}).
			Select("destination_id, COUNT(destination_id) AS tripcard_count").
			Group("destination_id").
			Order("tripcard_count DESC, destination_id").
			Limit(limit).
			Scan(&counts).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
