package service

import (
	"context"
	"time"

	"tripcards/internal/models"
	"tripcards/internal/repository"
)

// TripcardService creates tripcards with their denormalized snapshot fields
// and manages the tripcard/business links.
type TripcardService struct {
	tripcardRepo    repository.TripcardRepository
	userRepo        repository.UserRepository
	destinationRepo repository.DestinationRepository
	businessRepo    repository.BusinessRepository
}

// NewTripcardService returns a new TripcardService.
func NewTripcardService(
	tripcardRepo repository.TripcardRepository,
	userRepo repository.UserRepository,
	destinationRepo repository.DestinationRepository,
	businessRepo repository.BusinessRepository,
) *TripcardService {
	return &TripcardService{
		tripcardRepo:    tripcardRepo,
		userRepo:        userRepo,
		destinationRepo: destinationRepo,
		businessRepo:    businessRepo,
	}
}

// Create builds a tripcard for the user and destination. Username and the
// destination's city/state/country are copied onto the row; they are
// point-in-time snapshots and do not change when the source rows change.
func (s *TripcardService) Create(ctx context.Context, userID, destinationID uint, keepPrivate, hasVisited bool) (*models.Tripcard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	destination, err := s.destinationRepo.GetByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	tripcard := &models.Tripcard{
		UserID:        user.ID,
		DestinationID: destination.ID,
		Username:      user.Username,
		City:          destination.City,
		State:         destination.State,
		Country:       destination.Country,
		CreatedOn:     time.Now(),
		KeepPrivate:   keepPrivate,
		HasVisited:    hasVisited,
	}
	if err := s.tripcardRepo.Create(ctx, tripcard); err != nil {
		return nil, err
	}
	return tripcard, nil
}

// AddBusiness links an existing business to an existing tripcard.
func (s *TripcardService) AddBusiness(ctx context.Context, tripcardID, businessID uint) (*models.TripcardBusiness, error) {
	if _, err := s.tripcardRepo.GetByID(ctx, tripcardID); err != nil {
		return nil, err
	}
	if _, err := s.businessRepo.GetByID(ctx, businessID); err != nil {
		return nil, err
	}
	return s.tripcardRepo.AddBusiness(ctx, tripcardID, businessID)
}

// RemoveBusiness unlinks a business from a tripcard.
func (s *TripcardService) RemoveBusiness(ctx context.Context, tripcardID, businessID uint) error {
	if _, err := s.tripcardRepo.GetByID(ctx, tripcardID); err != nil {
		return err
	}
	return s.tripcardRepo.RemoveBusiness(ctx, tripcardID, businessID)
}
