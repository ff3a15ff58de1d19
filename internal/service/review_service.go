package service

import (
	"context"
	"time"

	"tripcards/internal/models"
	"tripcards/internal/repository"
)

// ReviewService creates reviews with their denormalized snapshot fields.
type ReviewService struct {
	reviewRepo   repository.ReviewRepository
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
}

// NewReviewService returns a new ReviewService.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	businessRepo repository.BusinessRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		userRepo:     userRepo,
		businessRepo: businessRepo,
	}
}

// Create builds a review for the user and business, copying username and
// business name onto the row. A user may review the same business more than
// once.
func (s *ReviewService) Create(ctx context.Context, userID, businessID uint, text string, rating float64, imageURL string) (*models.Review, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		BusinessID:   business.ID,
		BusinessName: business.Name,
		UserID:       user.ID,
		Username:     user.Username,
		Text:         text,
		Rating:       rating,
		ImageURL:     imageURL,
		CreatedOn:    time.Now(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
