// Package service implements business rules on top of the repositories.
package service

import (
	"context"

	"tripcards/internal/models"
	"tripcards/internal/repository"
)

// FollowService provides follow/unfollow business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates a follow edge from follower to followed. Self-follows are
// rejected here; duplicate edges are rejected by the schema constraint inside
// the repository.
func (s *FollowService) Follow(ctx context.Context, followedID, followerID uint) (*models.Follow, error) {
	if followedID == followerID {
		return nil, models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, followedID); err != nil {
		return nil, err
	}

	follow := &models.Follow{
		FollowedID: followedID,
		FollowerID: followerID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

// Unfollow removes the follow edge from follower to followed.
func (s *FollowService) Unfollow(ctx context.Context, followedID, followerID uint) error {
	return s.followRepo.Delete(ctx, followedID, followerID)
}

// Followers lists the users following the given user.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

// Following lists the users the given user follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}
