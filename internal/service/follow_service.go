package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// FollowService manages the directed follow edge between users. Follow and
// Unfollow are idempotent: repeating either call changes nothing and
// reports no error, so callers cannot distinguish a fresh mutation from a
// no-op.
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

// Follow creates the viewer->target edge unless the target is the viewer or
// the edge already exists. Returns the target user, or a NOT_FOUND error
// for an unknown username.
func (s *FollowService) Follow(ctx context.Context, viewerID uint, targetUsername string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if target.ID == viewerID {
		return target, nil
	}
	exists, err := s.followRepo.Exists(ctx, viewerID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return target, nil
	}

	if err := s.followRepo.Create(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// Unfollow removes the viewer->target edge if present. Returns the target
// user, or a NOT_FOUND error for an unknown username.
func (s *FollowService) Unfollow(ctx context.Context, viewerID uint, targetUsername string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	exists, err := s.followRepo.Exists(ctx, viewerID, target.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return target, nil
	}

	if err := s.followRepo.Delete(ctx, viewerID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}
