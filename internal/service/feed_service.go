// Package service contains the application's business logic layered over
// the repositories.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/repository"
)

// FeedService assembles the ordered, paginated post lists shown on the
// home, group, profile and following routes. All methods are pure reads.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	pageSize   int
}

// NewFeedService returns a new FeedService with the given fixed page size.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	pageSize int,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		pageSize:   pageSize,
	}
}

// ProfileView bundles everything the profile page renders.
type ProfileView struct {
	Author    *models.User
	Page      pagination.Page[models.Post]
	Following bool
	Followers int64
}

// HomeFeed returns the requested page of all posts, newest first, with
// author and group resolved eagerly.
func (s *FeedService) HomeFeed(ctx context.Context, pageParam string) (pagination.Page[models.Post], error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.Paginate(posts, pageParam, s.pageSize), nil
}

// GroupFeed returns the group identified by slug and the requested page of
// its posts. A NOT_FOUND error is returned for an unknown slug.
func (s *FeedService) GroupFeed(ctx context.Context, slug, pageParam string) (*models.Group, pagination.Page[models.Post], error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, pagination.Page[models.Post]{}, err
	}
	posts, err := s.postRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, pagination.Page[models.Post]{}, err
	}
	return group, pagination.Paginate(posts, pageParam, s.pageSize), nil
}

// ProfileFeed returns the author's posts plus whether the viewer follows
// them. viewerID of zero means unauthenticated and yields Following=false.
func (s *FeedService) ProfileFeed(ctx context.Context, username, pageParam string, viewerID uint) (*ProfileView, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	followers, err := s.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		Author:    author,
		Page:      pagination.Paginate(posts, pageParam, s.pageSize),
		Following: following,
		Followers: followers,
	}, nil
}

// FollowingFeed returns the requested page of posts authored by users the
// viewer follows, newest first.
func (s *FeedService) FollowingFeed(ctx context.Context, viewerID uint, pageParam string) (pagination.Page[models.Post], error) {
	posts, err := s.postRepo.ListByFollowed(ctx, viewerID)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.Paginate(posts, pageParam, s.pageSize), nil
}
