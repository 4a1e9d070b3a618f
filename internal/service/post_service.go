package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostService handles post and comment creation and post edits.
type PostService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
}

// PostInput carries validated-form fields for creating or editing a post.
type PostInput struct {
	Text      string
	GroupSlug string
	ImagePath string
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
	}
}

// resolveGroup maps a submitted group slug to its ID. An empty slug means
// "no group". An unknown slug is a field error, not a 404: it arrives via a
// form, not a route parameter.
func (s *PostService) resolveGroup(ctx context.Context, slug string, errs validation.FieldErrors) *uint {
	if slug == "" {
		return nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		errs["group"] = "Select a valid group"
		return nil
	}
	return &group.ID
}

// CreatePost validates the input and persists a new post by the given
// author. On validation failure the field errors are returned with a nil
// post and nil error so the handler can re-render the form.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in PostInput) (*models.Post, validation.FieldErrors, error) {
	errs := validation.PostForm(in.Text)
	groupID := s.resolveGroup(ctx, in.GroupSlug, errs)
	if !errs.Valid() {
		return nil, errs, nil
	}

	post := &models.Post{
		Text:      strings.TrimSpace(in.Text),
		AuthorID:  authorID,
		GroupID:   groupID,
		ImagePath: in.ImagePath,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, nil, err
	}
	return post, nil, nil
}

// EditPost mutates text, group and image of an existing post in place; the
// creation timestamp is never touched. Editors other than the original
// author get an UNAUTHORIZED error and the post stays unchanged.
func (s *PostService) EditPost(ctx context.Context, editorID, postID uint, in PostInput) (*models.Post, validation.FieldErrors, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if post.AuthorID != editorID {
		return nil, nil, models.NewUnauthorizedError("Only the author can edit a post")
	}

	errs := validation.PostForm(in.Text)
	groupID := s.resolveGroup(ctx, in.GroupSlug, errs)
	if !errs.Valid() {
		return post, errs, nil
	}

	post.Text = strings.TrimSpace(in.Text)
	post.GroupID = groupID
	if in.ImagePath != "" {
		post.ImagePath = in.ImagePath
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, nil, err
	}
	return post, nil, nil
}

// AddComment persists a comment on the post. An invalid submission is
// silently dropped; only an unknown post is an error.
func (s *PostService) AddComment(ctx context.Context, authorID, postID uint, text string) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	if !validation.CommentForm(text).Valid() {
		return nil
	}
	return s.commentRepo.Create(ctx, &models.Comment{
		Text:     strings.TrimSpace(text),
		PostID:   postID,
		AuthorID: authorID,
	})
}

// GetPostDetail returns the post with its comments.
func (s *PostService) GetPostDetail(ctx context.Context, postID uint) (*models.Post, []models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}
