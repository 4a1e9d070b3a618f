package server

import (
	"strconv"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// parsePostID extracts the :id route parameter. A malformed ID is treated
// the same as a missing post.
func parsePostID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// PostDetail handles GET /posts/:id, the post with its comments and the
// comment form.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, ok := parsePostID(c)
	if !ok {
		return s.renderNotFound(c)
	}
	post, comments, err := s.postService.GetPostDetail(c.Context(), postID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Render("post_detail", fiber.Map{
		"Title":    "Post by " + post.Author.Username,
		"Post":     post,
		"Comments": comments,
		"UserID":   s.currentUserID(c),
		"IsAuthor": post.AuthorID == s.currentUserID(c),
	})
}

// renderPostForm renders the shared create/edit form.
func (s *Server) renderPostForm(c *fiber.Ctx, in service.PostInput, errs validation.FieldErrors, post *models.Post) error {
	groups, err := s.groupRepo.List(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	data := fiber.Map{
		"Groups": groups,
		"Form":   in,
		"Errors": errs,
		"UserID": s.currentUserID(c),
	}
	if post != nil {
		data["Title"] = "Edit post"
		data["IsEdit"] = true
		data["Post"] = post
	} else {
		data["Title"] = "New post"
	}
	// Validation failures redisplay the form at a normal success status.
	return c.Render("create_post", data)
}

// postInputFromForm reads the submitted post fields, storing an attached
// image if present. An unreadable or non-image attachment becomes a field
// error rather than a failed request.
func (s *Server) postInputFromForm(c *fiber.Ctx, errs validation.FieldErrors) service.PostInput {
	in := service.PostInput{
		Text:      c.FormValue("text"),
		GroupSlug: c.FormValue("group"),
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		path, err := s.uploads.Save(fh)
		if err != nil {
			errs["image"] = "Upload a valid image (jpeg, png, gif or webp)"
		} else {
			in.ImagePath = path
		}
	}
	return in
}

// CreatePostForm handles GET /create.
func (s *Server) CreatePostForm(c *fiber.Ctx) error {
	return s.renderPostForm(c, service.PostInput{}, nil, nil)
}

// CreatePost handles POST /create.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := s.currentUserID(c)

	formErrs := validation.FieldErrors{}
	in := s.postInputFromForm(c, formErrs)
	if !formErrs.Valid() {
		for field, msg := range validation.PostForm(in.Text) {
			formErrs[field] = msg
		}
		return s.renderPostForm(c, in, formErrs, nil)
	}

	_, errs, err := s.postService.CreatePost(c.Context(), userID, in)
	if err != nil {
		return s.fail(c, err)
	}
	if !errs.Valid() {
		return s.renderPostForm(c, in, errs, nil)
	}

	author, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Redirect("/profile/"+author.Username, fiber.StatusFound)
}

// EditPostForm handles GET /posts/:id/edit.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	postID, ok := parsePostID(c)
	if !ok {
		return s.renderNotFound(c)
	}
	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return s.fail(c, err)
	}
	if post.AuthorID != s.currentUserID(c) {
		return c.Redirect("/posts/"+strconv.Itoa(int(postID)), fiber.StatusFound)
	}

	in := service.PostInput{Text: post.Text}
	if post.Group != nil {
		in.GroupSlug = post.Group.Slug
	}
	return s.renderPostForm(c, in, nil, post)
}

// EditPost handles POST /posts/:id/edit.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, ok := parsePostID(c)
	if !ok {
		return s.renderNotFound(c)
	}

	formErrs := validation.FieldErrors{}
	in := s.postInputFromForm(c, formErrs)

	post, errs, err := s.postService.EditPost(c.Context(), s.currentUserID(c), postID, in)
	if err != nil {
		if models.IsUnauthorized(err) {
			// Non-authors are bounced back to the post without mutating it.
			return c.Redirect("/posts/"+strconv.Itoa(int(postID)), fiber.StatusFound)
		}
		return s.fail(c, err)
	}
	for field, msg := range formErrs {
		if errs == nil {
			errs = validation.FieldErrors{}
		}
		errs[field] = msg
	}
	if !errs.Valid() {
		return s.renderPostForm(c, in, errs, post)
	}

	return c.Redirect("/posts/"+strconv.Itoa(int(postID)), fiber.StatusFound)
}

// AddComment handles POST /posts/:id/comment. Invalid submissions are
// dropped silently; the redirect is identical either way.
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, ok := parsePostID(c)
	if !ok {
		return s.renderNotFound(c)
	}
	if err := s.postService.AddComment(c.Context(), s.currentUserID(c), postID, c.FormValue("text")); err != nil {
		return s.fail(c, err)
	}
	return c.Redirect("/posts/"+strconv.Itoa(int(postID)), fiber.StatusFound)
}
