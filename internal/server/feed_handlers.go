package server

import (
	"github.com/gofiber/fiber/v2"
)

// HomeFeed handles GET /: all posts, newest first, paginated.
func (s *Server) HomeFeed(c *fiber.Ctx) error {
	page, err := s.feedService.HomeFeed(c.Context(), c.Query("page"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Render("index", fiber.Map{
		"Title":  "Latest posts",
		"Page":   page,
		"UserID": s.currentUserID(c),
	})
}

// GroupFeed handles GET /group/:slug, the group's posts newest first.
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	group, page, err := s.feedService.GroupFeed(c.Context(), c.Params("slug"), c.Query("page"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Render("group_list", fiber.Map{
		"Title":  group.Title,
		"Group":  group,
		"Page":   page,
		"UserID": s.currentUserID(c),
	})
}

// Profile handles GET /profile/:username, the author's posts plus whether
// the viewer follows them.
func (s *Server) Profile(c *fiber.Ctx) error {
	view, err := s.feedService.ProfileFeed(c.Context(), c.Params("username"), c.Query("page"), s.currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Render("profile", fiber.Map{
		"Title":     "Posts by " + view.Author.Username,
		"Author":    view.Author,
		"Page":      view.Page,
		"Following": view.Following,
		"Followers": view.Followers,
		"UserID":    s.currentUserID(c),
		"IsSelf":    view.Author.ID == s.currentUserID(c),
	})
}

// FollowingFeed handles GET /follow, posts by authors the viewer follows.
func (s *Server) FollowingFeed(c *fiber.Ctx) error {
	page, err := s.feedService.FollowingFeed(c.Context(), s.currentUserID(c), c.Query("page"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Render("follow", fiber.Map{
		"Title":  "Authors you follow",
		"Page":   page,
		"UserID": s.currentUserID(c),
	})
}
