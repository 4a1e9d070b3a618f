package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles /profile/:username/follow. Following yourself or an
// author you already follow is a silent no-op; the response is the same
// redirect either way.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	target, err := s.followService.Follow(c.Context(), s.currentUserID(c), c.Params("username"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Redirect("/profile/"+target.Username, fiber.StatusFound)
}

// UnfollowAuthor handles /profile/:username/unfollow. Unfollowing an author
// you do not follow is a silent no-op.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	target, err := s.followService.Unfollow(c.Context(), s.currentUserID(c), c.Params("username"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.Redirect("/profile/"+target.Username, fiber.StatusFound)
}
