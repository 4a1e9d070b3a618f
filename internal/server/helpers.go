package server

import (
	"log/slog"
	"net/url"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID, or zero when the
// request carries no valid session.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	if userID, ok := c.Locals("userID").(uint); ok {
		return userID
	}
	return 0
}

// renderNotFound renders the generic 404 page.
func (s *Server) renderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":  "Page not found",
		"Path":   c.Path(),
		"UserID": s.currentUserID(c),
	})
}

// fail translates an application error into the user-visible outcome:
// NOT_FOUND renders the 404 page, UNAUTHORIZED redirects to login with a
// return URL, everything else is a 500 page.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	switch {
	case models.IsNotFound(err):
		return s.renderNotFound(c)
	case models.IsUnauthorized(err):
		return c.Redirect(middleware.LoginPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
	default:
		middleware.Logger.ErrorContext(c.UserContext(), "handler error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
			"Title":  "Something went wrong",
			"UserID": s.currentUserID(c),
		})
	}
}

// safeNextPath returns next if it is a local path, otherwise fallback.
// Anything absolute or protocol-relative would be an open redirect.
func safeNextPath(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	return next
}
