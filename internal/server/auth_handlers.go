package server

import (
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

const sessionCookieMaxAge = 7 * 24 * time.Hour

func (s *Server) setSessionCookie(c *fiber.Ctx, userID uint) error {
	token, err := middleware.IssueToken(userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionCookieMaxAge),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// SignupForm handles GET /auth/signup.
func (s *Server) SignupForm(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{
		"Title":  "Sign up",
		"UserID": s.currentUserID(c),
	})
}

// Signup handles POST /auth/signup.
func (s *Server) Signup(c *fiber.Ctx) error {
	username := c.FormValue("username")
	email := c.FormValue("email")

	user, errs, err := s.userService.Signup(c.Context(), username, email, c.FormValue("password"))
	if err != nil {
		return s.fail(c, err)
	}
	if !errs.Valid() {
		return c.Render("signup", fiber.Map{
			"Title":    "Sign up",
			"Errors":   errs,
			"Username": username,
			"Email":    email,
			"UserID":   s.currentUserID(c),
		})
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		return s.fail(c, models.NewInternalError(err))
	}
	return c.Redirect("/", fiber.StatusFound)
}

// LoginForm handles GET /auth/login.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title":  "Log in",
		"Next":   c.Query("next"),
		"UserID": s.currentUserID(c),
	})
}

// Login handles POST /auth/login. On success the user returns to the page
// they originally requested, carried in the "next" form field.
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")

	user, err := s.userService.Login(c.Context(), username, c.FormValue("password"))
	if err != nil {
		if models.IsUnauthorized(err) {
			return c.Render("login", fiber.Map{
				"Title":    "Log in",
				"Error":    "Invalid username or password",
				"Username": username,
				"Next":     c.FormValue("next"),
				"UserID":   s.currentUserID(c),
			})
		}
		return s.fail(c, err)
	}

	if err := s.setSessionCookie(c, user.ID); err != nil {
		return s.fail(c, models.NewInternalError(err))
	}
	return c.Redirect(safeNextPath(c.FormValue("next"), "/"), fiber.StatusFound)
}

// Logout handles /auth/logout by expiring the session cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/", fiber.StatusFound)
}
