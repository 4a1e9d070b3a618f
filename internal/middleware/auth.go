package middleware

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "inkwell_session"

// LoginPath is where unauthenticated users are sent for protected routes.
const LoginPath = "/auth/login"

// sessionTTL bounds how long an issued session token stays valid.
const sessionTTL = 7 * 24 * time.Hour

// IssueToken creates a signed session token for the given user.
func IssueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// parseUserID validates the token and extracts the user ID from the "sub" claim.
func parseUserID(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("missing subject claim")
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in token")
	}
	return uint(userID), nil
}

// LoadUser resolves the session cookie if present and stores the user ID in
// Fiber locals. It never rejects the request; public routes stay public.
func LoadUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString := c.Cookies(SessionCookie); tokenString != "" {
			if userID, err := parseUserID(tokenString); err == nil {
				c.Locals("userID", userID)
			}
		}
		return c.Next()
	}
}

// AuthRequired redirects unauthenticated requests to the login page, carrying
// the originally requested URL in the "next" query parameter.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userID").(uint); ok {
			return c.Next()
		}
		return c.Redirect(LoginPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
	}
}
