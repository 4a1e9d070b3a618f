package middleware

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *fiber.App {
	app := fiber.New()
	app.Use(LoadUser())
	app.Get("/protected", AuthRequired(), func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)
		return c.SendString("user " + strconv.FormatUint(uint64(userID), 10))
	})
	app.Get("/public", func(c *fiber.Ctx) error {
		if userID, ok := c.Locals("userID").(uint); ok {
			return c.SendString("user " + strconv.FormatUint(uint64(userID), 10))
		}
		return c.SendString("anonymous")
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{JWTSecret: secret})
	app := testApp()

	makeToken := func(userID uint, exp time.Duration, key string) string {
		claims := jwt.MapClaims{
			"sub": strconv.FormatUint(uint64(userID), 10),
			"exp": time.Now().Add(exp).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, _ := token.SignedString([]byte(key))
		return s
	}

	tests := []struct {
		name           string
		cookie         string
		expectedStatus int
	}{
		{"Valid session", makeToken(123, time.Hour, secret), http.StatusOK},
		{"No cookie", "", http.StatusFound},
		{"Malformed token", "malformed.token.here", http.StatusFound},
		{"Expired token", makeToken(123, -time.Hour, secret), http.StatusFound},
		{"Wrong signing key", makeToken(123, time.Hour, "some-other-key"), http.StatusFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", SessionCookie+"="+tt.cookie)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusFound {
				assert.Equal(t, "/auth/login?next=%2Fprotected", resp.Header.Get("Location"))
			}
		})
	}
}

func TestAuthRequiredCarriesQueryInNext(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: "test-secret"})
	app := fiber.New()
	app.Use(LoadUser())
	app.Get("/feed", AuthRequired(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	req, _ := http.NewRequest(http.MethodGet, "/feed?page=3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login?next=%2Ffeed%3Fpage%3D3", resp.Header.Get("Location"))
}

func TestLoadUserIsOptional(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: "test-secret"})
	app := testApp()

	t.Run("Anonymous request passes through", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/public", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Garbage cookie is ignored, not rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Cookie", SessionCookie+"=garbage")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Issued token round-trips", func(t *testing.T) {
		token, err := IssueToken(42)
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Cookie", SessionCookie+"="+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
