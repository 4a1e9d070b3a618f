package server

import (
	"time"

	"inkwell/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// CachePage returns a middleware that serves the route's rendered output
// from the page cache for ttl. The key is the original URL including the
// query string, so each page number caches separately; the entry is shared
// across all viewers. Entries expire only by elapsed time or an explicit
// Clear on the store.
func (s *Server) CachePage(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet || s.pageCache == nil {
			return c.Next()
		}

		key := c.OriginalURL()
		if body, ok, err := s.pageCache.Get(c.Context(), key); err == nil && ok {
			middleware.PageCacheHits.WithLabelValues("hit").Inc()
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Send(body)
		}
		middleware.PageCacheHits.WithLabelValues("miss").Inc()

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			// The response buffer is reused by fasthttp; store a copy.
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			_ = s.pageCache.Set(c.Context(), key, body, ttl)
		}
		return nil
	}
}
