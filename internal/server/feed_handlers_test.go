package server

import (
	"fmt"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeFeed(t *testing.T) {
	app, _, db := setupTestApp(t)
	author := createTestUser(t, db, "author")

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 11; i++ {
		require.NoError(t, db.Create(&models.Post{
			Text:      fmt.Sprintf("post number %d", i),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	t.Run("First page shows the ten newest posts", func(t *testing.T) {
		resp := getPage(t, app, "/", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, "post number 11")
		assert.Contains(t, body, "post number 2")
		assert.NotContains(t, body, "post number 1<")
	})

	t.Run("Second page holds the overflow post", func(t *testing.T) {
		resp := getPage(t, app, "/?page=2", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, "post number 1")
		assert.NotContains(t, body, "post number 11")
	})

	t.Run("Nonsense page parameter falls back to page one", func(t *testing.T) {
		resp := getPage(t, app, "/?page=banana", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "post number 11")
	})
}

func TestGroupFeed(t *testing.T) {
	app, _, db := setupTestApp(t)
	author := createTestUser(t, db, "author")

	group := &models.Group{Title: "Travel notes", Slug: "travel", Description: "on the road"}
	require.NoError(t, db.Create(group).Error)
	require.NoError(t, db.Create(&models.Post{Text: "grouped entry", AuthorID: author.ID, GroupID: &group.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "loose entry", AuthorID: author.ID}).Error)

	t.Run("Shows only the group's posts", func(t *testing.T) {
		resp := getPage(t, app, "/group/travel", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, "Travel notes")
		assert.Contains(t, body, "grouped entry")
		assert.NotContains(t, body, "loose entry")
	})

	t.Run("Unknown slug is a 404", func(t *testing.T) {
		resp := getPage(t, app, "/group/no-such-group", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestProfile(t *testing.T) {
	app, _, db := setupTestApp(t)
	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	require.NoError(t, db.Create(&models.Post{Text: "my story", AuthorID: author.ID}).Error)

	t.Run("Anonymous viewer sees the posts", func(t *testing.T) {
		resp := getPage(t, app, "/profile/author", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, "my story")
		// No session, so no follow button.
		assert.NotContains(t, body, "/profile/author/follow")
	})

	t.Run("Logged-in non-follower sees the follow action", func(t *testing.T) {
		resp := getPage(t, app, "/profile/author", sessionCookie(t, viewer.ID))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "/profile/author/follow")
	})

	t.Run("Follower sees the unfollow action", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Follow{UserID: viewer.ID, AuthorID: author.ID}).Error)

		resp := getPage(t, app, "/profile/author", sessionCookie(t, viewer.ID))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "/profile/author/unfollow")
	})

	t.Run("Unknown username is a 404", func(t *testing.T) {
		resp := getPage(t, app, "/profile/nobody", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestFollowingFeed(t *testing.T) {
	app, _, db := setupTestApp(t)
	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	require.NoError(t, db.Create(&models.Post{Text: "followed content", AuthorID: author.ID}).Error)

	t.Run("Requires a session", func(t *testing.T) {
		resp := getPage(t, app, "/follow", "")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/auth/login?next=%2Ffollow", resp.Header.Get("Location"))
	})

	t.Run("Empty before following anyone", func(t *testing.T) {
		resp := getPage(t, app, "/follow", sessionCookie(t, reader.ID))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotContains(t, readBody(t, resp), "followed content")
	})

	t.Run("Shows followed authors' posts", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Follow{UserID: reader.ID, AuthorID: author.ID}).Error)

		resp := getPage(t, app, "/follow", sessionCookie(t, reader.ID))
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "followed content")
	})
}
