package seed

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func TestSeedPopulatesAllTables(t *testing.T) {
	db := setupTestDB(t)
	s := NewSeeder(db)

	err := s.Seed(Options{
		NumUsers:    5,
		NumPosts:    20,
		NumComments: 30,
		ShouldClean: true,
		UploadDir:   t.TempDir(),
	})
	require.NoError(t, err)

	var users, groups, posts, comments, follows int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Group{}).Count(&groups)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Comment{}).Count(&comments)
	db.Model(&models.Follow{}).Count(&follows)

	assert.Equal(t, int64(5), users)
	assert.Greater(t, groups, int64(0))
	assert.Equal(t, int64(20), posts)
	assert.Equal(t, int64(30), comments)
	assert.Greater(t, follows, int64(0))
}

func TestSeedGroupsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	s := NewSeeder(db)

	first, err := s.SeedGroups()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := s.SeedGroups()
	require.NoError(t, err)
	assert.Len(t, second, len(first))

	var count int64
	db.Model(&models.Group{}).Count(&count)
	assert.Equal(t, int64(len(first)), count)
}

func TestSeedFollowsSkipsSelf(t *testing.T) {
	db := setupTestDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(4)
	require.NoError(t, err)
	require.NoError(t, s.SeedFollows(users))

	var selfEdges int64
	db.Model(&models.Follow{}).Where("user_id = author_id").Count(&selfEdges)
	assert.Equal(t, int64(0), selfEdges)
}
