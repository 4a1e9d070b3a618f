// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"inkwell/internal/images"
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed groups.yml
var groupsFixture []byte

// Options controls how much data the seeder creates. When UploadDir is
// set, some posts get a generated placeholder image.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	ShouldClean bool
	UploadDir   string
}

// Seeder builds domain entities and persists them to the database.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed populates the database according to opts.
func (s *Seeder) Seed(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleaning database: %w", err)
		}
	}

	groups, err := s.SeedGroups()
	if err != nil {
		return fmt.Errorf("seeding groups: %w", err)
	}
	log.Printf("✓ %d groups available", len(groups))

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := s.SeedPosts(users, groups, opts.NumPosts, opts.UploadDir)
	if err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := s.SeedComments(users, posts, opts.NumComments); err != nil {
		return fmt.Errorf("seeding comments: %w", err)
	}
	log.Printf("✓ %d comments created", opts.NumComments)

	if err := s.SeedFollows(users); err != nil {
		return fmt.Errorf("seeding follows: %w", err)
	}
	log.Println("✓ follow mesh created")

	return nil
}

// ClearAll removes all seedable data, children first.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Follow{},
		&models.Comment{},
		&models.Post{},
		&models.Group{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// groupFixture mirrors the structure of groups.yml.
type groupFixture struct {
	Groups []struct {
		Title       string `yaml:"title"`
		Slug        string `yaml:"slug"`
		Description string `yaml:"description"`
	} `yaml:"groups"`
}

// SeedGroups upserts the fixed set of groups from the embedded fixture.
// Re-running the seeder keeps existing groups and their posts intact.
func (s *Seeder) SeedGroups() ([]models.Group, error) {
	var fixture groupFixture
	if err := yaml.Unmarshal(groupsFixture, &fixture); err != nil {
		return nil, fmt.Errorf("parsing groups fixture: %w", err)
	}

	groups := make([]models.Group, 0, len(fixture.Groups))
	for _, g := range fixture.Groups {
		if !validation.GroupSlug(g.Slug) {
			return nil, models.NewValidationError(fmt.Sprintf("group fixture has invalid slug %q", g.Slug))
		}
		group := models.Group{
			Title:       g.Title,
			Slug:        g.Slug,
			Description: g.Description,
		}
		if err := s.db.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoUpdates: clause.AssignmentColumns([]string{"title", "description"}),
			}).
			Create(&group).Error; err != nil {
			return nil, err
		}
		// Re-read so the ID is set even when the row already existed.
		if err := s.db.Where("slug = ?", g.Slug).First(&group).Error; err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// SeedUsers creates n accounts. Every account gets the same password so
// demo logins are easy: password123.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:        gofakeit.Email(),
			PasswordHash: string(hash),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPosts creates n posts spread over the last 90 days. Roughly a third
// of them stay ungrouped, and a quarter get a placeholder image when
// uploadDir is set.
func (s *Seeder) SeedPosts(users []models.User, groups []models.Group, n int, uploadDir string) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := models.Post{
			Text:     gofakeit.Paragraph(1, 3, 12, "\n"),
			AuthorID: author.ID,
		}
		if len(groups) > 0 && s.rng.Intn(3) != 0 {
			group := groups[s.rng.Intn(len(groups))]
			post.GroupID = &group.ID
		}
		if uploadDir != "" && s.rng.Intn(4) == 0 {
			if rel, err := s.writePlaceholderImage(uploadDir); err == nil {
				post.ImagePath = rel
			}
		}
		post.CreatedAt = s.pastTime(90)

		if err := s.db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// writePlaceholderImage stores a solid-color JPEG in uploadDir and returns
// its name relative to that directory.
func (s *Seeder) writePlaceholderImage(uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}

	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	fill := color.RGBA{
		R: uint8(s.rng.Intn(256)),
		G: uint8(s.rng.Intn(256)),
		B: uint8(s.rng.Intn(256)),
		A: 255,
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)

	rel := gofakeit.UUID() + ".jpg"
	out, err := os.Create(filepath.Join(uploadDir, rel))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := images.ReencodeJPEG(out, img); err != nil {
		return "", err
	}
	return rel, nil
}

// SeedComments attaches n comments to random posts.
func (s *Seeder) SeedComments(users []models.User, posts []models.Post, n int) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		comment := models.Comment{
			Text:      gofakeit.Sentence(s.rng.Intn(12) + 3),
			PostID:    posts[s.rng.Intn(len(posts))].ID,
			AuthorID:  users[s.rng.Intn(len(users))].ID,
			CreatedAt: s.pastTime(30),
		}
		if err := s.db.Create(&comment).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedFollows gives every user a handful of random authors to follow.
// Self-follows are skipped and duplicates collapse on the unique index.
func (s *Seeder) SeedFollows(users []models.User) error {
	for _, user := range users {
		for i := 0; i < 5; i++ {
			author := users[s.rng.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			follow := models.Follow{UserID: user.ID, AuthorID: author.ID}
			if err := s.db.
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rng.Intn(maxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}
