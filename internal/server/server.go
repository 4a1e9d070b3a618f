// Package server contains the HTTP handlers and route wiring for the
// application's server-rendered pages.
package server

import (
	"fmt"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/images"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	pageCache      cache.Store
	uploads        *images.Storage
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository

	feedService   *service.FeedService
	followService *service.FollowService
	postService   *service.PostService
	userService   *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	var store cache.Store
	if client := cache.NewRedisClient(cfg.RedisURL); client != nil {
		store = cache.NewRedisStore(client)
	} else {
		store = cache.NewMemoryStore()
	}

	return NewServerWithDeps(cfg, db, store)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the DB and cache.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, store cache.Store) (*Server, error) {
	uploads, err := images.NewStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		pageCache:      store,
		uploads:        uploads,
		promMiddleware: middleware.InitMetrics("inkwell"),
		userRepo:       userRepo,
		groupRepo:      groupRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		followRepo:     followRepo,
	}
	server.feedService = service.NewFeedService(postRepo, groupRepo, userRepo, followRepo, cfg.PageSize)
	server.followService = service.NewFollowService(followRepo, userRepo)
	server.postService = service.NewPostService(postRepo, groupRepo, commentRepo)
	server.userService = service.NewUserService(userRepo)

	return server, nil
}

// PageCache exposes the injected cache store, mainly for tests to clear it.
func (s *Server) PageCache() cache.Store {
	return s.pageCache
}

// NewApp builds the Fiber application with views, middleware and routes.
func (s *Server) NewApp() *fiber.App {
	engine := html.New(s.config.TemplateDir, ".html")

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		BodyLimit:   images.MaxUploadBytes + 1<<20,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.LoadUser())
	app.Use(middleware.ContextMiddleware())
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded attachments
	app.Static("/media", s.uploads.Dir())

	// Account routes
	auth := app.Group("/auth")
	auth.Get("/signup", s.SignupForm)
	auth.Post("/signup", s.Signup)
	auth.Get("/login", s.LoginForm)
	auth.Post("/login", s.Login)
	auth.Get("/logout", s.Logout)
	auth.Post("/logout", s.Logout)

	// Public feeds. The home feed is the only page-cached route.
	app.Get("/", s.CachePage(time.Duration(s.config.CacheTTLSeconds)*time.Second), s.HomeFeed)
	app.Get("/group/:slug", s.GroupFeed)

	// Protected routes
	app.Get("/follow", middleware.AuthRequired(), s.FollowingFeed)
	app.Get("/create", middleware.AuthRequired(), s.CreatePostForm)
	app.Post("/create", middleware.AuthRequired(), s.CreatePost)

	// Profile routes: the follow/unfollow actions accept GET for plain-link
	// clients and POST for forms.
	app.Get("/profile/:username", s.Profile)
	app.Get("/profile/:username/follow", middleware.AuthRequired(), s.FollowAuthor)
	app.Post("/profile/:username/follow", middleware.AuthRequired(), s.FollowAuthor)
	app.Get("/profile/:username/unfollow", middleware.AuthRequired(), s.UnfollowAuthor)
	app.Post("/profile/:username/unfollow", middleware.AuthRequired(), s.UnfollowAuthor)

	// Post routes
	app.Get("/posts/:id", s.PostDetail)
	app.Get("/posts/:id/edit", middleware.AuthRequired(), s.EditPostForm)
	app.Post("/posts/:id/edit", middleware.AuthRequired(), s.EditPost)
	app.Post("/posts/:id/comment", middleware.AuthRequired(), s.AddComment)
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
