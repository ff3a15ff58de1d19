package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripcards/internal/cache"
	"tripcards/internal/config"
	"tripcards/internal/database"
	"tripcards/internal/directory"
	"tripcards/internal/middleware"
	"tripcards/internal/models"
	"tripcards/internal/repository"
	"tripcards/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	promMiddleware  *fiberprometheus.FiberPrometheus
	userRepo        repository.UserRepository
	destinationRepo repository.DestinationRepository
	categoryRepo    repository.CategoryRepository
	businessRepo    repository.BusinessRepository
	tripcardRepo    repository.TripcardRepository
	reviewRepo      repository.ReviewRepository
	followRepo      repository.FollowRepository
	followService   *service.FollowService
	tripcardService *service.TripcardService
	reviewService   *service.ReviewService
	directory       directory.Client
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	dirClient := directory.NewHTTPClient(cfg.DirectoryBaseURL, cfg.DirectoryAPIKey)

	return NewServerWithDeps(cfg, db, redisClient, dirClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dirClient directory.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	tripcardRepo := repository.NewTripcardRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := middleware.InitMetrics("tripcards-api")

	server := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		promMiddleware:  prom,
		userRepo:        userRepo,
		destinationRepo: destinationRepo,
		categoryRepo:    categoryRepo,
		businessRepo:    businessRepo,
		tripcardRepo:    tripcardRepo,
		reviewRepo:      reviewRepo,
		followRepo:      followRepo,
		directory:       dirClient,
	}
	server.followService = service.NewFollowService(followRepo, userRepo)
	server.tripcardService = service.NewTripcardService(tripcardRepo, userRepo, destinationRepo, businessRepo)
	server.reviewService = service.NewReviewService(reviewRepo, userRepo, businessRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// Context middleware to propagate request ID and user ID to the logger
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware runs before middlewares that can short-circuit (e.g.
	// limiter) so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				errors.New("Too many requests, please try again later."))
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/token", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "token"), s.Token)

	// Public browse routes
	api.Get("/tripcards/top-destinations", s.GetTopDestinations)

	// Directory proxy routes
	dir := api.Group("/directory")
	dir.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "directory_search"), s.DirectorySearch)
	dir.Get("/autocomplete", s.DirectoryAutocomplete)
	dir.Get("/businesses/:externalId/reviews", s.AuthRequired(), s.DirectoryBusinessReviews)
	dir.Get("/businesses/:externalId", s.AuthRequired(), s.DirectoryBusiness)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes; specific /:id/:resource routes go before the generic /:id
	users := protected.Group("/users")
	users.Post("/", s.AdminRequired(), s.CreateUser)
	users.Get("/", s.GetUsers)
	users.Post("/:id/follow", s.FollowUser)
	users.Delete("/:id/follow", s.UnfollowUser)
	users.Get("/:id/followers", s.GetFollowers)
	users.Get("/:id/following", s.GetFollowing)
	users.Get("/:id", s.GetUser)
	users.Patch("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	// Destination routes
	destinations := protected.Group("/destinations")
	destinations.Post("/", s.CreateDestination)
	destinations.Get("/", s.GetDestinations)
	destinations.Get("/:id", s.GetDestination)
	destinations.Patch("/:id", s.AdminRequired(), s.UpdateDestination)
	destinations.Delete("/:id", s.AdminRequired(), s.DeleteDestination)

	// Category routes
	categories := protected.Group("/categories")
	categories.Post("/", s.CreateCategory)
	categories.Get("/", s.GetCategories)
	categories.Get("/:id", s.GetCategory)
	categories.Patch("/:id", s.AdminRequired(), s.UpdateCategory)
	categories.Delete("/:id", s.AdminRequired(), s.DeleteCategory)

	// Business routes
	businesses := protected.Group("/businesses")
	businesses.Post("/", s.CreateBusiness)
	businesses.Get("/", s.GetBusinesses)
	businesses.Get("/:id", s.GetBusiness)
	businesses.Patch("/:id", s.AdminRequired(), s.UpdateBusiness)
	businesses.Delete("/:id", s.AdminRequired(), s.DeleteBusiness)

	// Tripcard routes
	tripcards := protected.Group("/tripcards")
	tripcards.Post("/", s.CreateTripcard)
	tripcards.Get("/", s.GetTripcards)
	tripcards.Post("/:id/add/:businessId", s.AddBusinessToTripcard)
	tripcards.Delete("/:id/delete/:businessId", s.RemoveBusinessFromTripcard)
	tripcards.Get("/:id/businesses", s.GetTripcardBusinesses)
	tripcards.Get("/:id", s.GetTripcard)
	tripcards.Patch("/:id", s.UpdateTripcard)
	tripcards.Delete("/:id", s.DeleteTripcard)

	// Review routes
	reviews := protected.Group("/reviews")
	reviews.Post("/", s.CreateReview)
	reviews.Get("/", s.GetReviews)
	reviews.Get("/:id", s.GetReview)
	reviews.Patch("/:id", s.UpdateReview)
	reviews.Delete("/:id", s.DeleteReview)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades gracefully without Redis; report but stay ready.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server-held resources (database and Redis connections).
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.ErrorContext(ctx, "redis close failed", "error", err)
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AuthRequired returns middleware that enforces a valid bearer token and
// stores the subject's user id and admin flag in locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "tripcards-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "tripcards-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		isAdmin, _ := claims["admin"].(bool)

		c.Locals("userID", uint(userID))
		c.Locals("isAdmin", isAdmin)

		// Sync to the user context for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users.
// Must be placed after AuthRequired so that the admin flag is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !currentUserIsAdmin(c) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Admin access required"))
		}
		return c.Next()
	}
}
