package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/rolodex/contacts-api/docs"
	"github.com/rolodex/contacts-api/internal/api/handler"
	"github.com/rolodex/contacts-api/internal/api/middleware"
	"github.com/rolodex/contacts-api/internal/core/ports"
	"github.com/rolodex/contacts-api/internal/core/service"
	"github.com/rolodex/contacts-api/internal/infrastructure/config"
	mongodb "github.com/rolodex/contacts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/rolodex/contacts-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit dispatcher is passed in because its worker lifecycle belongs to
// main, not to the router.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditDispatcher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("contacts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)

	contactRepo := mongodb.NewContactRepository(db)
	contactCache := redisdb.NewContactCache(rdb, cfg.CacheTTL)
	contactService := service.NewContactService(contactRepo, contactCache, audit, log)
	contactHandler := handler.NewContactHandler(contactService, cfg.BaseURL)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Contacts (authenticated only) ---
	contacts := e.Group("/contacts", middleware.Auth(cfg.JWTSecret), middleware.RequireIdentity())
	contacts.GET("", contactHandler.List)
	contacts.POST("", contactHandler.Create)
	contacts.GET("/:id", contactHandler.Get)
	contacts.PUT("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
