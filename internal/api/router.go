package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/planventa/planning-system/docs"
	"github.com/planventa/planning-system/internal/api/handler"
	"github.com/planventa/planning-system/internal/api/middleware"
	"github.com/planventa/planning-system/internal/core/ports"
	"github.com/planventa/planning-system/internal/core/service"
	mongoinfra "github.com/planventa/planning-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/planventa/planning-system/internal/infrastructure/db/redis"
	"github.com/planventa/planning-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("planning"))

	// --- Stores ---
	credentialRepo := mongoinfra.NewCredentialRepository(db)
	roleRepo := mongoinfra.NewRoleAssignmentRepository(db)
	tenantRepo := mongoinfra.NewTenantRepository(db)
	shopRepo := mongoinfra.NewShopRepository(db)
	userRepo := mongoinfra.NewUserRepository(db)
	planRepo := mongoinfra.NewPlanRepository(db)

	// --- Services ---
	resolver := service.NewPrincipalService(credentialRepo, roleRepo, tenantRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL)
	keyService := service.NewAPIKeyService(credentialRepo, audit)
	directory := service.NewDirectoryService(tenantRepo, shopRepo, roleRepo, planRepo, audit)

	// --- Guards ---
	throttle := redisinfra.NewAuthThrottle(rdb, cfg.Auth.MaxFailures, cfg.Auth.FailureWindow)
	authGuard := middleware.Auth(resolver, cfg.JWTSecret, throttle, audit, log)
	adminGuard := middleware.RequireSystemAdmin()

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	keyHandler := handler.NewAPIKeyHandler(keyService)
	tenantHandler := handler.NewTenantHandler(directory)
	shopHandler := handler.NewShopHandler(directory)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authGuard)

	v1.GET("/tenants", tenantHandler.List)
	v1.GET("/tenants/:id", tenantHandler.Get)
	v1.POST("/tenants/:id/shops", tenantHandler.CreateShop)
	v1.POST("/tenants/:id/roles", tenantHandler.GrantRole)
	v1.DELETE("/tenants/:id/roles", tenantHandler.RevokeRole)

	v1.GET("/shops/:id", shopHandler.Get)
	v1.GET("/shops/:id/plans", shopHandler.ListPlans)
	v1.PUT("/shops/:id/plans", shopHandler.UpsertPlan)

	// --- System-admin-only routes ---
	v1.POST("/tenants", tenantHandler.Create, adminGuard)
	v1.POST("/apikeys", keyHandler.Mint, adminGuard)
	v1.DELETE("/apikeys/:id", keyHandler.Revoke, adminGuard)

	return e
}
