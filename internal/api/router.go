package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/fitlane/nutrition-api/docs"
	"github.com/fitlane/nutrition-api/internal/api/handler"
	"github.com/fitlane/nutrition-api/internal/api/middleware"
	"github.com/fitlane/nutrition-api/internal/core/service"
	"github.com/fitlane/nutrition-api/internal/infrastructure/config"
	mongodb "github.com/fitlane/nutrition-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fitlane/nutrition-api/internal/infrastructure/db/redis"
	"github.com/fitlane/nutrition-api/internal/infrastructure/http/handlers"
	"github.com/fitlane/nutrition-api/internal/infrastructure/sms"
	"github.com/fitlane/nutrition-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fitlane"))

	// --- Dependencies ---
	issuer := token.NewIssuer(cfg.JWTSecret)
	userRepo := mongodb.NewUserRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	verifyRepo := redisdb.NewVerificationRepository(rdb)
	smsClient := sms.NewClient(sms.Config{
		BaseURL:  cfg.SMS.BaseURL,
		Login:    cfg.SMS.Login,
		Password: cfg.SMS.Password,
		Sender:   cfg.SMS.Sender,
	}, log)

	authService := service.NewAuthService(userRepo, verifyRepo, smsClient, issuer)
	userService := service.NewUserService(userRepo)
	adminService := service.NewAdminService(adminRepo, userRepo, issuer, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService)

	userGuard := middleware.User(issuer, userRepo)
	adminGuard := middleware.Admin(issuer, adminRepo)

	// --- Auth routes ---
	e.POST("/auth/request-code", authHandler.RequestCode)
	e.POST("/auth/verify-code", authHandler.VerifyCode)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User routes (guarded) ---
	users := e.Group("/users", userGuard)
	users.GET("/me", userHandler.Me)
	users.PATCH("/me", userHandler.UpdateMe)
	users.DELETE("/me", userHandler.DeleteMe)

	// --- Admin routes ---
	e.POST("/admin/login", adminHandler.Login)

	admin := e.Group("/admin", adminGuard)
	admin.POST("/create", adminHandler.Create)
	admin.GET("/me", adminHandler.Me)
	admin.PATCH("/me", adminHandler.UpdateMe)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id/block", adminHandler.BlockUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/statistics", adminHandler.Statistics)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
