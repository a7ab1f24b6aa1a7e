// Command server runs the nutrition platform API.
//
// @title        Fitlane Nutrition API
// @version      1.0
// @description  Phone-based identity, verification and account management API.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitlane/nutrition-api/internal/api"
	"github.com/fitlane/nutrition-api/internal/core/service"
	"github.com/fitlane/nutrition-api/internal/infrastructure/config"
	mongodb "github.com/fitlane/nutrition-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fitlane/nutrition-api/internal/infrastructure/db/redis"
	"github.com/fitlane/nutrition-api/internal/token"
	"github.com/fitlane/nutrition-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("disconnect mongodb")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}
	if err := adminRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure admin indexes")
	}

	issuer := token.NewIssuer(cfg.JWTSecret)
	adminService := service.NewAdminService(adminRepo, userRepo, issuer, log)
	if err := adminService.Bootstrap(ctx, cfg.Superadmin.Username, cfg.Superadmin.Password); err != nil {
		log.Fatal().Err(err).Msg("bootstrap superadmin")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server exited cleanly")
}
