// @title                      Account Service API
// @version                    1.0
// @description                Registration, login, profile self-service and admin account management.
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/usermgmt/account-service/internal/api"
	"github.com/usermgmt/account-service/internal/api/handler"
	"github.com/usermgmt/account-service/internal/core/ports"
	"github.com/usermgmt/account-service/internal/core/service"
	"github.com/usermgmt/account-service/internal/infrastructure/config"
	mongodb "github.com/usermgmt/account-service/internal/infrastructure/db/mongo"
	redisdb "github.com/usermgmt/account-service/internal/infrastructure/db/redis"
	"github.com/usermgmt/account-service/internal/infrastructure/password"
	"github.com/usermgmt/account-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "account-service",
	})

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "account-service",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		if err := mongodb.Disconnect(client); err != nil {
			log.Error().Err(err).Msg("disconnect mongo")
		}
	}()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure user indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	// --- Core ---
	tokens, err := service.NewTokenService(service.TokenConfig{
		Key:      cfg.JWT.Key,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("token service")
	}

	var limiter ports.LoginLimiter
	if cfg.Login.MaxAttempts > 0 {
		limiter = redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.LockoutWindow)
	}

	hasher := password.NewBcryptHasher(cfg.Login.BcryptCost)
	authService := service.NewAuthService(users, hasher, tokens, limiter, logger.For("auth"))
	userService := service.NewUserService(users, hasher, logger.For("users"))
	gate := service.NewAccessGate(users, cfg.Access.DenyUnknownCaller, logger.For("gate"))

	if err := authService.EnsureAdmin(ctx, service.SeedAdmin{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		UserService: userService,
		Tokens:      tokens,
		Gate:        gate,
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(client),
			"redis":   handler.RedisPinger(rdb),
		},
		Log: logger.For("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}
