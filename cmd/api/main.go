package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Varun5711/devconnect/internal/app"
	"github.com/Varun5711/devconnect/internal/auth"
	"github.com/Varun5711/devconnect/internal/cache"
	"github.com/Varun5711/devconnect/internal/config"
	"github.com/Varun5711/devconnect/internal/events"
	"github.com/Varun5711/devconnect/internal/github"
	"github.com/Varun5711/devconnect/internal/handlers"
	"github.com/Varun5711/devconnect/internal/lock"
	"github.com/Varun5711/devconnect/internal/logger"
	"github.com/Varun5711/devconnect/internal/middleware"
	"github.com/Varun5711/devconnect/internal/service"
)

func main() {
	log := logger.New("api")
	log.SetStdLog()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx := context.Background()

	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("%v", err)
	}
	defer closeStore()

	redisClient := app.ConnectRedis(ctx, cfg, log)
	defer redisClient.Close()
	rdb := redisClient.GetClient()

	profileCache := cache.NewMultiTierCache(cfg.Cache.L1Capacity, rdb, cfg.Cache.L2TTL)
	producer := events.NewAccountProducer(rdb, cfg.Redis.StreamName)
	registerLocker := lock.NewLocker(rdb, "register:", cfg.Auth.RegisterLockTTL)

	githubClient := github.NewClient(github.Config{
		BaseURL:      cfg.GitHub.BaseURL,
		ClientID:     cfg.GitHub.ClientID,
		ClientSecret: cfg.GitHub.ClientSecret,
		Timeout:      cfg.GitHub.Timeout,
		CacheTTL:     cfg.Cache.GitHubTTL,
	})

	hasher := auth.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.BcryptMaxConcurrency)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(store, hasher, jwtManager, registerLocker, producer, log.Named("auth"))
	profileService := service.NewProfileService(store, profileCache, githubClient, producer, log.Named("profile"))

	var redisHealth handlers.Pinger
	if redisClient != nil {
		redisHealth = redisClient
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:           handlers.NewAuthHandler(authService, log.Named("auth-handler")),
		Profiles:       handlers.NewProfileHandler(profileService, log.Named("profile-handler")),
		Health:         handlers.NewHealthHandler(store, redisHealth),
		Docs:           handlers.NewSwaggerHandler(),
		Gate:           middleware.NewAuthMiddleware(jwtManager, cfg.Auth.Header, log.Named("auth-middleware")),
		Limiter:        middleware.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		Log:            log.Named("http"),
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Listening on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down api...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}
	log.Info("Api stopped")
}
