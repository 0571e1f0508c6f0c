package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/config"
	"github.com/rlaig/ezorder/internal/database"
	"github.com/rlaig/ezorder/internal/docstore"
	"github.com/rlaig/ezorder/internal/handler"
	"github.com/rlaig/ezorder/internal/logging"
	"github.com/rlaig/ezorder/internal/middleware"
	"github.com/rlaig/ezorder/internal/queue"
	"github.com/rlaig/ezorder/internal/repository"
	"github.com/rlaig/ezorder/internal/router"
	"github.com/rlaig/ezorder/internal/service"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/validate"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		client access.Client
		tokens repository.TokenStore
	)
	switch cfg.Datastore {
	case config.DatastoreMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			logger.Fatal("database open", zap.Error(err))
		}
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("database migrate", zap.Error(err))
		}
		client, tokens = docstore.NewMySQL(db), repository.NewTokenRepo(db)
	default:
		logger.Warn("using in-memory datastore; data is lost on exit")
		client, tokens = docstore.NewMemory(), repository.NewMemoryTokens()
	}

	w := access.New(client, validate.New(cfg.IsDev(), logger), func() transform.Env {
		return transform.Env{Now: time.Now(), MenuBaseURL: cfg.MenuBaseURL}
	})
	users := repository.NewUserRepo(w)

	if err := service.EnsureAdmin(ctx, users, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost, logger); err != nil {
		logger.Fatal("bootstrap admin", zap.Error(err))
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.Queue.Enabled {
		events = service.NewAMQPPublisher(cfg.Queue.URL, cfg.Queue.Name, logger)
		consumer := queue.NewConsumer(cfg.Queue.URL, cfg.Queue.Name, w, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("order event consumer stopped", zap.Error(err))
			}
		}()
	}

	var extra []echo.MiddlewareFunc
	rdb, err := config.NewRedisClient(ctx, config.LoadRedisConfig())
	if err != nil {
		logger.Warn("redis unavailable; cache and rate limiting disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		extra = append(extra,
			middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger),
			middleware.NewRedisCache(config.LoadCacheConfig(), rdb, logger),
		)
	}

	merchants := service.NewMerchantService(w, users, cfg.BcryptCost, logger)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(middleware.RequestID(), middleware.RequestLogger(logger))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, w), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(merchants, w), cfg.JWTSecret, extra...)
	router.RegisterMerchant(e, handler.NewMerchantHandler(
		merchants,
		service.NewMenuService(w),
		service.NewOrderService(w, events, logger),
		service.NewQRService(w),
	), cfg.JWTSecret, extra...)

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("datastore", cfg.Datastore))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
