package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user_backend/internal/app/di"
	"user_backend/internal/app/router"
	"user_backend/internal/app/server"
	"user_backend/internal/platform/config"
	infradb "user_backend/internal/platform/db"
	"user_backend/internal/platform/hash"
	jwtmw "user_backend/internal/platform/jwt"
	"user_backend/internal/platform/logger"
	"user_backend/internal/platform/metrics"
	infraredis "user_backend/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	if cfg.Database.Driver == config.DriverPostgres && cfg.Database.AutoMigrate {
		if err := infradb.RunMigrations(cfg.Database.URL(), "up"); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations applied")
	}
	db, err := infradb.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis, log); err != nil {
			log.Warn("Redis unavailable. Token revocations will be stored in the database.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error("failed to close Redis client", zap.Error(err))
				}
			}()
		}
	}

	// Repository / Provider
	userRepo := di.NewUserRepository(db)
	revocations := di.NewRevocationStore(rdb, db, cfg.JWT.TTL())
	hasher := hash.NewBcryptProvider(cfg.Security.BcryptCost)
	tokens := jwtmw.NewProvider(cfg.JWT.Secret, cfg.JWT.TTL())

	// Handler
	usersH := di.NewUserHandler(userRepo, hasher, tokens, revocations, log)

	readiness := map[string]func(context.Context) error{
		"database": func(ctx context.Context) error { return infradb.Ping(ctx, db) },
	}
	if rdb != nil {
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// ルータ生成
	engine := router.NewRouter(router.Deps{
		Config:      cfg,
		Users:       usersH,
		Tokens:      tokens,
		Revocations: revocations,
		Metrics:     metrics.New("user_backend"),
		Readiness:   readiness,
		Logger:      log,
	})

	srv := &server.Server{
		Handler:         engine,
		Addr:            ":" + cfg.App.Port,
		ShutdownTimeout: cfg.App.ShutdownTimeout,
		Logger:          log,
	}
	return srv.Run(ctx)
}

func closeDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close database", zap.Error(err))
	}
}
