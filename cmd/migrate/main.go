// Command migrate は埋め込みSQLマイグレーションをPostgreSQLに適用します。
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"user_backend/internal/platform/config"
	infradb "user_backend/internal/platform/db"
	"user_backend/internal/platform/logger"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal("migrations are only supported for postgres", zap.String("driver", cfg.Database.Driver))
	}
	if err := infradb.RunMigrations(cfg.Database.URL(), *direction); err != nil {
		log.Fatal("migration failed", zap.String("direction", *direction), zap.Error(err))
	}
	log.Info("migration completed", zap.String("direction", *direction))
}
