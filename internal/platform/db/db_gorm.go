// Package db はGORM接続の確立とスキーマ管理を提供します。
package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"user_backend/internal/feature/users/adapters"
	"user_backend/internal/platform/config"
	"user_backend/internal/platform/session"
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Opener はDSNからgorm.DBを開きます。テストで差し替えられるよう関数型にしています。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は timeout に達するまで retryInterval ごとに接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		time.Sleep(retryInterval)
	}
}

// Open は設定に応じたドライバでデータベースに接続します。
// sqlite の場合は起動時にAutoMigrateでスキーマを作成します。
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// SQLiteは書き込みが直列化され、:memory: は接続ごとに別DBになるため接続は1本に固定する
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
		log.Info("sqlite database ready", zap.String("path", cfg.SQLitePath))
		return db, nil

	case config.DriverPostgres:
		db, err := ConnectWithRetry(cfg.DSN(), cfg.ConnectTimeout, func(dsn string) (*gorm.DB, error) {
			db, err := gorm.Open(postgres.Open(dsn), gcfg)
			if err != nil {
				log.Warn("db connect failed, retrying", zap.Error(err))
			}
			return db, err
		})
		if err != nil {
			return nil, err
		}
		log.Info("postgres connection established", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// AutoMigrate はGORMモデルからテーブルを作成します。SQLiteでの開発・テスト用です。
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&adapters.UserModel{}, &session.TokenRevocationModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Ping はデータベースへの疎通を確認します。
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
