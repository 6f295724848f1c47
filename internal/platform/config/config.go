// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	App       AppConfig
	Log       LogConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Env             string        `env:"APP_ENV" env-default:"development"`
	Port            string        `env:"PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET"`
	// ExpiresIn はトークンの有効期間（秒）です。
	ExpiresIn int `env:"JWT_EXPIRES_IN" env-default:"86400"`
}

// TTL はトークンの有効期間を返します。
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpiresIn) * time.Second
}

type SecurityConfig struct {
	BcryptCost int `env:"BCRYPT_COST" env-default:"10"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver         string        `env:"DB_DRIVER" env-default:"postgres"`
	Host           string        `env:"DB_HOST" env-default:"localhost"`
	Port           string        `env:"DB_PORT" env-default:"5432"`
	User           string        `env:"DB_USER" env-default:"postgres"`
	Password       string        `env:"DB_PASSWORD" env-default:"postgres"`
	Name           string        `env:"DB_NAME" env-default:"users"`
	SSLMode        string        `env:"DB_SSLMODE" env-default:"disable"`
	TimeZone       string        `env:"DB_TIMEZONE" env-default:"UTC"`
	SQLitePath     string        `env:"DB_SQLITE_PATH" env-default:"users.db"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"60s"`
	AutoMigrate    bool          `env:"DB_AUTO_MIGRATE" env-default:"false"`
}

// DSN はgorm postgresドライバ用のkey=value形式の接続文字列を返します。
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.TimeZone)
}

// URL はマイグレーション用のURL形式の接続文字列を返します。
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	// Addr が空の場合、Redisは使用しません。
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// Enabled はRedisが設定されているかを返します。
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// Load は .env（存在すれば）と環境変数から設定を読み込み、検証します。
func Load() (*Config, error) {
	// .env は任意
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg.CORS.AllowedOrigins = trimAll(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は必須項目と値の範囲を検証します。
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.ExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}
	return errors.Join(errs...)
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
