package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL())
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "60")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.JWT.TTL())
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	assert.ErrorContains(t, err, "JWT_SECRET is required")
}

func TestValidate(t *testing.T) {
	cfg := Config{
		JWT:      JWTConfig{Secret: "s", ExpiresIn: 0},
		Database: DatabaseConfig{Driver: "mysql"},
	}

	err := cfg.Validate()

	assert.ErrorContains(t, err, "JWT_EXPIRES_IN must be positive")
	assert.ErrorContains(t, err, `unsupported DB_DRIVER "mysql"`)
}

func TestDatabaseConfig_Connection(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: "5432", User: "app", Password: "p@ss", Name: "users", SSLMode: "disable", TimeZone: "UTC",
	}

	assert.Equal(t, "host=db port=5432 user=app password=p@ss dbname=users sslmode=disable TimeZone=UTC", c.DSN())
	assert.Equal(t, "postgres://app:p%40ss@db:5432/users?sslmode=disable", c.URL())
}
