package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoadMemoryStorage(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CACHE_POSTS_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Cache.PostsTTL)
	assert.Equal(t, 60, cfg.JWT.ExpiryMin)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5, cfg.Redis.MinIdleConns)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.NATSEnabled())
}

func TestLoadOptionalServices(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("NATS_URL", "nats://bus:4222")
	t.Setenv("REDIS_POOL_SIZE", "32")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "cache:6379", cfg.Redis.GetAddr())
	assert.True(t, cfg.NATSEnabled())
	assert.Equal(t, 32, cfg.Redis.PoolSize)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage:  StorageConfig{Type: StoragePostgres},
			Database: DatabaseConfig{Host: "db", User: "app", DBName: "devconnector"},
			JWT:      JWTConfig{Secret: secret, ExpiryMin: 60},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "database host"},
		{name: "missing db user", mutate: func(c *Config) { c.Database.User = "" }, wantErr: "database user"},
		{name: "missing db name", mutate: func(c *Config) { c.Database.DBName = "" }, wantErr: "database name"},
		{
			name:   "memory storage needs no db",
			mutate: func(c *Config) { c.Storage.Type = StorageMemory; c.Database = DatabaseConfig{} },
		},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Type = "mongo" }, wantErr: "unknown storage"},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "JWT secret is required"},
		{name: "short secret", mutate: func(c *Config) { c.JWT.Secret = strings.Repeat("a", 31) }, wantErr: "at least 32"},
		{
			name:    "idle above open",
			mutate:  func(c *Config) { c.Database.MaxOpenConns = 5; c.Database.MaxIdleConns = 10 },
			wantErr: "idle connections",
		},
		{name: "zero expiry", mutate: func(c *Config) { c.JWT.ExpiryMin = 0 }, wantErr: "expiry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "pw", DBName: "dc", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=dc sslmode=disable", c.GetDSN())
}
