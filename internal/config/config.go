package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int

	PoolSize     int
	MinIdleConns int
}

type NATSConfig struct {
	URL string
}

type JWTConfig struct {
	Secret    string
	ExpiryMin int
}

type StorageConfig struct {
	Type string
}

type CacheConfig struct {
	PostsTTL time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("ENV", "production")
	v.SetDefault("STORAGE_TYPE", StoragePostgres)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	v.SetDefault("CACHE_POSTS_TTL", "5m")
	v.SetDefault("JWT_EXPIRY_MIN", 60)
	v.SetDefault("LOG_LEVEL", "info")

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),

			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),

			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
		},
		NATS: NATSConfig{
			URL: v.GetString("NATS_URL"),
		},
		JWT: JWTConfig{
			Secret:    v.GetString("JWT_SECRET"),
			ExpiryMin: v.GetInt("JWT_EXPIRY_MIN"),
		},
		Storage: StorageConfig{
			Type: v.GetString("STORAGE_TYPE"),
		},
		Cache: CacheConfig{
			PostsTTL: v.GetDuration("CACHE_POSTS_TTL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StoragePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns && c.Database.MaxOpenConns > 0 {
		return fmt.Errorf("database idle connections exceed open connections")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.ExpiryMin <= 0 {
		return fmt.Errorf("JWT expiry must be positive")
	}
	return nil
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// NATSEnabled reports whether a NATS server was configured.
func (c *Config) NATSEnabled() bool {
	return c.NATS.URL != ""
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
