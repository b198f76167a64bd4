package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// NewPostgresDB opens the document store database and checks it is reachable.
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("connected to postgres",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Duration("conn_max_lifetime", cfg.ConnMaxLifetime))
	return db, nil
}
