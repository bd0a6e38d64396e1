package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"stockroom/internal/config"
)

const pingTimeout = 5 * time.Second

// Service owns the connection pool shared by repositories.
type Service interface {
	// Health pings the database and reports pool statistics.
	Health(ctx context.Context) (map[string]string, error)
	DB() *sql.DB
	Close() error
}

type service struct {
	db *sql.DB
}

// New opens a pgx-backed pool and verifies it answers a ping.
func New(cfg config.DatabaseConfig) (Service, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &service{db: db}, nil
}

func (s *service) Health(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return map[string]string{"status": "down"}, fmt.Errorf("database ping failed: %w", err)
	}

	stats := s.db.Stats()
	return map[string]string{
		"status":              "up",
		"open_connections":    strconv.Itoa(stats.OpenConnections),
		"in_use":              strconv.Itoa(stats.InUse),
		"idle":                strconv.Itoa(stats.Idle),
		"wait_count":          strconv.FormatInt(stats.WaitCount, 10),
		"wait_duration":       stats.WaitDuration.String(),
		"max_idle_closed":     strconv.FormatInt(stats.MaxIdleClosed, 10),
		"max_lifetime_closed": strconv.FormatInt(stats.MaxLifetimeClosed, 10),
	}, nil
}

func (s *service) DB() *sql.DB {
	return s.db
}

func (s *service) Close() error {
	return s.db.Close()
}
