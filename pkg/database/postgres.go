package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/maksido/blog-api/pkg/config"
)

// NewPostgres returns a configured PostgreSQL client. The initial connection
// is retried after a delay so the API survives the database coming up later.
func NewPostgres(cfg config.DatabaseConfig, logger *zap.Logger) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	var db *sqlx.DB
	var err error

	attempts := cfg.ConnectRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = connect(dsn, cfg)
		if err == nil {
			return db, nil
		}
		if logger != nil {
			logger.Warn("database connection failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		if attempt < attempts {
			time.Sleep(cfg.RetryDelay)
		}
	}

	return nil, fmt.Errorf("connect to postgres after %d attempts: %w", attempts, err)
}

func connect(dsn string, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
