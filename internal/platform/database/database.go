package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lunchVote/internal/config"
)

// Open connects with the configured driver, retrying while the server is unreachable.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}

	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := cfg.ConnectBackoff
	if backoff <= 0 {
		backoff = 5 * time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		slog.Info("connecting to database", slog.String("driver", cfg.Driver), slog.Int("attempt", attempt), slog.Int("maxAttempts", attempts))
		db, err := connect(ctx, dialector, logger.Warn)
		if err == nil {
			configurePool(db, cfg)
			slog.Info("database connected", slog.String("driver", cfg.Driver))
			return db, nil
		}
		lastErr = err
		slog.Warn("database connection failed", slog.Int("attempt", attempt), slog.Duration("retryIn", backoff), slog.Any("error", err))
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect database: %w", ctx.Err())
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("connect database after %d attempts: %w", attempts, lastErr)
}

// OpenSQLite opens a single-connection SQLite database at path. SQLite serialises writers, so one
// connection avoids "database is locked" errors under concurrent requests.
func OpenSQLite(ctx context.Context, path string) (*gorm.DB, error) {
	db, err := connect(ctx, sqlite.Open(sqliteDSN(path)), logger.Silent)
	if err != nil {
		return nil, err
	}
	configurePool(db, config.DatabaseConfig{Driver: "sqlite"})
	return db, nil
}

// Migrate creates or updates the tables and unique indexes for models.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func dialectorFor(driver, url string) (gorm.Dialector, error) {
	switch driver {
	case "pgx":
		return postgres.Open(url), nil
	case "pq":
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: url}), nil
	case "sqlite":
		return sqlite.Open(sqliteDSN(url)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func connect(ctx context.Context, dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func configurePool(db *gorm.DB, cfg config.DatabaseConfig) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
		return
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
