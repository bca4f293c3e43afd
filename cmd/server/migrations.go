package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"database/sql"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/uniplanner/planner-api/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// migrationsDir is the path to the goose migration files, relative to the
// working directory the server is started from.
const migrationsDir = "migrations"

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct{}

// Printf forwards goose progress messages to slog.Info.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf forwards goose error messages to slog.Error. Unlike the standard
// Fatalf behavior it does NOT call os.Exit, so main can handle application
// exit consistently.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		username := parsedURL.User.Username()
		parsedURL.User = url.UserPassword(username, "****")
		return parsedURL.String()
	}

	return dbURL
}

// runMigrations opens a dedicated database connection and executes the
// requested goose command ("up", "down" or "status") against migrationsDir.
// Each run gets a correlation ID so its log lines can be grouped together.
func runMigrations(cfg *config.Config, logger *slog.Logger, command string) error {
	correlationID := uuid.New().String()
	migrationLogger := logger.With(
		"correlation_id", correlationID,
		"component", "migrations",
	)

	goose.SetLogger(&slogGooseLogger{})

	migrationLogger.Info("Starting migration",
		"command", command,
		"database_url", maskDatabaseURL(cfg.Database.URL),
		"directory", migrationsDir)

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Warn("Error closing migration database connection", "error", closeErr)
		}
	}()

	// Modest pool settings, migrations run sequentially anyway
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	start := time.Now()
	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %q (expected up, down or status)", command)
	}
	if err != nil {
		migrationLogger.Error("Migration failed",
			"command", command,
			"error", err,
			"duration", time.Since(start))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration completed",
		"command", command,
		"duration", time.Since(start))
	return nil
}
