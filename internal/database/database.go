package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"strings"

	"club-roster/internal/config"
	"club-roster/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// connection pragmas go in the DSN so every pooled connection gets them
var pragmas = []struct {
	name  string
	value string
}{
	{"_journal_mode", "WAL"},
	{"_synchronous", "NORMAL"},
	{"_busy_timeout", "5000"},
	{"_foreign_keys", "on"},
	{"_cache_size", "-64000"},
}

func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	dsn := buildDSN(cfg.DBPath)
	logger.Info().Str("path", cfg.DBPath).Msg("connecting to database")

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	if err := db.Ping(); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("failed to run migrations")
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database ready")
	return db, nil
}

func buildDSN(path string) string {
	params := make([]string, 0, len(pragmas))
	for _, p := range pragmas {
		params = append(params, p.name+"="+url.QueryEscape(p.value))
	}
	return "file:" + path + "?" + strings.Join(params, "&")
}

func runMigrations(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "goose").Logger()})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Info().Msg("migrations completed successfully")
	return nil
}

type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(strings.TrimSpace(format), v...)
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), v...)
}
