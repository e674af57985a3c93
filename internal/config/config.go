package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"club-roster/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath        string
	ServerPort    string
	LogLevel      string
	AccessCode    string
	Venues        []string
	SquadCapacity int
	WebhookURL    string
	CORSOrigins   []string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	capacity, err := strconv.Atoi(getEnv("SQUAD_CAPACITY", strconv.Itoa(constants.SquadCapacity)))
	if err != nil {
		return nil, fmt.Errorf("SQUAD_CAPACITY must be an integer: %w", err)
	}

	cfg := &Config{
		DBPath:        getEnv("DB_PATH", "club.db"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "debug"),
		AccessCode:    getEnv("ACCESS_CODE", "1234"),
		Venues:        splitList(getEnv("VENUES", "Main Pitch,Training Pitch,Futsal Court")),
		SquadCapacity: capacity,
		WebhookURL:    getEnv("WEBHOOK_URL", ""),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if cfg.SquadCapacity <= 0 {
		return nil, fmt.Errorf("SQUAD_CAPACITY must be positive, got %d", cfg.SquadCapacity)
	}
	if len(cfg.Venues) == 0 {
		return nil, fmt.Errorf("VENUES must name at least one venue")
	}
	if cfg.AccessCode == "" {
		return nil, fmt.Errorf("ACCESS_CODE must not be empty")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Strs("venues", cfg.Venues).
		Int("squad_capacity", cfg.SquadCapacity).
		Bool("webhook_enabled", cfg.WebhookURL != "").
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) HasVenue(venue string) bool {
	for _, v := range c.Venues {
		if v == venue {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var Module = fx.Provide(Load)
