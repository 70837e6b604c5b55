package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath      string
	ServerPort  string
	LogLevel    string
	EspnBaseURL string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:      getEnv("DB_PATH", "schedule.db"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		EspnBaseURL: getEnv("ESPN_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports"),
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("espn_base_url", cfg.EspnBaseURL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
