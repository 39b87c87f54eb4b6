package config

import (
	"os"
	"strconv"
	"time"

	"github.com/GabRamosBr/jogo-servidor/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Oracle  OracleConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	MaxPlayers  int
	MaxTurns    int
	TurnSeconds int
}

// OracleConfig holds scoring-service configuration
type OracleConfig struct {
	URL     string
	Timeout time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	defaults := domain.DefaultSettings()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			MaxPlayers:  getEnvInt("MAX_PLAYERS", defaults.MaxPlayers),
			MaxTurns:    getEnvInt("MAX_TURNS", defaults.MaxTurns),
			TurnSeconds: getEnvInt("TURN_SECONDS", defaults.TurnSeconds),
		},
		Oracle: OracleConfig{
			URL:     getEnv("ORACLE_URL", "http://localhost:8000/score"),
			Timeout: time.Duration(getEnvInt("ORACLE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// GameSettings maps the configuration onto domain settings. Point values and
// the connection threshold are fixed game rules, not configuration.
func (c *Config) GameSettings() domain.Settings {
	settings := domain.DefaultSettings()
	settings.MaxPlayers = c.Game.MaxPlayers
	settings.MaxTurns = c.Game.MaxTurns
	settings.TurnSeconds = c.Game.TurnSeconds
	return settings
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
