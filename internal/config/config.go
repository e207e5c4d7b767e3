package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	// Set configuration file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/sweathog-bot/")

	// Set environment variable prefix and enable automatic env binding
	viper.SetEnvPrefix("SWEATHOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	m.setDefaults()

	// Read configuration file (optional - will use defaults and env vars if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	// Unmarshal configuration into struct
	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5055)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "90s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Scoring service defaults. Report generation gets the longer
	// timeout; prediction stays interactive.
	viper.SetDefault("scoring.base_url", "http://localhost:8080")
	viper.SetDefault("scoring.predict_timeout", "30s")
	viper.SetDefault("scoring.report_timeout", "60s")
	viper.SetDefault("scoring.rate_limit", 10)

	// Session store defaults
	viper.SetDefault("session.redis_url", "")
	viper.SetDefault("session.max_sessions", 1024)
	viper.SetDefault("session.ttl", "1h")

	// Assessment history defaults
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.db_path", "./data/assessments.db")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output", "stdout")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetScoringConfig returns scoring service configuration
func (m *Manager) GetScoringConfig() *domain.ScoringConfig {
	return &m.config.Scoring
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	// Validate server configuration
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	// Validate scoring service configuration
	if config.Scoring.BaseURL == "" {
		return fmt.Errorf("scoring base URL is required")
	}
	if config.Scoring.PredictTimeout <= 0 {
		return fmt.Errorf("scoring predict timeout must be positive")
	}
	if config.Scoring.ReportTimeout <= 0 {
		return fmt.Errorf("scoring report timeout must be positive")
	}

	// Validate session store configuration
	if config.Session.MaxSessions <= 0 {
		return fmt.Errorf("session max_sessions must be positive")
	}

	// Validate history configuration
	if config.History.Enabled && config.History.DBPath == "" {
		return fmt.Errorf("history db_path is required when history is enabled")
	}

	// Validate logging configuration
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(viper.GetString("environment")) == "production"
}

// IsDevelopment returns true if running in development mode
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(viper.GetString("environment"))
	return env == "development" || env == "dev" || env == ""
}
