package domain

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the main application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Session SessionConfig `mapstructure:"session"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ScoringConfig represents the remote scoring service configuration.
// The three endpoint paths are all derived from BaseURL.
type ScoringConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	PredictTimeout time.Duration `mapstructure:"predict_timeout"`
	ReportTimeout  time.Duration `mapstructure:"report_timeout"`
	RateLimit      int           `mapstructure:"rate_limit"`
}

// PredictURL returns the prediction endpoint.
func (c ScoringConfig) PredictURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/predict"
}

// ReportURL returns the report-generation endpoint.
func (c ScoringConfig) ReportURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/predict_with_report"
}

// DownloadURL returns the download link for a generated report file.
// The URL is constructed only, never fetched from here.
func (c ScoringConfig) DownloadURL(filename string) string {
	return fmt.Sprintf("%s/download_report/%s", strings.TrimSuffix(c.BaseURL, "/"), filename)
}

// SessionConfig represents the session profile store configuration.
// RedisURL is optional; when empty only the in-memory tier is used.
type SessionConfig struct {
	RedisURL    string        `mapstructure:"redis_url"`
	MaxSessions int           `mapstructure:"max_sessions"`
	TTL         time.Duration `mapstructure:"ttl"`
}

// HistoryConfig represents the assessment history store configuration.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
