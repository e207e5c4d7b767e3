package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/api"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/config"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/history"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/service"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/session"
	"github.com/gurmatsinghsour/SweatHogChatBot/pkg/scoring"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging)

	logger.WithFields(logrus.Fields{
		"host":        cfg.Server.Host,
		"port":        cfg.Server.Port,
		"scoring_url": cfg.Scoring.BaseURL,
	}).Info("Starting SweatHog bot action server")

	// Session profile store
	profiles, err := session.NewStore(logger, cfg.Session)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create session store")
	}
	defer profiles.Close()

	// Assessment history (optional)
	var historyStore history.Store
	if cfg.History.Enabled {
		historyStore, err = history.NewSQLiteStore(cfg.History.DBPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open assessment history")
		}
		defer historyStore.Close()
	}

	// Scoring service client behind circuit breakers
	scorer := scoring.NewResilientClient(cfg.Scoring, logger)

	// Services
	chooser := service.NewChooser(time.Now().UnixNano())
	validator := service.NewValidator(logger, chooser)
	predictor := service.NewPredictor(logger, scorer, chooser, historyStore)
	reporter := service.NewReporter(logger, scorer, chooser)

	// Create server
	server := api.NewServer(configManager, logger, validator, predictor, reporter, profiles, historyStore)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

// newLogger builds the process logger from configuration.
func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
