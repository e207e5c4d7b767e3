package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/history"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/middleware"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/service"
)

// Server is the webhook HTTP server the conversational runtime calls.
type Server struct {
	configManager domain.ConfigManager
	logger        *logrus.Logger

	validator *service.Validator
	predictor *service.Predictor
	reporter  *service.Reporter
	profiles  domain.ProfileStore
	history   history.Store // nil when history is disabled

	router *gin.Engine
	server *http.Server
}

// NewServer creates a new webhook server instance.
func NewServer(
	configManager domain.ConfigManager,
	logger *logrus.Logger,
	validator *service.Validator,
	predictor *service.Predictor,
	reporter *service.Reporter,
	profiles domain.ProfileStore,
	historyStore history.Store,
) *Server {
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(middleware.AuditLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())

	server := &Server{
		configManager: configManager,
		logger:        logger,
		validator:     validator,
		predictor:     predictor,
		reporter:      reporter,
		profiles:      profiles,
		history:       historyStore,
		router:        router,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Start starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetConfig().Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	// Webhook endpoints driven by the conversational runtime
	webhook := s.router.Group("/webhook")
	{
		webhook.POST("/validate", s.handleValidate)
		webhook.POST("/action", s.handleAction)
	}

	// Operator endpoints
	s.router.GET("/sessions/:id/profile", s.handleGetProfile)
	s.router.GET("/history", s.handleHistory)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"version":   "1.0.0",
	})
}
