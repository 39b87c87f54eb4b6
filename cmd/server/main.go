package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/GabRamosBr/jogo-servidor/internal/app"
	"github.com/GabRamosBr/jogo-servidor/internal/config"
	"github.com/GabRamosBr/jogo-servidor/internal/monitor"
	"github.com/GabRamosBr/jogo-servidor/internal/oracle"
	httpTransport "github.com/GabRamosBr/jogo-servidor/internal/transport/http"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment")
	}

	cfg := config.Load()

	// Set up logger
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	logger.Info("starting word chain game server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"oracle", cfg.Oracle.URL,
	)

	metrics := monitor.New("jogo")
	scorer := oracle.NewClient(cfg.Oracle.URL, cfg.Oracle.Timeout, logger)

	// Create the shared game session
	session := app.NewSession(cfg.GameSettings(), scorer, clockwork.NewRealClock(), metrics, logger)
	defer session.Close()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, session, metrics, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
