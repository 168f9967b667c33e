package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "net/http/pprof"

	"github.com/metricare/patient-api/config"
	"github.com/metricare/patient-api/contraindications"
	"github.com/metricare/patient-api/data"
	"github.com/metricare/patient-api/gemini"
	"github.com/metricare/patient-api/logging"
	"github.com/metricare/patient-api/openfda"
	"github.com/metricare/patient-api/patients"
	"github.com/metricare/patient-api/scheduler"
	"github.com/metricare/patient-api/server"
	"github.com/metricare/patient-api/validation"
)

func init() {
	// Read the env variables from the working directory, falling back to the
	// executable directory for deployments started from elsewhere
	if err := godotenv.Load(); err != nil {
		ex, err := os.Executable()
		if err != nil {
			logging.Error("Failed to get executable path", "error", err)
			os.Exit(1)
		}

		if err := os.Chdir(filepath.Dir(ex)); err != nil {
			logging.Error("Failed to change directory", "error", err)
			os.Exit(1)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks, cfg.LogLevel)

	lookupTimeout := time.Duration(cfg.LookupTimeoutSeconds) * time.Second
	requestTimeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.GeminiAPIKey == "" {
		logging.Warn("GEMINI_API_KEY not set, generative features will return fallback text")
	}

	// Wire up dependencies
	directory := patients.NewDirectory()
	statusContainer := data.NewStatusContainer()
	statusContainer.SetServerStartTime(time.Now())

	fdaClient := openfda.NewClient(cfg.FDAAPIKey, lookupTimeout)
	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, requestTimeout, cfg.GenerativeConcurrency)
	pipeline := contraindications.NewPipeline(fdaClient, geminiClient, lookupTimeout)

	sched := scheduler.NewScheduler(fdaClient, statusContainer)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg, server.Dependencies{
		Directory: directory,
		Labels:    fdaClient,
		Generator: geminiClient,
		Pipeline:  pipeline,
		Status:    statusContainer,
		Validator: validation.NewInputValidator(),
	})

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	sched.Stop()

	// Attempt graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
		os.Exit(1)
	}
}
