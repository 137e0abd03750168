package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/joho/godotenv"

	"github.com/pharmassist/medications-api/config"
	"github.com/pharmassist/medications-api/data"
	"github.com/pharmassist/medications-api/handlers"
	"github.com/pharmassist/medications-api/health"
	"github.com/pharmassist/medications-api/logging"
	"github.com/pharmassist/medications-api/medicationsparser"
	"github.com/pharmassist/medications-api/qa"
	"github.com/pharmassist/medications-api/scheduler"
	"github.com/pharmassist/medications-api/server"
	"github.com/pharmassist/medications-api/validation"
)

func main() {
	// A missing .env file is fine; the environment may carry everything
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir, cfg.LogRetentionWeeks, logging.ParseLevel(cfg.LogLevel))

	dataStore := data.NewMedicationStore()
	dataStore.SetServerStartTime(time.Now())

	validator := validation.NewDataValidator()
	parser := medicationsparser.NewMedicationsParser(cfg.DatasetPath, cfg.DatasetURL)

	sched := scheduler.NewScheduler(dataStore, parser, validator, cfg.ReloadAt)
	if err := sched.Start(); err != nil {
		// Serve unhealthy rather than crash; the daily reload may recover
		logging.Error("Initial dataset load failed, serving unhealthy", "error", err)
	}
	defer sched.Stop()

	engine := qa.NewEngine(dataStore)
	checker := health.NewHealthChecker(dataStore)
	handler := handlers.NewHandler(dataStore, engine, checker, validator)

	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
}
