// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AleutianAI/AlloyPredictor/pkg/logging"
	"github.com/AleutianAI/AlloyPredictor/services/predictor"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/config"
	"github.com/AleutianAI/AlloyPredictor/services/predictor/telemetry"
)

// runServe starts the prediction API server and blocks until SIGINT or
// SIGTERM.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg)

	log := logging.New(logging.Config{
		Level:   parseLogLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "predictor",
		JSON:    cfg.Logging.JSON,
	})

	// Set Gin mode
	if debugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	svc, err := buildService(cfg, log)
	if err != nil {
		return err
	}
	metrics := predictor.InitMetrics()
	svc = svc.WithMetrics(metrics)
	handlers := predictor.NewHandlers(svc, metrics,
		cfg.Optimize.RatePerSecond, cfg.Optimize.Burst)

	router := gin.New()
	router.Use(gin.Recovery())
	if debugMode {
		router.Use(gin.Logger())
	}

	ctx := context.Background()
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:    "alloypredictor",
			ServiceVersion: "1.0.0",
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       true,
		})
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer shutdownTelemetry(ctx) //nolint:errcheck
		router.Use(otelgin.Middleware("alloypredictor"))
		log.Info("Trace export enabled", "endpoint", cfg.Telemetry.Endpoint)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	predictor.RegisterRoutes(v1, handlers)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	printBanner(cfg, svc)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting AlloyPredictor server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("Shutting down AlloyPredictor server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// parseLogLevel maps a config string to a logging level. Unknown values
// fall back to info.
func parseLogLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// applyOverrides folds CLI flags into the loaded configuration.
func applyOverrides(cfg *config.Config) {
	if modelsDir != "" {
		cfg.Models.Dir = modelsDir
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if debugMode {
		cfg.Logging.Level = "debug"
	}
}

func printBanner(cfg *config.Config, svc *predictor.Service) {
	status := svc.ModelsStatus()
	modelLine := "formulas only (no model dumps found)"
	if n := len(status.LoadedModels); n > 0 {
		modelLine = fmt.Sprintf("%d models across %d property groups",
			n, len(status.LoadedCategories))
	}

	banner := `
╔═══════════════════════════════════════════════════════════════════╗
║                     ALLOYPREDICTOR SERVER                         ║
╠═══════════════════════════════════════════════════════════════════╣
║                                                                   ║
║  Alloy property prediction and composition search.                ║
║  Models: %-56s ║
║                                                                   ║
║  Quick Start:                                                     ║
║  ┌─────────────────────────────────────────────────────────────┐  ║
║  │ # Health check                                              │  ║
║  │ curl http://localhost:%-5d/v1/predict/health               │  ║
║  │                                                             │  ║
║  │ # Predict a plain carbon steel                              │  ║
║  │ curl -X POST http://localhost:%-5d/v1/predict \            │  ║
║  │   -H "Content-Type: application/json" \                     │  ║
║  │   -d '{"composition": {"Fe": 97.5, "C": 0.45, "Mn": 0.65}}' │  ║
║  │                                                             │  ║
║  │ # Search for a 600 MPa yield strength composition           │  ║
║  │ curl -X POST http://localhost:%-5d/v1/predict/optimize \   │  ║
║  │   -H "Content-Type: application/json" \                     │  ║
║  │   -d '{"target_properties": {"min_yield_strength": 600}}'   │  ║
║  └─────────────────────────────────────────────────────────────┘  ║
║                                                                   ║
║  Endpoints:                                                       ║
║  ├── Predict: /v1/predict, /full, /batch                         ║
║  ├── Groups: /fatigue, /impact, /corrosion, /heat-treatment,     ║
║  │           /wear                                               ║
║  ├── Search: /v1/predict/optimize                                ║
║  ├── Reference: /v1/reference/grades, /grades/:grade, /types     ║
║  └── Meta: /elements, /models-status, /health, /ready, /metrics  ║
║                                                                   ║
║  Press Ctrl+C to stop                                             ║
╚═══════════════════════════════════════════════════════════════════╝
`
	fmt.Printf(banner, modelLine, cfg.Server.Port, cfg.Server.Port, cfg.Server.Port)
}
