// Package main is the entry point for the runtimeplane daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"runtimeplane/internal/config"
	"runtimeplane/internal/controller"
	"runtimeplane/internal/controller/handlers"
	"runtimeplane/internal/logger"
	"runtimeplane/internal/observability"
	"runtimeplane/internal/runtime"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: environment and built-in defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogger := logger.New()
	ctx := context.Background()

	// Tracing
	shutdownTracer, err := observability.InitTracer(ctx, "runtimeplane-daemon", cfg.OTELEndpoint)
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	// Metrics
	metricsHandler, shutdownMetrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to init metrics: %v", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			log.Printf("Failed to shutdown metrics: %v", err)
		}
	}()

	ops, err := observability.NewLifecycleCounter()
	if err != nil {
		log.Printf("Failed to register lifecycle counter: %v", err)
	}

	// Container detection and lifecycle degrade gracefully when no Docker
	// daemon is reachable.
	var docker runtime.DockerAPI
	if cli, err := runtime.NewDockerClient(); err != nil {
		slogger.Warn("docker unavailable, container runtimes disabled", "error", err)
	} else {
		docker = cli
	}

	manager := runtime.NewManager(
		runtime.NewRegistry(),
		runtime.NewOutputBuffer(),
		docker,
		runtime.ManagerConfig{
			OllamaPort:   cfg.OllamaPort,
			LocalAIPort:  cfg.LocalAIPort,
			DockerBin:    cfg.DockerBin,
			ProbeTimeout: cfg.ProbeTimeout,
			RestartDelay: cfg.RestartDelay,
		},
		slogger,
	)

	h := handlers.New(manager, slogger, ops)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := controller.New(addr, h, cfg, metricsHandler)

	go func() {
		log.Printf("RuntimePlane daemon starting on %s", addr)
		if err := srv.Run(ctx); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down daemon...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited properly")
}
