package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fxtcher/fxtcher/internal/api"
	"github.com/fxtcher/fxtcher/internal/api/handler"
	"github.com/fxtcher/fxtcher/internal/config"
	"github.com/fxtcher/fxtcher/internal/extractor"
	"github.com/fxtcher/fxtcher/internal/proxy"
	"github.com/fxtcher/fxtcher/internal/service"
	"github.com/fxtcher/fxtcher/internal/thumbnail"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("fxtcher %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting fxtcher",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Select the extraction backend
	var ext extractor.Extractor
	switch cfg.Extractor.Backend {
	case config.BackendSyndication:
		ext = extractor.NewSyndication(cfg.Extractor, logger)
	case config.BackendScrape:
		ext = extractor.NewScrape(cfg.Extractor, logger)
	default:
		ext = extractor.NewYtDlp(cfg.Extractor, logger)
	}
	logger.Info("extraction backend selected", "backend", cfg.Extractor.Backend)

	streamer := proxy.New(cfg.Proxy, logger)

	// Optional thumbnail generation
	var thumbs *thumbnail.Generator
	if cfg.Thumbnails.Enabled {
		thumbs, err = thumbnail.NewGenerator(cfg.Thumbnails, logger)
		if err != nil {
			logger.Warn("thumbnail generation disabled", "error", err)
			thumbs = nil
		}
	}

	var thumbGen service.ThumbnailGenerator
	thumbDir := ""
	if thumbs != nil {
		thumbGen = thumbs
		thumbDir = cfg.Thumbnails.Path
	}
	videoSvc := service.NewVideoService(ext, thumbGen, logger)

	// Initialize handlers
	videoHandler := handler.NewVideoHandler(videoSvc, logger)
	downloadHandler := handler.NewDownloadHandler(videoSvc, streamer, logger)
	thumbnailHandler := handler.NewThumbnailHandler(streamer, thumbDir, logger)
	healthHandler := handler.NewHealthHandler()

	// Setup router
	router := api.NewRouter(videoHandler, downloadHandler, thumbnailHandler, healthHandler, cfg.Server.AllowedOrigins)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
