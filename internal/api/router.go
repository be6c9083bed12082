package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fxtcher/fxtcher/internal/api/handler"
	mw "github.com/fxtcher/fxtcher/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	videoHandler *handler.VideoHandler,
	downloadHandler *handler.DownloadHandler,
	thumbnailHandler *handler.ThumbnailHandler,
	healthHandler *handler.HealthHandler,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(mw.CORS(allowedOrigins))

	r.Get("/api/health", healthHandler.Health)

	r.Post("/api/get-video-info", videoHandler.Info)
	r.Get("/api/download", downloadHandler.Download)

	r.Get("/api/thumbnail", thumbnailHandler.Proxy)
	r.Get("/thumbnails/{filename}", thumbnailHandler.Serve)

	return r
}
