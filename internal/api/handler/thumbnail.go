package handler

import (
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fxtcher/fxtcher/internal/proxy"
)

// ThumbnailHandler proxies remote thumbnails and serves generated ones.
type ThumbnailHandler struct {
	streamer *proxy.Streamer
	dir      string // thumbnail directory; empty when generation is disabled
	logger   *slog.Logger
}

// NewThumbnailHandler creates a new thumbnail handler. dir may be empty.
func NewThumbnailHandler(streamer *proxy.Streamer, dir string, logger *slog.Logger) *ThumbnailHandler {
	return &ThumbnailHandler{
		streamer: streamer,
		dir:      dir,
		logger:   logger,
	}
}

// Proxy handles GET /api/thumbnail
func (h *ThumbnailHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "Missing thumbnail URL")
		return
	}

	up, err := h.streamer.Open(r.Context(), rawURL)
	if err != nil {
		h.logger.Error("thumbnail proxy failed", "url", rawURL, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.streamer.WriteImage(w, up); err != nil {
		h.logger.Warn("thumbnail stream aborted", "url", rawURL, "error", err)
	}
}

// Serve handles GET /thumbnails/{filename}
func (h *ThumbnailHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		writeError(w, http.StatusBadRequest, "missing filename")
		return
	}

	// Security: validate filename to prevent path traversal
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}

	if h.dir == "" {
		writeError(w, http.StatusNotFound, "thumbnail not found")
		return
	}

	file, err := os.Open(filepath.Join(h.dir, filename))
	if err != nil {
		writeError(w, http.StatusNotFound, "thumbnail not found")
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stat thumbnail")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)

	// http.ServeContent handles Range requests automatically
	http.ServeContent(w, r, filename, stat.ModTime(), file)
}
