package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxtcher/fxtcher/internal/domain"
	"github.com/fxtcher/fxtcher/internal/proxy"
	"github.com/fxtcher/fxtcher/internal/service"
)

// DownloadHandler proxies video downloads to the client.
type DownloadHandler struct {
	videoSvc *service.VideoService
	streamer *proxy.Streamer
	logger   *slog.Logger
}

// NewDownloadHandler creates a new download handler.
func NewDownloadHandler(videoSvc *service.VideoService, streamer *proxy.Streamer, logger *slog.Logger) *DownloadHandler {
	return &DownloadHandler{
		videoSvc: videoSvc,
		streamer: streamer,
		logger:   logger,
	}
}

// Download handles GET /api/download
//
// Without a format parameter, url is a direct media URL and is proxied
// as-is. With one, url is a source tweet URL: the extractor is
// re-invoked and the matching variant's direct URL is proxied.
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "Missing video URL")
		return
	}

	target := rawURL
	if format := r.URL.Query().Get("format"); format != "" {
		f, err := h.videoSvc.ResolveFormat(r.Context(), rawURL, format)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidSourceURL):
				writeError(w, http.StatusBadRequest, msgInvalidURL)
			case errors.Is(err, domain.ErrFormatNotFound):
				writeError(w, http.StatusBadRequest, "Requested format not available")
			case errors.Is(err, domain.ErrExtractionFailed), errors.Is(err, domain.ErrNoVideoFormats):
				writeError(w, http.StatusBadRequest, msgExtractionFailed)
			default:
				h.logger.Error("format resolution failed", "url", rawURL, "error", err)
				writeError(w, http.StatusInternalServerError, "failed to resolve format")
			}
			return
		}
		target = f.URL
	}

	up, err := h.streamer.Open(r.Context(), target)
	if err != nil {
		h.logger.Error("proxy open failed", "url", target, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Headers are committed once relaying starts; errors past that point
	// can only abort the connection.
	if err := h.streamer.WriteVideo(w, up); err != nil {
		h.logger.Warn("stream aborted", "url", target, "error", err)
	}
}
