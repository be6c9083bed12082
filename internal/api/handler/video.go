package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxtcher/fxtcher/internal/domain"
	"github.com/fxtcher/fxtcher/internal/service"
)

// Error messages surfaced to callers.
const (
	msgURLRequired      = "URL is required"
	msgInvalidURL       = "Invalid Twitter/X URL. Please use a twitter.com or x.com URL"
	msgExtractionFailed = "Could not fetch video information. Please make sure the URL contains a video"
)

// VideoHandler handles video info lookups.
type VideoHandler struct {
	videoSvc *service.VideoService
	logger   *slog.Logger
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(videoSvc *service.VideoService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		videoSvc: videoSvc,
		logger:   logger,
	}
}

// InfoRequest is the JSON request body for info lookups.
type InfoRequest struct {
	URL string `json:"url"`
}

// Info handles POST /api/get-video-info
func (h *VideoHandler) Info(w http.ResponseWriter, r *http.Request) {
	var req InfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, msgURLRequired)
		return
	}

	info, err := h.videoSvc.GetVideoInfo(r.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSourceURL):
			writeError(w, http.StatusBadRequest, msgInvalidURL)
		case errors.Is(err, domain.ErrExtractionFailed), errors.Is(err, domain.ErrNoVideoFormats):
			h.logger.Info("extraction failed", "url", req.URL, "error", err)
			writeError(w, http.StatusBadRequest, msgExtractionFailed)
		default:
			h.logger.Error("video info failed", "url", req.URL, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get video info")
		}
		return
	}

	writeJSON(w, http.StatusOK, info)
}
