// Package proxy relays media bytes from an upstream origin to the
// client without buffering the whole payload in memory.
package proxy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fxtcher/fxtcher/internal/config"
)

// copyBufferSize bounds per-request relay memory.
const copyBufferSize = 32 * 1024

// attachmentFilename forces "save as" behavior regardless of the
// origin URL's path.
const attachmentFilename = "twitter_video.mp4"

// UpstreamError reports a non-success status from the origin.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// Upstream is an open connection to the origin, ready to relay.
// The caller owns Body and must close it.
type Upstream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// Streamer opens streaming upstream requests and relays their bodies.
type Streamer struct {
	// No overall client timeout: downloads can legitimately take a long
	// time. Only the response-header phase is bounded; cancellation of
	// the relay comes from the request context.
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// New creates a streaming proxy.
func New(cfg config.ProxyConfig, logger *slog.Logger) *Streamer {
	return &Streamer{
		client: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: cfg.HeaderTimeout,
			},
		},
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Open connects to directURL and returns the upstream once headers have
// arrived. A non-2xx status yields an *UpstreamError with no body
// forwarded. The context cancels both the connect and relay phases, so
// a client disconnect aborts the upstream fetch.
func (s *Streamer) Open(ctx context.Context, directURL string) (*Upstream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, directURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Referer", "https://x.com/")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connect upstream: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	return &Upstream{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}, nil
}

// WriteVideo relays a video upstream to the client with an attachment
// disposition. Headers are committed before the first byte; relay
// errors after that abort the connection with no recovery.
func (s *Streamer) WriteVideo(w http.ResponseWriter, up *Upstream) error {
	w.Header().Set("Content-Disposition", "attachment; filename="+attachmentFilename)
	return s.relay(w, up, "video/mp4")
}

// WriteImage relays an image upstream (thumbnail) inline.
func (s *Streamer) WriteImage(w http.ResponseWriter, up *Upstream) error {
	return s.relay(w, up, "image/jpeg")
}

func (s *Streamer) relay(w http.ResponseWriter, up *Upstream, fallbackType string) error {
	defer up.Body.Close()

	contentType := up.ContentType
	if contentType == "" {
		contentType = fallbackType
	}
	w.Header().Set("Content-Type", contentType)

	// Propagate length only when upstream supplied one; otherwise the
	// response goes out chunked.
	if up.ContentLength >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(up.ContentLength, 10))
	}

	w.WriteHeader(http.StatusOK)

	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(w, up.Body, buf); err != nil {
		return fmt.Errorf("relay body: %w", err)
	}
	return nil
}
