package handler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fxtcher/fxtcher/internal/config"
	"github.com/fxtcher/fxtcher/internal/domain"
	"github.com/fxtcher/fxtcher/internal/proxy"
	"github.com/fxtcher/fxtcher/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockExtractor is a test implementation of extractor.Extractor.
type mockExtractor struct {
	info *domain.VideoInfo
	err  error
}

func (m *mockExtractor) Extract(ctx context.Context, url string) (*domain.VideoInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	// Return a copy so handlers mutating the result don't leak between tests.
	info := *m.info
	return &info, nil
}

// mockThumbnailer is a test implementation of service.ThumbnailGenerator.
type mockThumbnailer struct {
	filename string
	err      error
}

func (m *mockThumbnailer) Generate(ctx context.Context, directURL string) (string, error) {
	return m.filename, m.err
}

func newTestService(ext *mockExtractor, thumbs service.ThumbnailGenerator) *service.VideoService {
	return service.NewVideoService(ext, thumbs, testLogger())
}

func newTestStreamer() *proxy.Streamer {
	return proxy.New(config.ProxyConfig{
		UserAgent:     "test-agent",
		HeaderTimeout: 5 * time.Second,
	}, testLogger())
}

func sampleInfo() *domain.VideoInfo {
	return &domain.VideoInfo{
		Title:     "A cat video",
		Thumbnail: "https://pbs.twimg.com/thumb.jpg",
		Formats: []domain.VideoFormat{
			{FormatID: "http-2176", Quality: 1280, URL: "https://video.twimg.com/720x1280/v.mp4", Ext: "mp4"},
			{FormatID: "http-832", Quality: 960, URL: "https://video.twimg.com/540x960/v.mp4", Ext: "mp4"},
		},
	}
}
