// Package thumbnail derives a still image from a video by downloading
// it to a staging file and capturing a frame with ffmpeg.
package thumbnail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/fxtcher/fxtcher/internal/config"
)

// Generator captures thumbnail frames from remote videos.
type Generator struct {
	dir        string
	ffmpegPath string
	client     *http.Client
	timeout    time.Duration
	logger     *slog.Logger

	// run is swappable for tests.
	run func(ctx context.Context, name string, args ...string) error
}

// NewGenerator creates a thumbnail generator. It fails when ffmpeg is
// not found or the thumbnail directory cannot be created.
func NewGenerator(cfg config.ThumbnailConfig, logger *slog.Logger) (*Generator, error) {
	ffmpegPath, err := exec.LookPath(cfg.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	if err := os.MkdirAll(cfg.Path, 0755); err != nil {
		return nil, fmt.Errorf("create thumbnail directory: %w", err)
	}
	return &Generator{
		dir:        cfg.Path,
		ffmpegPath: ffmpegPath,
		client:     &http.Client{Timeout: cfg.Timeout},
		timeout:    cfg.Timeout,
		logger:     logger,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}, nil
}

// Generate downloads the video at directURL to a staging file, captures
// its first frame as a JPEG in the thumbnail directory, and returns the
// generated filename. The staging file is removed on every exit path.
func (g *Generator) Generate(ctx context.Context, directURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	staging := filepath.Join(os.TempDir(), "fxtcher-"+uuid.NewString()+".mp4")
	if err := g.stage(ctx, directURL, staging); err != nil {
		return "", err
	}
	defer os.Remove(staging)

	filename := uuid.NewString() + ".jpg"
	outputPath := filepath.Join(g.dir, filename)

	err := g.run(ctx, g.ffmpegPath,
		"-i", staging,
		"-ss", "0",
		"-vframes", "1",
		"-q:v", "5",
		"-y",
		outputPath,
	)
	if err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("extract frame: %w", err)
	}

	return filename, nil
}

// stage downloads the video into path, removing the partial file on failure.
func (g *Generator) stage(ctx context.Context, directURL, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, directURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch video: status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close staging file: %w", err)
	}
	return nil
}
