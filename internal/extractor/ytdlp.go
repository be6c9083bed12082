package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/fxtcher/fxtcher/internal/config"
	"github.com/fxtcher/fxtcher/internal/domain"
)

// YtDlp extracts metadata by running the yt-dlp command-line tool with
// JSON output. One subprocess per call, no retries.
type YtDlp struct {
	path    string
	timeout time.Duration
	logger  *slog.Logger

	// run is swappable for tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewYtDlp creates a yt-dlp backed extractor.
func NewYtDlp(cfg config.ExtractorConfig, logger *slog.Logger) *YtDlp {
	return &YtDlp{
		path:    cfg.YtDlpPath,
		timeout: cfg.Timeout,
		logger:  logger,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// ytdlpOutput is the subset of `yt-dlp -j` output we consume.
type ytdlpOutput struct {
	Title     string        `json:"title"`
	Thumbnail string        `json:"thumbnail"`
	Formats   []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	FormatID string  `json:"format_id"`
	URL      string  `json:"url"`
	Ext      string  `json:"ext"`
	Height   int     `json:"height"`
	VCodec   string  `json:"vcodec"`
	TBR      float64 `json:"tbr"`
}

// Extract runs `yt-dlp -j <url>` under an explicit timeout and
// normalizes its format list.
func (e *YtDlp) Extract(ctx context.Context, url string) (*domain.VideoInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	out, err := e.run(ctx, e.path, "-j", "--no-playlist", url)
	if err != nil {
		e.logger.Warn("yt-dlp invocation failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: yt-dlp: %v", domain.ErrExtractionFailed, err)
	}

	var info ytdlpOutput
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("%w: parse yt-dlp output: %v", domain.ErrExtractionFailed, err)
	}

	cands := make([]candidate, 0, len(info.Formats))
	for _, f := range info.Formats {
		cands = append(cands, candidate{
			FormatID: f.FormatID,
			URL:      f.URL,
			Ext:      f.Ext,
			Height:   f.Height,
			Bitrate:  int(f.TBR * 1000),
			HasVideo: f.VCodec != "none",
		})
	}

	return buildInfo(info.Title, info.Thumbnail, cands)
}
