// Package service composes validation, extraction, and thumbnail
// generation behind the request handlers.
package service

import (
	"context"
	"log/slog"

	"github.com/fxtcher/fxtcher/internal/domain"
	"github.com/fxtcher/fxtcher/internal/extractor"
)

// ThumbnailGenerator derives a still image from a remote video and
// returns the generated filename.
type ThumbnailGenerator interface {
	Generate(ctx context.Context, directURL string) (string, error)
}

// VideoService turns source URLs into video metadata.
type VideoService struct {
	extractor extractor.Extractor
	thumbs    ThumbnailGenerator // nil when the feature is disabled
	logger    *slog.Logger
}

// NewVideoService creates the service. thumbs may be nil.
func NewVideoService(ext extractor.Extractor, thumbs ThumbnailGenerator, logger *slog.Logger) *VideoService {
	return &VideoService{
		extractor: ext,
		thumbs:    thumbs,
		logger:    logger,
	}
}

// GetVideoInfo validates the source URL and extracts its video
// metadata. When the backend supplies no thumbnail and generation is
// enabled, a frame-capture thumbnail is derived from the best variant;
// generation failure is not fatal to the lookup.
func (s *VideoService) GetVideoInfo(ctx context.Context, rawURL string) (*domain.VideoInfo, error) {
	if !domain.ValidSourceURL(rawURL) {
		return nil, domain.ErrInvalidSourceURL
	}

	info, err := s.extractor.Extract(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if info.Thumbnail == "" && s.thumbs != nil && len(info.Formats) > 0 {
		filename, err := s.thumbs.Generate(ctx, info.Formats[0].URL)
		if err != nil {
			s.logger.Warn("thumbnail generation failed", "url", rawURL, "error", err)
		} else {
			info.Thumbnail = "/thumbnails/" + filename
		}
	}

	return info, nil
}

// ResolveFormat re-extracts the source URL and selects the variant
// matching the requested format, by format ID or by quality label.
func (s *VideoService) ResolveFormat(ctx context.Context, rawURL, format string) (*domain.VideoFormat, error) {
	if !domain.ValidSourceURL(rawURL) {
		return nil, domain.ErrInvalidSourceURL
	}

	info, err := s.extractor.Extract(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	for i := range info.Formats {
		f := &info.Formats[i]
		if f.FormatID == format || f.Quality.String() == format {
			return f, nil
		}
	}
	return nil, domain.ErrFormatNotFound
}
