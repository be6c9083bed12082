package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fxtcher/fxtcher/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubExtractor struct {
	info *domain.VideoInfo
	err  error
}

func (s *stubExtractor) Extract(ctx context.Context, url string) (*domain.VideoInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	info := *s.info
	return &info, nil
}

type stubThumbnailer struct {
	filename string
	err      error
	calls    int
}

func (s *stubThumbnailer) Generate(ctx context.Context, directURL string) (string, error) {
	s.calls++
	return s.filename, s.err
}

func testInfo() *domain.VideoInfo {
	return &domain.VideoInfo{
		Title: "Some tweet",
		Formats: []domain.VideoFormat{
			{FormatID: "http-2176", Quality: 1280, URL: "https://video.twimg.com/720x1280/v.mp4", Ext: "mp4"},
			{FormatID: "http-832", Quality: 960, URL: "https://video.twimg.com/540x960/v.mp4", Ext: "mp4"},
		},
	}
}

const tweetURL = "https://x.com/user/status/123"

func TestGetVideoInfo_InvalidURL(t *testing.T) {
	svc := NewVideoService(&stubExtractor{info: testInfo()}, nil, testLogger())

	_, err := svc.GetVideoInfo(context.Background(), "https://youtube.com/watch?v=abc")
	if !errors.Is(err, domain.ErrInvalidSourceURL) {
		t.Fatalf("expected ErrInvalidSourceURL, got %v", err)
	}
}

func TestGetVideoInfo_ExtractorError(t *testing.T) {
	svc := NewVideoService(&stubExtractor{err: domain.ErrExtractionFailed}, nil, testLogger())

	_, err := svc.GetVideoInfo(context.Background(), tweetURL)
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestGetVideoInfo_Success(t *testing.T) {
	svc := NewVideoService(&stubExtractor{info: testInfo()}, nil, testLogger())

	info, err := svc.GetVideoInfo(context.Background(), tweetURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Title != "Some tweet" {
		t.Errorf("Title = %q", info.Title)
	}
	if len(info.Formats) != 2 {
		t.Errorf("expected 2 formats, got %d", len(info.Formats))
	}
}

func TestGetVideoInfo_GeneratesThumbnail(t *testing.T) {
	thumbs := &stubThumbnailer{filename: "abc.jpg"}
	svc := NewVideoService(&stubExtractor{info: testInfo()}, thumbs, testLogger())

	info, err := svc.GetVideoInfo(context.Background(), tweetURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Thumbnail != "/thumbnails/abc.jpg" {
		t.Errorf("Thumbnail = %q, want %q", info.Thumbnail, "/thumbnails/abc.jpg")
	}
	if thumbs.calls != 1 {
		t.Errorf("expected one generation call, got %d", thumbs.calls)
	}
}

func TestGetVideoInfo_KeepsExtractorThumbnail(t *testing.T) {
	info := testInfo()
	info.Thumbnail = "https://pbs.twimg.com/thumb.jpg"
	thumbs := &stubThumbnailer{filename: "abc.jpg"}
	svc := NewVideoService(&stubExtractor{info: info}, thumbs, testLogger())

	got, err := svc.GetVideoInfo(context.Background(), tweetURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Thumbnail != "https://pbs.twimg.com/thumb.jpg" {
		t.Errorf("Thumbnail = %q, extractor value should win", got.Thumbnail)
	}
	if thumbs.calls != 0 {
		t.Errorf("generator should not run when the extractor supplied a thumbnail, got %d calls", thumbs.calls)
	}
}

func TestGetVideoInfo_ThumbnailFailureNotFatal(t *testing.T) {
	thumbs := &stubThumbnailer{err: errors.New("ffmpeg exploded")}
	svc := NewVideoService(&stubExtractor{info: testInfo()}, thumbs, testLogger())

	info, err := svc.GetVideoInfo(context.Background(), tweetURL)
	if err != nil {
		t.Fatalf("generation failure must not fail the lookup: %v", err)
	}
	if info.Thumbnail != "" {
		t.Errorf("Thumbnail = %q, want empty", info.Thumbnail)
	}
}

func TestResolveFormat_ByID(t *testing.T) {
	svc := NewVideoService(&stubExtractor{info: testInfo()}, nil, testLogger())

	f, err := svc.ResolveFormat(context.Background(), tweetURL, "http-832")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Quality != 960 {
		t.Errorf("Quality = %v, want 960", f.Quality)
	}
}

func TestResolveFormat_ByQualityLabel(t *testing.T) {
	svc := NewVideoService(&stubExtractor{info: testInfo()}, nil, testLogger())

	f, err := svc.ResolveFormat(context.Background(), tweetURL, "1280")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.FormatID != "http-2176" {
		t.Errorf("FormatID = %q, want http-2176", f.FormatID)
	}
}

func TestResolveFormat_NotFound(t *testing.T) {
	svc := NewVideoService(&stubExtractor{info: testInfo()}, nil, testLogger())

	_, err := svc.ResolveFormat(context.Background(), tweetURL, "http-9999")
	if !errors.Is(err, domain.ErrFormatNotFound) {
		t.Fatalf("expected ErrFormatNotFound, got %v", err)
	}
}

func TestResolveFormat_InvalidURL(t *testing.T) {
	svc := NewVideoService(&stubExtractor{info: testInfo()}, nil, testLogger())

	_, err := svc.ResolveFormat(context.Background(), "https://tiktok.com/@u/video/1", "http-832")
	if !errors.Is(err, domain.ErrInvalidSourceURL) {
		t.Fatalf("expected ErrInvalidSourceURL, got %v", err)
	}
}
