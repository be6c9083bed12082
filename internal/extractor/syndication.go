package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/fxtcher/fxtcher/internal/config"
	"github.com/fxtcher/fxtcher/internal/domain"
)

const syndicationBaseURL = "https://cdn.syndication.twimg.com/tweet-result"

var (
	tweetIDRegex = regexp.MustCompile(`(?:twitter\.com|x\.com)/[^/]+/status/(\d+)`)
	// Variant URLs embed the resolution as a /WxH/ path segment.
	variantResRegex = regexp.MustCompile(`/(\d+)x(\d+)/`)
)

// Syndication extracts metadata from Twitter's public syndication API,
// which works for public tweets without authentication.
type Syndication struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewSyndication creates a syndication-API backed extractor.
func NewSyndication(cfg config.ExtractorConfig, logger *slog.Logger) *Syndication {
	return &Syndication{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   syndicationBaseURL,
		userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		timeout:   cfg.Timeout,
		logger:    logger,
	}
}

// syndicationResponse is the subset of the syndication API response we consume.
type syndicationResponse struct {
	Text string `json:"text"`
	User struct {
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
	} `json:"user"`
	MediaDetails []struct {
		Type          string `json:"type"`
		MediaURLHTTPS string `json:"media_url_https"`
		VideoInfo     struct {
			Variants []struct {
				Bitrate     int    `json:"bitrate"`
				ContentType string `json:"content_type"`
				URL         string `json:"url"`
			} `json:"variants"`
		} `json:"video_info"`
	} `json:"mediaDetails"`
}

// Extract fetches tweet metadata from the syndication API and maps its
// video variants into formats.
func (e *Syndication) Extract(ctx context.Context, url string) (*domain.VideoInfo, error) {
	m := tweetIDRegex.FindStringSubmatch(url)
	if m == nil {
		return nil, fmt.Errorf("%w: no tweet ID in URL", domain.ErrExtractionFailed)
	}
	tweetID := m[1]

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s?id=%s&token=0", e.baseURL, tweetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrExtractionFailed, err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("syndication request failed", "tweet_id", tweetID, "error", err)
		return nil, fmt.Errorf("%w: fetch tweet: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: syndication API status %d", domain.ErrExtractionFailed, resp.StatusCode)
	}

	var tweet syndicationResponse
	if err := json.NewDecoder(resp.Body).Decode(&tweet); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrExtractionFailed, err)
	}

	var cands []candidate
	thumbnail := ""
	for _, media := range tweet.MediaDetails {
		if media.Type != "video" && media.Type != "animated_gif" {
			continue
		}
		if thumbnail == "" {
			thumbnail = media.MediaURLHTTPS
		}
		for _, v := range media.VideoInfo.Variants {
			if v.ContentType != "video/mp4" {
				continue
			}
			cands = append(cands, candidate{
				FormatID: "http-" + strconv.Itoa(v.Bitrate/1000),
				URL:      v.URL,
				Ext:      "mp4",
				Height:   variantHeight(v.URL),
				Bitrate:  v.Bitrate,
				HasVideo: true,
			})
		}
	}

	return buildInfo(tweet.Text, thumbnail, cands)
}

// variantHeight parses the vertical resolution from a variant URL's
// /WxH/ path segment, returning 0 when absent.
func variantHeight(url string) int {
	m := variantResRegex.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return 0
	}
	return h
}
