package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fxtcher/fxtcher/internal/config"
	"github.com/fxtcher/fxtcher/internal/domain"
)

const scrapeBaseURL = "https://twitsave.com/info"

var resolutionLabelRegex = regexp.MustCompile(`(\d+)x(\d+)`)

// Scrape extracts metadata by screen-scraping a third-party mirror
// site. DOM parsing via goquery rather than regexes over raw HTML.
type Scrape struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewScrape creates a mirror-site scraping extractor.
func NewScrape(cfg config.ExtractorConfig, logger *slog.Logger) *Scrape {
	return &Scrape{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   scrapeBaseURL,
		userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		timeout:   cfg.Timeout,
		logger:    logger,
	}
}

// Extract fetches the mirror page for the tweet and parses download
// links out of its DOM.
func (e *Scrape) Extract(ctx context.Context, sourceURL string) (*domain.VideoInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	endpoint := e.baseURL + "?url=" + url.QueryEscape(sourceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrExtractionFailed, err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("mirror request failed", "url", sourceURL, "error", err)
		return nil, fmt.Errorf("%w: fetch mirror page: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: mirror site status %d", domain.ErrExtractionFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse mirror page: %v", domain.ErrExtractionFailed, err)
	}

	title := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	thumbnail := strings.TrimSpace(doc.Find(`meta[property="og:image"]`).AttrOr("content", ""))

	var cands []candidate
	doc.Find(".origin-top-right a[href]").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || !strings.Contains(href, ".mp4") {
			return
		}
		height := labelHeight(s.Text())
		cands = append(cands, candidate{
			FormatID: "mirror-" + strconv.Itoa(i),
			URL:      href,
			Ext:      "mp4",
			Height:   height,
			// The page lists variants best-first; preserve that ranking.
			Bitrate:  -i,
			HasVideo: true,
		})
	})

	return buildInfo(title, thumbnail, cands)
}

// labelHeight parses the vertical resolution out of a download link's
// "WxH" label, returning 0 when the label carries none.
func labelHeight(label string) int {
	m := resolutionLabelRegex.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return 0
	}
	return h
}
