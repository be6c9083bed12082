// Package extractor turns a Twitter/X post URL into normalized video
// metadata. Three interchangeable backends exist: a yt-dlp subprocess,
// Twitter's syndication API, and a third-party mirror site scrape.
package extractor

import (
	"context"
	"sort"

	"github.com/fxtcher/fxtcher/internal/domain"
)

// Extractor resolves a source URL to video metadata.
type Extractor interface {
	// Extract returns the title, optional thumbnail URL, and downloadable
	// formats for the given source URL. Each call is independent and
	// stateless; failures are never partial.
	Extract(ctx context.Context, url string) (*domain.VideoInfo, error)
}

// candidate is a raw variant descriptor as reported by a backend,
// before normalization.
type candidate struct {
	FormatID string
	URL      string
	Ext      string
	Height   int
	Bitrate  int
	HasVideo bool
}

// normalizeFormats converts raw backend descriptors into the canonical
// format list:
//   - descriptors without video content or a usable URL are excluded
//   - quality is the vertical resolution, or unknown when absent
//   - at most one format per distinct quality; candidates are ranked
//     highest-bitrate first so the survivor is deterministic
//   - unknown-quality descriptors are dropped whenever any descriptor
//     carries a known height, otherwise a single unknown entry survives
//   - the result is sorted by quality descending, unknown last
//
// Returns nil when nothing usable remains.
func normalizeFormats(cands []candidate) []domain.VideoFormat {
	ranked := make([]candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Bitrate > ranked[j].Bitrate
	})

	seen := make(map[domain.Quality]bool)
	var formats []domain.VideoFormat
	anyKnown := false

	for _, c := range ranked {
		if !c.HasVideo || c.URL == "" {
			continue
		}
		quality := domain.QualityUnknown
		if c.Height > 0 {
			quality = domain.Quality(c.Height)
			anyKnown = true
		}
		if seen[quality] {
			continue
		}
		seen[quality] = true
		formats = append(formats, domain.VideoFormat{
			FormatID: c.FormatID,
			Quality:  quality,
			URL:      c.URL,
			Ext:      c.Ext,
		})
	}

	if anyKnown {
		kept := formats[:0]
		for _, f := range formats {
			if f.Quality.Known() {
				kept = append(kept, f)
			}
		}
		formats = kept
	}

	sort.SliceStable(formats, func(i, j int) bool {
		return formats[i].Quality > formats[j].Quality
	})

	if len(formats) == 0 {
		return nil
	}
	return formats
}

// buildInfo assembles a VideoInfo from backend output, applying the
// title default and rejecting empty format lists.
func buildInfo(title, thumbnail string, cands []candidate) (*domain.VideoInfo, error) {
	formats := normalizeFormats(cands)
	if formats == nil {
		return nil, domain.ErrNoVideoFormats
	}
	if title == "" {
		title = domain.DefaultTitle
	}
	return &domain.VideoInfo{
		Title:     title,
		Thumbnail: thumbnail,
		Formats:   formats,
	}, nil
}
