package domain

import (
	"encoding/json"
	"strconv"
)

// DefaultTitle is used when the extraction backend supplies no title.
const DefaultTitle = "Twitter Video"

// QualityUnknown marks a format whose vertical resolution could not be
// determined.
const QualityUnknown Quality = 0

// Quality is the vertical resolution of a video format in pixels.
// Zero means unknown; it serializes as the string "unknown".
type Quality int

// Known reports whether the quality carries a numeric resolution.
func (q Quality) Known() bool {
	return q > 0
}

func (q Quality) String() string {
	if !q.Known() {
		return "unknown"
	}
	return strconv.Itoa(int(q))
}

// MarshalJSON emits the resolution as a number, or "unknown".
func (q Quality) MarshalJSON() ([]byte, error) {
	if !q.Known() {
		return []byte(`"unknown"`), nil
	}
	return []byte(strconv.Itoa(int(q))), nil
}

// UnmarshalJSON accepts either a number or the string "unknown".
func (q *Quality) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*q = Quality(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "unknown" {
		*q = QualityUnknown
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*q = Quality(n)
	return nil
}

// VideoFormat is one downloadable variant of a video.
type VideoFormat struct {
	FormatID string  `json:"format_id"`
	Quality  Quality `json:"quality"`
	URL      string  `json:"url"`
	Ext      string  `json:"ext"`
}

// VideoInfo is the normalized result of extracting a source URL.
// Produced fresh per request, never cached.
type VideoInfo struct {
	Title     string        `json:"title"`
	Thumbnail string        `json:"thumbnail,omitempty"`
	Formats   []VideoFormat `json:"formats"`
}
