package domain

import (
	"encoding/json"
	"testing"
)

func TestQuality_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(VideoFormat{FormatID: "http-2176", Quality: 720, URL: "https://video.twimg.com/v.mp4", Ext: "mp4"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"format_id":"http-2176","quality":720,"url":"https://video.twimg.com/v.mp4","ext":"mp4"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	data, err = json.Marshal(Quality(0))
	if err != nil {
		t.Fatalf("marshal unknown: %v", err)
	}
	if string(data) != `"unknown"` {
		t.Errorf("unknown quality = %s, want %q", data, "unknown")
	}
}

func TestQuality_UnmarshalJSON(t *testing.T) {
	var q Quality
	if err := json.Unmarshal([]byte(`1080`), &q); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if q != 1080 {
		t.Errorf("quality = %d, want 1080", q)
	}

	if err := json.Unmarshal([]byte(`"unknown"`), &q); err != nil {
		t.Fatalf("unmarshal unknown: %v", err)
	}
	if q.Known() {
		t.Errorf("quality should be unknown, got %d", q)
	}

	if err := json.Unmarshal([]byte(`"garbage"`), &q); err == nil {
		t.Error("unmarshal should fail for a non-numeric label")
	}
}

func TestQuality_String(t *testing.T) {
	if got := Quality(480).String(); got != "480" {
		t.Errorf("String() = %q, want %q", got, "480")
	}
	if got := QualityUnknown.String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}
