package media

import (
	"errors"
	"math"
	"testing"

	"chaptersaw/internal/errs"
)

func TestChapterDuration(t *testing.T) {
	chapter := Chapter{Title: "Episode 1", StartTime: 100.5, EndTime: 250.75}
	if math.Abs(chapter.Duration()-150.25) > 1e-9 {
		t.Fatalf("unexpected duration: %v", chapter.Duration())
	}
}

func TestChapterString(t *testing.T) {
	chapter := Chapter{Title: "Opening", StartTime: 0, EndTime: 90}
	want := "Opening (0.00s - 90.00s)"
	if chapter.String() != want {
		t.Fatalf("unexpected string: %q", chapter.String())
	}
}

func TestParseTrackType(t *testing.T) {
	cases := map[string]TrackType{
		"video":    TrackVideo,
		"AUDIO":    TrackAudio,
		"subtitle": TrackSubtitle,
		"data":     TrackOther,
		"":         TrackOther,
	}
	for input, want := range cases {
		if got := ParseTrackType(input); got != want {
			t.Fatalf("ParseTrackType(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestResultTransitions(t *testing.T) {
	result := NewResult("/videos/show.mkv")
	if !result.Success {
		t.Fatal("new result should start successful")
	}

	result.MarkFound(5)
	result.MarkMatched(2)
	result.RecordExtracted(Chapter{Title: "Episode 1", StartTime: 90, EndTime: 1200})
	if result.ChaptersFound != 5 || result.ChaptersMatched != 2 {
		t.Fatalf("unexpected counts: %d/%d", result.ChaptersMatched, result.ChaptersFound)
	}
	if len(result.ChaptersExtracted) != 1 {
		t.Fatalf("expected 1 extracted chapter, got %d", len(result.ChaptersExtracted))
	}

	result.MarkFailed("cut failed")
	result.MarkFailed("second failure ignored")
	if result.Success {
		t.Fatal("result should be failed")
	}
	if result.ErrorMessage != "cut failed" {
		t.Fatalf("expected first failure message retained, got %q", result.ErrorMessage)
	}
}

func TestResultString(t *testing.T) {
	result := NewResult("/videos/show.mkv")
	result.MarkFound(3)
	result.MarkMatched(1)
	want := "show.mkv: 1/3 chapters matched - Success"
	if result.String() != want {
		t.Fatalf("unexpected summary: %q", result.String())
	}
}

func TestIsSupportedFormat(t *testing.T) {
	supported := []string{"a.mkv", "b.MP4", "c.m4v", "d.avi", "e.webm", "f.ts", "g.M2TS"}
	for _, path := range supported {
		if !IsSupportedFormat(path) {
			t.Fatalf("expected %q to be supported", path)
		}
	}
	for _, path := range []string{"a.mov", "b.wmv", "c.txt", "noext"} {
		if IsSupportedFormat(path) {
			t.Fatalf("expected %q to be unsupported", path)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("video.mkv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ValidateFormat("video.mov")
	if err == nil {
		t.Fatal("expected error for .mov")
	}
	if !errors.Is(err, errs.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
