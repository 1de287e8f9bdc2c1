package tracks

import (
	"context"
	"errors"
	"testing"

	"chaptersaw/internal/backend"
	"chaptersaw/internal/errs"
	"chaptersaw/internal/media"
)

func movieTracks() []media.Track {
	return []media.Track{
		{ID: 0, Type: media.TrackVideo, Codec: "h264"},
		{ID: 1, Type: media.TrackAudio, Codec: "aac", Language: "eng", Default: true},
		{ID: 2, Type: media.TrackAudio, Codec: "aac", Language: "jpn"},
		{ID: 3, Type: media.TrackSubtitle, Codec: "subrip", Language: "eng"},
		{ID: 4, Type: media.TrackSubtitle, Codec: "subrip", Language: "ger"},
	}
}

func TestSetDefaultTrack(t *testing.T) {
	fake := backend.NewFake()
	fake.TracksByPath["movie.mkv"] = movieTracks()

	editor := NewEditor(fake)
	if err := editor.SetDefaultTrack(context.Background(), "movie.mkv", 2); err != nil {
		t.Fatalf("SetDefaultTrack: %v", err)
	}

	if len(fake.EditCalls) != 1 {
		t.Fatalf("expected a single edit invocation, got %d", len(fake.EditCalls))
	}
	edits := fake.EditCalls[0].Edits
	want := []backend.PropertyEdit{
		{TrackID: 1, Key: "flag-default", Value: "0"},
		{TrackID: 2, Key: "flag-default", Value: "1"},
	}
	if len(edits) != len(want) {
		t.Fatalf("unexpected edits: %+v", edits)
	}
	for i := range want {
		if edits[i] != want[i] {
			t.Fatalf("edit %d = %+v, want %+v", i, edits[i], want[i])
		}
	}
}

func TestSetDefaultTrackUnknownID(t *testing.T) {
	fake := backend.NewFake()
	fake.TracksByPath["movie.mkv"] = movieTracks()

	editor := NewEditor(fake)
	err := editor.SetDefaultTrack(context.Background(), "movie.mkv", 9)
	if !errors.Is(err, errs.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	if len(fake.EditCalls) != 0 {
		t.Fatal("no edits should be issued for an unknown track")
	}
}

func TestSetDefaultTrackRequiresMatroska(t *testing.T) {
	editor := NewEditor(backend.NewFake())
	err := editor.SetDefaultTrack(context.Background(), "movie.mp4", 1)
	if !errors.Is(err, errs.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestSetDefaultByLanguage(t *testing.T) {
	fake := backend.NewFake()
	fake.TracksByPath["movie.mkv"] = movieTracks()

	editor := NewEditor(fake)
	selection, err := editor.SetDefaultByLanguage(context.Background(), "movie.mkv", "jpn", "eng")
	if err != nil {
		t.Fatalf("SetDefaultByLanguage: %v", err)
	}
	if selection.AudioTrackID != 2 {
		t.Fatalf("audio selection = %d, want 2", selection.AudioTrackID)
	}
	if selection.SubtitleTrackID != 3 {
		t.Fatalf("subtitle selection = %d, want 3", selection.SubtitleTrackID)
	}

	// Audio and subtitle edits ride one invocation.
	if len(fake.EditCalls) != 1 {
		t.Fatalf("expected a single edit invocation, got %d", len(fake.EditCalls))
	}
	if len(fake.EditCalls[0].Edits) != 4 {
		t.Fatalf("unexpected edit count: %+v", fake.EditCalls[0].Edits)
	}
}

func TestSetDefaultByLanguageLenientTags(t *testing.T) {
	fake := backend.NewFake()
	fake.TracksByPath["movie.mkv"] = movieTracks()

	editor := NewEditor(fake)
	selection, err := editor.SetDefaultByLanguage(context.Background(), "movie.mkv", "ja", "")
	if err != nil {
		t.Fatalf("SetDefaultByLanguage: %v", err)
	}
	if selection.AudioTrackID != 2 {
		t.Fatalf("ISO 639-1 request should match 639-2 track tag, got %d", selection.AudioTrackID)
	}
	if selection.SubtitleTrackID != -1 {
		t.Fatalf("subtitle type should be untouched, got %d", selection.SubtitleTrackID)
	}
}

func TestSetDefaultByLanguageMissingLanguage(t *testing.T) {
	fake := backend.NewFake()
	fake.TracksByPath["movie.mkv"] = movieTracks()

	editor := NewEditor(fake, WithMissingLanguagePolicy(MissingWarn))
	selection, err := editor.SetDefaultByLanguage(context.Background(), "movie.mkv", "kor", "eng")
	if err != nil {
		t.Fatalf("SetDefaultByLanguage: %v", err)
	}
	if selection.AudioTrackID != -1 {
		t.Fatalf("missing language must not select a track, got %d", selection.AudioTrackID)
	}
	if selection.SubtitleTrackID != 3 {
		t.Fatalf("subtitle edit should still apply, got %d", selection.SubtitleTrackID)
	}
}

func TestSetDefaultByLanguageRequiresAnArgument(t *testing.T) {
	editor := NewEditor(backend.NewFake())
	_, err := editor.SetDefaultByLanguage(context.Background(), "movie.mkv", "", "")
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
