// Package tracks edits container-level track dispositions. All edits for one
// request are batched into a single mkvpropedit invocation so the container
// never holds a half-applied default set.
package tracks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"chaptersaw/internal/backend"
	"chaptersaw/internal/errs"
	"chaptersaw/internal/logging"
	"chaptersaw/internal/media"
)

// Missing-language policies.
const (
	MissingIgnore = "ignore"
	MissingWarn   = "warn"
)

// Selection reports which tracks an edit marked as default. A value of -1
// means no track of that type was changed.
type Selection struct {
	AudioTrackID    int
	SubtitleTrackID int
}

// Editor applies default-flag edits through a media backend.
type Editor struct {
	backend         backend.Backend
	logger          *slog.Logger
	missingLanguage string
}

// Option customizes an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for edit records.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMissingLanguagePolicy controls whether a requested language with no
// matching track logs a warning or is silently skipped.
func WithMissingLanguagePolicy(policy string) Option {
	return func(e *Editor) {
		if policy != "" {
			e.missingLanguage = policy
		}
	}
}

// NewEditor constructs a track editor over the given backend.
func NewEditor(b backend.Backend, opts ...Option) *Editor {
	editor := &Editor{
		backend:         b,
		logger:          logging.Discard(),
		missingLanguage: MissingIgnore,
	}
	for _, opt := range opts {
		opt(editor)
	}
	editor.logger = editor.logger.With("component", "tracks")
	return editor
}

// SetDefaultTrack marks the track with the given stream index as the sole
// default among tracks of its type. Only Matroska containers are editable.
func (e *Editor) SetDefaultTrack(ctx context.Context, file string, trackID int) error {
	if err := requireMatroska(file); err != nil {
		return err
	}
	all, err := e.backend.Tracks(ctx, file)
	if err != nil {
		return err
	}
	target, ok := findByID(all, trackID)
	if !ok {
		return errs.Wrap(errs.ErrExtraction, "tracks",
			fmt.Sprintf("track %d not found in %s", trackID, file), nil)
	}

	edits := defaultEdits(all, target)
	if err := e.backend.EditProperties(ctx, file, edits); err != nil {
		return err
	}
	e.logger.Info("default track set", "path", file,
		"track", target.ID, "type", string(target.Type))
	return nil
}

// SetDefaultByLanguage marks the first audio and subtitle tracks matching the
// requested languages as default. Empty language arguments leave that track
// type untouched; a language with no match follows the missing-language
// policy. Both type edits ride a single backend invocation.
func (e *Editor) SetDefaultByLanguage(ctx context.Context, file, audioLang, subtitleLang string) (Selection, error) {
	selection := Selection{AudioTrackID: -1, SubtitleTrackID: -1}
	if err := requireMatroska(file); err != nil {
		return selection, err
	}
	if strings.TrimSpace(audioLang) == "" && strings.TrimSpace(subtitleLang) == "" {
		return selection, errs.Wrap(errs.ErrInvalidArgument, "tracks",
			"at least one of audio or subtitle language must be provided", nil)
	}
	all, err := e.backend.Tracks(ctx, file)
	if err != nil {
		return selection, err
	}

	var edits []backend.PropertyEdit
	if target, ok := e.pick(all, media.TrackAudio, audioLang, file); ok {
		selection.AudioTrackID = target.ID
		edits = append(edits, defaultEdits(all, target)...)
	}
	if target, ok := e.pick(all, media.TrackSubtitle, subtitleLang, file); ok {
		selection.SubtitleTrackID = target.ID
		edits = append(edits, defaultEdits(all, target)...)
	}
	if len(edits) == 0 {
		return selection, nil
	}

	if err := e.backend.EditProperties(ctx, file, edits); err != nil {
		return selection, err
	}
	e.logger.Info("default tracks set", "path", file,
		"audio", selection.AudioTrackID, "subtitle", selection.SubtitleTrackID)
	return selection, nil
}

// pick returns the first track of the given type matching lang, applying the
// missing-language policy when nothing matches.
func (e *Editor) pick(all []media.Track, trackType media.TrackType, lang, file string) (media.Track, bool) {
	if strings.TrimSpace(lang) == "" {
		return media.Track{}, false
	}
	for _, track := range all {
		if track.Type == trackType && languageMatches(track.Language, lang) {
			return track, true
		}
	}
	if e.missingLanguage == MissingWarn {
		e.logger.Warn("no track matches requested language",
			"path", file, "type", string(trackType), "language", lang)
	}
	return media.Track{}, false
}

// defaultEdits clears the default flag on every track sharing the target's
// type and sets it on the target. Selector indices are 1-based on the wire;
// the backend handles the conversion.
func defaultEdits(all []media.Track, target media.Track) []backend.PropertyEdit {
	var edits []backend.PropertyEdit
	for _, track := range all {
		if track.Type != target.Type || track.ID == target.ID {
			continue
		}
		edits = append(edits, backend.PropertyEdit{
			TrackID: track.ID, Key: "flag-default", Value: "0",
		})
	}
	return append(edits, backend.PropertyEdit{
		TrackID: target.ID, Key: "flag-default", Value: "1",
	})
}

func findByID(all []media.Track, id int) (media.Track, bool) {
	for _, track := range all {
		if track.ID == id {
			return track, true
		}
	}
	return media.Track{}, false
}

// languageMatches compares track language tags leniently, so "jpn" on the
// track matches a requested "ja" and vice versa.
func languageMatches(trackLang, want string) bool {
	trackLang = strings.TrimSpace(trackLang)
	want = strings.TrimSpace(want)
	if trackLang == "" || want == "" {
		return false
	}
	if strings.EqualFold(trackLang, want) {
		return true
	}
	trackTag, err := language.Parse(trackLang)
	if err != nil {
		return false
	}
	wantTag, err := language.Parse(want)
	if err != nil {
		return false
	}
	trackBase, _ := trackTag.Base()
	wantBase, _ := wantTag.Base()
	return trackBase == wantBase
}

func requireMatroska(file string) error {
	if strings.ToLower(filepath.Ext(file)) != ".mkv" {
		return errs.Wrap(errs.ErrUnsupportedFormat, "tracks",
			fmt.Sprintf("%s: track editing requires a Matroska container", file), nil)
	}
	return nil
}
