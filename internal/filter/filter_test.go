package filter

import (
	"errors"
	"testing"

	"chaptersaw/internal/errs"
	"chaptersaw/internal/media"
)

func episodeChapters() []media.Chapter {
	return []media.Chapter{
		{Title: "Opening", StartTime: 0, EndTime: 90, Index: 0},
		{Title: "Episode 1", StartTime: 90, EndTime: 1200, Index: 1},
		{Title: "Credits", StartTime: 1200, EndTime: 1290, Index: 2},
	}
}

func titles(chapters []media.Chapter) []string {
	out := make([]string, len(chapters))
	for i, chapter := range chapters {
		out[i] = chapter.Title
	}
	return out
}

func equalTitles(got []media.Chapter, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, chapter := range got {
		if chapter.Title != want[i] {
			return false
		}
	}
	return true
}

func TestByKeywordInclude(t *testing.T) {
	matches := ByKeyword(episodeChapters(), "Episode", false, false)
	if !equalTitles(matches, []string{"Episode 1"}) {
		t.Fatalf("unexpected matches: %v", titles(matches))
	}
}

func TestByKeywordExclude(t *testing.T) {
	matches := ByKeyword(episodeChapters(), "Opening", false, true)
	if !equalTitles(matches, []string{"Episode 1", "Credits"}) {
		t.Fatalf("unexpected matches: %v", titles(matches))
	}
}

func TestByKeywordCaseInsensitiveByDefault(t *testing.T) {
	matches := ByKeyword(episodeChapters(), "ePiSoDe", false, false)
	if !equalTitles(matches, []string{"Episode 1"}) {
		t.Fatalf("unexpected matches: %v", titles(matches))
	}
	if got := ByKeyword(episodeChapters(), "ePiSoDe", true, false); len(got) != 0 {
		t.Fatalf("case-sensitive match should be empty, got %v", titles(got))
	}
}

func TestByKeywordExcludeIsComplement(t *testing.T) {
	chapters := episodeChapters()
	included := ByKeyword(chapters, "e", false, false)
	excluded := ByKeyword(chapters, "e", false, true)
	if len(included)+len(excluded) != len(chapters) {
		t.Fatalf("complement property violated: %d + %d != %d", len(included), len(excluded), len(chapters))
	}
	// Merged in input order, the two partitions reproduce the input.
	seen := make(map[media.Chapter]bool, len(chapters))
	for _, chapter := range append(append([]media.Chapter{}, included...), excluded...) {
		if seen[chapter] {
			t.Fatalf("chapter appears in both partitions: %v", chapter)
		}
		seen[chapter] = true
	}
}

func TestByRegexAnchoredSingleDigit(t *testing.T) {
	chapters := []media.Chapter{
		{Title: "Episode 1"},
		{Title: "Episode 2"},
		{Title: "Episode 10"},
		{Title: "Credits"},
	}
	matches, err := ByRegex(chapters, `^Episode \d$`, false, false)
	if err != nil {
		t.Fatalf("ByRegex: %v", err)
	}
	if !equalTitles(matches, []string{"Episode 1", "Episode 2"}) {
		t.Fatalf("unexpected matches: %v", titles(matches))
	}
}

func TestByRegexExclude(t *testing.T) {
	matches, err := ByRegex(episodeChapters(), `^Episode`, false, true)
	if err != nil {
		t.Fatalf("ByRegex: %v", err)
	}
	if !equalTitles(matches, []string{"Opening", "Credits"}) {
		t.Fatalf("unexpected matches: %v", titles(matches))
	}
}

func TestByRegexCaseFlag(t *testing.T) {
	matches, err := ByRegex(episodeChapters(), `episode`, false, false)
	if err != nil {
		t.Fatalf("ByRegex: %v", err)
	}
	if !equalTitles(matches, []string{"Episode 1"}) {
		t.Fatalf("case-insensitive regex should match: %v", titles(matches))
	}
	matches, err = ByRegex(episodeChapters(), `episode`, true, false)
	if err != nil {
		t.Fatalf("ByRegex: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("case-sensitive regex should not match: %v", titles(matches))
	}
}

func TestByRegexInvalidPattern(t *testing.T) {
	_, err := ByRegex(episodeChapters(), `([`, false, false)
	if !errors.Is(err, errs.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestByPredicate(t *testing.T) {
	matches := ByPredicate(episodeChapters(), func(c media.Chapter) bool {
		return c.Duration() > 300
	})
	if !equalTitles(matches, []string{"Episode 1"}) {
		t.Fatalf("unexpected matches: %v", titles(matches))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	chapters := episodeChapters()
	ByKeyword(chapters, "Episode", false, true)
	if !equalTitles(chapters, []string{"Opening", "Episode 1", "Credits"}) {
		t.Fatalf("input mutated: %v", titles(chapters))
	}
}

func TestSpecValidate(t *testing.T) {
	if err := (Spec{Keyword: "Episode"}).Validate(); err != nil {
		t.Fatalf("keyword-only spec should validate: %v", err)
	}
	if err := (Spec{Pattern: `^Episode`}).Validate(); err != nil {
		t.Fatalf("pattern-only spec should validate: %v", err)
	}
	err := (Spec{}).Validate()
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("empty spec should fail with ErrInvalidArgument, got %v", err)
	}
	err = (Spec{Keyword: "a", Pattern: "b"}).Validate()
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("dual spec should fail with ErrInvalidArgument, got %v", err)
	}
}

func TestSpecApply(t *testing.T) {
	matches, err := (Spec{Keyword: "Episode"}).Apply(episodeChapters())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !equalTitles(matches, []string{"Episode 1"}) {
		t.Fatalf("unexpected matches: %v", titles(matches))
	}
	if _, err := (Spec{}).Apply(episodeChapters()); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
