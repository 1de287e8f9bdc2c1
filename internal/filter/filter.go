package filter

import (
	"regexp"
	"strings"

	"chaptersaw/internal/errs"
	"chaptersaw/internal/media"
)

// ByKeyword returns the chapters whose titles contain keyword as a substring.
// Matching is case-insensitive unless caseSensitive is set. With exclude, the
// set-difference of the input against the match set is returned instead,
// preserving original order.
func ByKeyword(chapters []media.Chapter, keyword string, caseSensitive, exclude bool) []media.Chapter {
	needle := keyword
	if !caseSensitive {
		needle = strings.ToLower(keyword)
	}

	matched := make(map[media.Chapter]struct{}, len(chapters))
	matches := make([]media.Chapter, 0, len(chapters))
	for _, chapter := range chapters {
		title := chapter.Title
		if !caseSensitive {
			title = strings.ToLower(title)
		}
		if strings.Contains(title, needle) {
			matched[chapter] = struct{}{}
			matches = append(matches, chapter)
		}
	}

	if !exclude {
		return matches
	}
	kept := make([]media.Chapter, 0, len(chapters)-len(matches))
	for _, chapter := range chapters {
		if _, ok := matched[chapter]; !ok {
			kept = append(kept, chapter)
		}
	}
	return kept
}

// ByRegex returns the chapters whose titles search-match the pattern (not
// anchored). Case-insensitivity is applied via the (?i) compile flag rather
// than string transformation. Fails with ErrInvalidPattern when the pattern
// does not compile. With exclude, chapters whose titles do not match are
// returned.
func ByRegex(chapters []media.Chapter, pattern string, caseSensitive, exclude bool) ([]media.Chapter, error) {
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + pattern
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, errs.Wrap(errs.ErrInvalidPattern, "compile regex", pattern, err)
	}

	kept := make([]media.Chapter, 0, len(chapters))
	for _, chapter := range chapters {
		if compiled.MatchString(chapter.Title) != exclude {
			kept = append(kept, chapter)
		}
	}
	return kept, nil
}

// ByPredicate returns the chapters satisfying the predicate, in input order.
func ByPredicate(chapters []media.Chapter, predicate func(media.Chapter) bool) []media.Chapter {
	kept := make([]media.Chapter, 0, len(chapters))
	for _, chapter := range chapters {
		if predicate(chapter) {
			kept = append(kept, chapter)
		}
	}
	return kept
}
