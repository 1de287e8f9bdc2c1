package filter

import (
	"strings"

	"chaptersaw/internal/errs"
	"chaptersaw/internal/media"
)

// Spec captures one filter configuration. Keyword and Pattern are mutually
// exclusive; exactly one must be set.
type Spec struct {
	Keyword       string
	Pattern       string
	CaseSensitive bool
	Exclude       bool
}

// Validate enforces the keyword/pattern mutual exclusion.
func (s Spec) Validate() error {
	hasKeyword := strings.TrimSpace(s.Keyword) != ""
	hasPattern := strings.TrimSpace(s.Pattern) != ""
	switch {
	case hasKeyword && hasPattern:
		return errs.Wrap(errs.ErrInvalidArgument, "filter", "keyword and pattern are mutually exclusive", nil)
	case !hasKeyword && !hasPattern:
		return errs.Wrap(errs.ErrInvalidArgument, "filter", "either keyword or pattern must be provided", nil)
	}
	return nil
}

// Apply runs the configured filter over the chapters. Pattern mode takes
// precedence when both are set only through direct construction; Validate
// rejects that case at the boundary.
func (s Spec) Apply(chapters []media.Chapter) ([]media.Chapter, error) {
	if strings.TrimSpace(s.Pattern) != "" {
		return ByRegex(chapters, s.Pattern, s.CaseSensitive, s.Exclude)
	}
	if strings.TrimSpace(s.Keyword) != "" {
		return ByKeyword(chapters, s.Keyword, s.CaseSensitive, s.Exclude), nil
	}
	return nil, errs.Wrap(errs.ErrInvalidArgument, "filter", "either keyword or pattern must be provided", nil)
}

// Description returns the keyword or pattern for log and error messages.
func (s Spec) Description() string {
	if strings.TrimSpace(s.Pattern) != "" {
		return s.Pattern
	}
	return s.Keyword
}
