// Package fileutil resolves pipeline input paths: glob expansion, ordering,
// de-duplication, and the supported-container gate.
package fileutil

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"chaptersaw/internal/media"
)

// ResolveInputs expands each pattern into concrete paths. Glob patterns are
// expanded and sorted; a glob matching nothing is an error. Literal paths are
// passed through untouched so missing-file handling stays with the pipeline.
// Unsupported container extensions are filtered out, and duplicates are
// removed preserving first-seen order.
func ResolveInputs(patterns []string) ([]string, error) {
	var resolved []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if !isGlob(pattern) {
			resolved = append(resolved, pattern)
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files found matching pattern: %s", pattern)
		}
		sort.Strings(matches)
		resolved = append(resolved, matches...)
	}

	filtered := resolved[:0]
	for _, path := range resolved {
		if media.IsSupportedFormat(path) {
			filtered = append(filtered, path)
		}
	}
	return Unique(filtered), nil
}

// Unique removes duplicate paths preserving first-seen order.
func Unique(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	return out
}

// Stem returns the file name without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
