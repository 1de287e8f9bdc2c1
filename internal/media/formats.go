package media

import (
	"path/filepath"
	"sort"
	"strings"

	"chaptersaw/internal/errs"
)

// supportedExtensions lists the container formats the pipeline accepts,
// lower-cased with leading dot.
var supportedExtensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".m4v":  {},
	".avi":  {},
	".webm": {},
	".ts":   {},
	".m2ts": {},
}

// IsSupportedFormat reports whether the path carries a supported container
// extension. Matching is case-insensitive.
func IsSupportedFormat(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ValidateFormat fails with ErrUnsupportedFormat when the extension is not in
// the supported set.
func ValidateFormat(path string) error {
	if IsSupportedFormat(path) {
		return nil
	}
	return errs.Wrap(errs.ErrUnsupportedFormat, "validate format",
		"extension "+filepath.Ext(path)+" for "+filepath.Base(path)+" (supported: "+SupportedFormats()+")", nil)
}

// SupportedFormats returns the sorted, comma-separated extension list for
// error messages and help text.
func SupportedFormats() string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
