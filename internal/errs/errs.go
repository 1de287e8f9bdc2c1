package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classify every failure the pipeline can surface. Callers
// match them with errors.Is; the concrete message carries the detail.
var (
	// ErrToolNotFound marks a missing external executable. Fatal at
	// initialization for the probe and cut tools.
	ErrToolNotFound = errors.New("tool not found")

	// ErrUnsupportedFormat marks a container extension outside the supported
	// set, or an operation that requires a format the target file lacks.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtraction is the umbrella for probe, cut, concat, and property-edit
	// failures: missing input, zero chapters, non-zero tool exit, unparseable
	// tool output, empty merge input.
	ErrExtraction = errors.New("extraction error")

	// ErrInvalidArgument marks caller mistakes such as supplying neither a
	// keyword nor a pattern where a filter is required.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidPattern marks a regular expression that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// Wrap builds an error tagged with the provided sentinel while preserving
// operation context for the message chain. The marker should be one of the
// exported sentinels above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrExtraction
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
