// Package deps checks availability of the external executables the pipeline
// orchestrates. ffprobe and ffmpeg are required at startup; mkvpropedit is
// optional and only checked lazily when track editing is requested.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"chaptersaw/internal/errs"
)

// Requirement defines an external dependency chaptersaw relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the toolchain requirement set for the given commands.
func Requirements(ffprobe, ffmpeg, mkvpropedit string) []Requirement {
	return []Requirement{
		{Name: "ffprobe", Command: ffprobe, Description: "Probes chapter and stream metadata"},
		{Name: "ffmpeg", Command: ffmpeg, Description: "Cuts and concatenates segments (stream copy)"},
		{Name: "mkvpropedit", Command: mkvpropedit, Description: "Edits track disposition flags in place", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Preflight fails with ErrToolNotFound when any required binary is missing.
// Optional tools never fail the preflight.
func Preflight(requirements []Requirement) error {
	for _, status := range CheckBinaries(requirements) {
		if status.Optional || status.Available {
			continue
		}
		return errs.Wrap(errs.ErrToolNotFound, "preflight",
			fmt.Sprintf("%s (%s): install FFmpeg and ensure it is on PATH, or set tools.%s in the config", status.Name, status.Detail, status.Name), nil)
	}
	return nil
}
