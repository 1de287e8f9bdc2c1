package deps

import (
	"errors"
	"testing"

	"chaptersaw/internal/errs"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "missing", Command: "definitely-not-a-real-binary-5481"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
}

func TestCheckBinariesUnconfiguredCommand(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "empty", Command: "  "}})
	if statuses[0].Available {
		t.Fatal("unconfigured command should be unavailable")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", statuses[0].Detail)
	}
}

func TestCheckBinariesFindsShell(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "sh", Command: "sh"}})
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %s", statuses[0].Detail)
	}
}

func TestPreflightRequiredMissing(t *testing.T) {
	err := Preflight([]Requirement{
		{Name: "probe", Command: "definitely-not-a-real-binary-5481"},
	})
	if !errors.Is(err, errs.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestPreflightOptionalMissingPasses(t *testing.T) {
	err := Preflight([]Requirement{
		{Name: "editor", Command: "definitely-not-a-real-binary-5481", Optional: true},
	})
	if err != nil {
		t.Fatalf("optional tool should not fail preflight: %v", err)
	}
}

func TestRequirementsShape(t *testing.T) {
	reqs := Requirements("ffprobe", "ffmpeg", "mkvpropedit")
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	if reqs[0].Optional || reqs[1].Optional {
		t.Fatal("probe and cut tools must be required")
	}
	if !reqs[2].Optional {
		t.Fatal("mkvpropedit must be optional")
	}
}
