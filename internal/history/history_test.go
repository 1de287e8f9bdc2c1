package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"chaptersaw/internal/media"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	good := media.NewResult("/v/a.mkv")
	good.MarkFound(5)
	good.MarkMatched(2)
	good.RecordExtracted(media.Chapter{Title: "Episode 1"})
	good.OutputFile = "/v/out.mkv"

	bad := media.NewResult("/v/b.mkv")
	bad.MarkFailed("File not found")

	started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	runID, err := store.RecordRun(ctx, Run{
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Mode:       "merge",
		Filter:     "Episode",
		Output:     "/v/out.mkv",
	}, []*media.ExtractionResult{good, bad})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != runID || run.Mode != "merge" || run.Filter != "Episode" {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.FilesTotal != 2 || run.FilesFailed != 1 {
		t.Fatalf("unexpected file counts: %+v", run)
	}
	if !run.StartedAt.Equal(started) {
		t.Fatalf("start time round-trip failed: %v", run.StartedAt)
	}

	files, err := store.RunFiles(ctx, runID)
	if err != nil {
		t.Fatalf("RunFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 file records, got %d", len(files))
	}
	if !files[0].Success || files[0].ChaptersExtracted != 1 || files[0].OutputFile != "/v/out.mkv" {
		t.Fatalf("unexpected first record: %+v", files[0])
	}
	if files[1].Success || files[1].ErrorMessage != "File not found" {
		t.Fatalf("unexpected second record: %+v", files[1])
	}
}

func TestRecentRunsOrderAndLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.RecordRun(ctx, Run{
			StartedAt:  time.Now(),
			FinishedAt: time.Now(),
			Mode:       "split",
			Filter:     "Episode",
		}, nil); err != nil {
			t.Fatalf("RecordRun %d: %v", i, err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("limit not honored: got %d runs", len(runs))
	}
	if runs[0].ID < runs[1].ID {
		t.Fatalf("runs not newest-first: %d then %d", runs[0].ID, runs[1].ID)
	}
}
