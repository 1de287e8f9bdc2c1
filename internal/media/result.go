package media

import (
	"fmt"
	"path/filepath"
)

// ExtractionResult accumulates the outcome of processing one input file. It
// is created when the scan phase first sees the file and updated through the
// transition methods below; the orchestrator is its only writer.
type ExtractionResult struct {
	SourceFile        string
	OutputFile        string
	ChaptersFound     int
	ChaptersMatched   int
	ChaptersExtracted []Chapter
	Success           bool
	ErrorMessage      string
}

// NewResult returns a fresh result for the given source file. Success starts
// true and flips to false on the first recorded failure.
func NewResult(sourceFile string) *ExtractionResult {
	return &ExtractionResult{SourceFile: sourceFile, Success: true}
}

// MarkFound records the number of chapters the probe reported.
func (r *ExtractionResult) MarkFound(count int) {
	r.ChaptersFound = count
}

// MarkMatched records how many chapters survived the filter. The value never
// exceeds ChaptersFound for probe-derived chapter sets.
func (r *ExtractionResult) MarkMatched(count int) {
	r.ChaptersMatched = count
}

// RecordExtracted appends a successfully cut chapter in extraction order.
func (r *ExtractionResult) RecordExtracted(chapter Chapter) {
	r.ChaptersExtracted = append(r.ChaptersExtracted, chapter)
}

// MarkFailed flips the result to failed and retains the first failure message.
func (r *ExtractionResult) MarkFailed(message string) {
	r.Success = false
	if r.ErrorMessage == "" {
		r.ErrorMessage = message
	}
}

// String summarizes the result for logs and CLI output.
func (r *ExtractionResult) String() string {
	status := "Success"
	if !r.Success {
		status = "Failed: " + r.ErrorMessage
	}
	return fmt.Sprintf("%s: %d/%d chapters matched - %s",
		filepath.Base(r.SourceFile), r.ChaptersMatched, r.ChaptersFound, status)
}
