package pipeline

import "chaptersaw/internal/media"

// EventKind identifies a progress event.
type EventKind int

const (
	// EventFileScanned fires after a file's chapters were probed and
	// filtered during phase one.
	EventFileScanned EventKind = iota
	// EventSegmentExtracted fires after each cut attempt in phase two.
	EventSegmentExtracted
	// EventFileCompleted fires when all of a file's cuts have been decided.
	EventFileCompleted
	// EventMergeCompleted fires after a merge wrote its output.
	EventMergeCompleted
)

// Event is one discrete progress notification. Completed/Total refer to the
// unit the event describes: segments for EventSegmentExtracted, files for
// EventFileScanned.
type Event struct {
	Kind      EventKind
	File      string
	Chapter   media.Chapter
	Completed int
	Total     int
	Output    string
	Failed    bool
}

// Observer receives pipeline progress events. Implementations must be safe
// for concurrent use; parallel extraction delivers events from worker
// goroutines.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnEvent implements Observer.
func (f ObserverFunc) OnEvent(event Event) { f(event) }

type nopObserver struct{}

func (nopObserver) OnEvent(Event) {}
