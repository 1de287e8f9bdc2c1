package media

import "fmt"

// Chapter is a named time-range marker embedded in a container's metadata.
// Values are immutable once constructed; equality over all fields is used for
// set-based exclude filtering.
type Chapter struct {
	Title     string
	StartTime float64
	EndTime   float64
	Index     int
}

// Duration returns the chapter length in seconds.
func (c Chapter) Duration() float64 {
	return c.EndTime - c.StartTime
}

// String renders the chapter for listings and logs.
func (c Chapter) String() string {
	return fmt.Sprintf("%s (%.2fs - %.2fs)", c.Title, c.StartTime, c.EndTime)
}
