package media

import "strings"

// TrackType classifies a container stream.
type TrackType string

const (
	TrackVideo    TrackType = "video"
	TrackAudio    TrackType = "audio"
	TrackSubtitle TrackType = "subtitles"
	TrackOther    TrackType = "other"
)

// ParseTrackType maps an ffprobe codec_type value onto the track enum.
func ParseTrackType(codecType string) TrackType {
	switch strings.ToLower(strings.TrimSpace(codecType)) {
	case "video":
		return TrackVideo
	case "audio":
		return TrackAudio
	case "subtitle", "subtitles":
		return TrackSubtitle
	default:
		return TrackOther
	}
}

// Track describes a single stream in a media container.
type Track struct {
	ID       int
	Type     TrackType
	Codec    string
	Language string
	Name     string
	Default  bool
	Forced   bool

	// Audio-only.
	Channels   int
	SampleRate int

	// Video-only.
	Width  int
	Height int
}
