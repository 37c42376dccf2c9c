package audio

import "errors"

// Errors returned by playback backends.
var (
	ErrBusy              = errors.New("playback already in progress")
	ErrNothingLoaded     = errors.New("no clip loaded")
	ErrNotOpen           = errors.New("audio output not open")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Backend is a capability that can load and play one audio resource at a time.
// Play starts playback and returns immediately; Busy reports whether output
// is still in progress.
type Backend interface {
	Load(path string) error
	Play() error
	Busy() bool
	Close() error
}
