package player

import (
	"errors"

	"github.com/jmylchreest/cliplay/internal/audio"
)

// Error kinds reported by the controller. None of them is fatal; callers
// report them and carry on.
var (
	ErrNoClips          = errors.New("no audio files found")
	ErrNotFound         = errors.New("file not found")
	ErrPlayback         = errors.New("playback failed")
	ErrInvalidSelection = errors.New("invalid selection")
)

// Suggestion returns a user-facing hint for err, or "" if none applies.
func Suggestion(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoClips):
		return "Add .wav, .mp3 or .ogg files to the clip directory, or point --dir at another one"
	case errors.Is(err, ErrNotFound):
		return "Run 'cliplay list' to see the available clips"
	case errors.Is(err, audio.ErrUnsupportedFormat):
		return "Only formats with a registered decoder can be played"
	case errors.Is(err, ErrInvalidSelection):
		return "Pick a number from the listing"
	default:
		return ""
	}
}
