package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

var _ Backend = (*Speaker)(nil)

// SpeakerOptions configures the speaker backend.
type SpeakerOptions struct {
	SampleRate int     // Output rate; clips are resampled to it
	Volume     float64 // 0.0 to 1.0
}

// Speaker plays clips through the system audio device using beep.
// Open must be called before Play and Close releases the device.
type Speaker struct {
	mu     sync.Mutex
	logger *slog.Logger

	// Volume control (0.0 to 1.0)
	volume float64

	// Whether speaker has been initialized
	initialized bool

	// Sample rate for the speaker
	sampleRate beep.SampleRate

	// Currently loaded clip, if any
	loaded *loadedClip

	busy atomic.Bool
}

// loadedClip holds a decoded stream waiting to be played.
type loadedClip struct {
	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// NewSpeaker creates a new speaker backend.
func NewSpeaker(opts SpeakerOptions, logger *slog.Logger) *Speaker {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}

	s := &Speaker{
		logger:     logger,
		volume:     1.0,
		sampleRate: beep.SampleRate(opts.SampleRate),
	}
	s.SetVolume(opts.Volume)
	return s
}

// Open initializes the audio device.
func (s *Speaker) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	// Use a reasonable buffer size for low latency
	bufferSize := s.sampleRate.N(time.Millisecond * 100)

	if err := speaker.Init(s.sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	s.initialized = true
	s.logger.Debug("speaker initialized", "sample_rate", s.sampleRate)
	return nil
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (s *Speaker) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	s.volume = volume
	s.logger.Debug("volume set", "volume", volume)
}

// GetVolume returns the current volume.
func (s *Speaker) GetVolume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Load opens and decodes a clip, replacing any previously loaded one.
// Fails with ErrBusy while a clip is still playing.
func (s *Speaker) Load(path string) error {
	if s.busy.Load() {
		return ErrBusy
	}

	// Expand path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	decode, ok := decoderForPath(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open sound file: %w", err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to decode sound: %w", err)
	}

	s.mu.Lock()
	s.releaseLocked()
	s.loaded = &loadedClip{
		path:     path,
		streamer: streamer,
		format:   format,
	}
	s.mu.Unlock()

	s.logger.Debug("loaded clip", "path", path, "sample_rate", format.SampleRate, "channels", format.NumChannels)
	return nil
}

// Play starts the loaded clip and returns immediately.
// Busy reports true until the clip has been fully handed to the device.
func (s *Speaker) Play() error {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotOpen
	}
	if s.loaded == nil {
		s.mu.Unlock()
		return ErrNothingLoaded
	}
	if s.busy.Load() {
		s.mu.Unlock()
		return ErrBusy
	}

	clip := s.loaded
	volume := s.volume
	sampleRate := s.sampleRate
	s.mu.Unlock()

	if err := clip.streamer.Seek(0); err != nil {
		return fmt.Errorf("failed to rewind clip: %w", err)
	}

	var streamer beep.Streamer = clip.streamer

	// Resample if necessary
	if clip.format.SampleRate != sampleRate {
		streamer = beep.Resample(4, clip.format.SampleRate, sampleRate, streamer)
	}

	// Apply volume
	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeToExponent(volume),
			Silent:   volume == 0,
		}
	}

	s.busy.Store(true)
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		s.busy.Store(false)
	})))

	s.logger.Debug("playing clip", "path", clip.path)
	return nil
}

// Busy reports whether a clip is currently playing.
func (s *Speaker) Busy() bool {
	return s.busy.Load()
}

// Close stops all playback and releases the audio device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		speaker.Clear()
		speaker.Close()
		s.initialized = false
	}
	s.busy.Store(false)
	s.releaseLocked()

	s.logger.Debug("speaker closed")
	return nil
}

// releaseLocked closes the loaded clip. Callers hold s.mu.
func (s *Speaker) releaseLocked() {
	if s.loaded == nil {
		return
	}
	if err := s.loaded.streamer.Close(); err != nil {
		s.logger.Debug("failed to close clip stream", "path", s.loaded.path, "error", err)
	}
	s.loaded = nil
}

// volumeToExponent converts a linear volume (0-1) to a base-2 exponent
// for effects.Volume: 0.5 = -1, 0.25 = -2.
func volumeToExponent(volume float64) float64 {
	if volume <= 0 {
		return -10
	}
	return math.Log2(volume)
}
