package player

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/cliplay/internal/model"
)

// State is the lifecycle state of a playback session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:    "idle",
	StateLoading: "loading",
	StatePlaying: "playing",
	StateFailed:  "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Session tracks one play call from load until the backend reports idle.
type Session struct {
	ID        string
	Clip      model.Clip
	State     State
	StartedAt time.Time
	EndedAt   time.Time
	Err       error
}

func newSession(clip model.Clip) *Session {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		id = ulid.Make()
	}

	return &Session{
		ID:        id.String(),
		Clip:      clip,
		State:     StateIdle,
		StartedAt: time.Now(),
	}
}

// Duration returns how long the session lasted, or has lasted so far.
func (s *Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}

func (s *Session) finish(state State, err error) {
	s.State = state
	s.Err = err
	s.EndedAt = time.Now()
}
