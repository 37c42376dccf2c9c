package player

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cliplay/internal/audio"
	"github.com/jmylchreest/cliplay/internal/model"
)

// fakeBackend records calls and reports busy for a fixed number of polls
// after each Play.
type fakeBackend struct {
	mu        sync.Mutex
	loads     []string
	plays     int
	busyPolls int
	remaining int
	failLoad  map[string]error
	failPlay  map[string]error
	current   string
	onBusy    func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		failLoad: make(map[string]error),
		failPlay: make(map[string]error),
	}
}

func (f *fakeBackend) Load(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, path)
	if err, ok := f.failLoad[filepath.Base(path)]; ok {
		return err
	}
	f.current = path
	return nil
}

func (f *fakeBackend) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	if err, ok := f.failPlay[filepath.Base(f.current)]; ok {
		return err
	}
	f.remaining = f.busyPolls
	return nil
}

func (f *fakeBackend) Busy() bool {
	f.mu.Lock()
	hook := f.onBusy
	busy := f.remaining != 0
	if f.remaining > 0 {
		f.remaining--
	}
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return busy
}

func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) loadedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.loads))
	for _, p := range f.loads {
		names = append(names, filepath.Base(p))
	}
	return names
}

func writeClips(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func newTestController(t *testing.T, backend audio.Backend, dir string) (*Controller, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := New(backend, nil, Options{
		Directory:    dir,
		PollInterval: time.Millisecond,
		Gap:          time.Millisecond,
		Output:       &out,
	})
	return c, &out
}

func TestListFiles_SortedAscending(t *testing.T) {
	dir := t.TempDir()
	writeClips(t, dir, "a.mp3", "c.wav", "b.ogg", "readme.txt")

	backend := newFakeBackend()
	c, out := newTestController(t, backend, dir)

	clips, err := c.ListFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, clips, 3)

	assert.Equal(t, "a.mp3", clips[0].Name)
	assert.Equal(t, "b.ogg", clips[1].Name)
	assert.Equal(t, "c.wav", clips[2].Name)

	assert.Contains(t, out.String(), "Found 3 audio files:")
	assert.Contains(t, out.String(), "1. a.mp3\n2. b.ogg\n3. c.wav\n")
	assert.Empty(t, backend.loads)
}

func TestEmptyDirectory_NoPlayback(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(c *Controller) error
	}{
		{"list", func(c *Controller) error {
			clips, err := c.ListFiles(ctx)
			assert.Empty(t, clips)
			return err
		}},
		{"play all", func(c *Controller) error {
			result, err := c.PlayAll(ctx)
			assert.Equal(t, BatchResult{}, result)
			return err
		}},
		{"play latest", func(c *Controller) error {
			return c.PlayLatest(ctx)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			c, out := newTestController(t, backend, dir)

			err := tt.run(c)
			assert.ErrorIs(t, err, ErrNoClips)
			assert.Contains(t, out.String(), "No audio files found in "+dir)
			assert.Empty(t, backend.loads)
			assert.Zero(t, backend.plays)
		})
	}
}

func TestEmptyDirectory_Missing(t *testing.T) {
	backend := newFakeBackend()
	c, out := newTestController(t, backend, filepath.Join(t.TempDir(), "nope"))

	_, err := c.PlayAll(context.Background())
	assert.ErrorIs(t, err, ErrNoClips)
	assert.Contains(t, out.String(), "No audio files found")
	assert.Zero(t, backend.plays)
}

func TestPlayAll_OrderAndContinueOnError(t *testing.T) {
	dir := t.TempDir()
	writeClips(t, dir, "c.wav", "a.mp3", "b.ogg", "d.wav")

	backend := newFakeBackend()
	backend.busyPolls = 2
	backend.failLoad["b.ogg"] = errors.New("corrupt header")
	backend.failPlay["c.wav"] = errors.New("device lost")

	c, out := newTestController(t, backend, dir)

	result, err := c.PlayAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.mp3", "b.ogg", "c.wav", "d.wav"}, backend.loadedNames())
	assert.Equal(t, BatchResult{Total: 4, Played: 2, Failed: 2}, result)
	assert.Equal(t, 3, backend.plays) // b.ogg never reached Play

	assert.Contains(t, out.String(), "Found 4 audio files\n")
	assert.Contains(t, out.String(), "Error playing "+filepath.Join(dir, "b.ogg")+": corrupt header")
	assert.Contains(t, out.String(), "Error playing "+filepath.Join(dir, "c.wav")+": device lost")
	assert.Contains(t, out.String(), "Playing: "+filepath.Join(dir, "d.wav"))
}

func TestPlayAll_ContextCancelledStopsBatch(t *testing.T) {
	dir := t.TempDir()
	writeClips(t, dir, "a.wav", "b.wav")

	backend := newFakeBackend()
	backend.busyPolls = -1 // never finishes

	c, _ := newTestController(t, backend, dir)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result, err := c.PlayAll(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, result.Played)
	assert.Equal(t, []string{"a.wav"}, backend.loadedNames())
}

func TestPlayLatest_PicksNewest(t *testing.T) {
	dir := t.TempDir()
	writeClips(t, dir, "z_old.wav")
	time.Sleep(20 * time.Millisecond)
	writeClips(t, dir, "a_new.wav")

	backend := newFakeBackend()
	c, out := newTestController(t, backend, dir)

	require.NoError(t, c.PlayLatest(context.Background()))
	assert.Equal(t, []string{"a_new.wav"}, backend.loadedNames())
	assert.Contains(t, out.String(), "Playing: "+filepath.Join(dir, "a_new.wav"))
}

func TestPlaySpecific(t *testing.T) {
	dir := t.TempDir()
	writeClips(t, dir, "present.wav")

	t.Run("found", func(t *testing.T) {
		backend := newFakeBackend()
		c, _ := newTestController(t, backend, dir)

		require.NoError(t, c.PlaySpecific(context.Background(), "present.wav"))
		assert.Equal(t, []string{"present.wav"}, backend.loadedNames())
		assert.Equal(t, 1, backend.plays)
	})

	t.Run("not found", func(t *testing.T) {
		backend := newFakeBackend()
		c, out := newTestController(t, backend, dir)

		err := c.PlaySpecific(context.Background(), "missing.wav")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, out.String(), "File not found: missing.wav")
		assert.Empty(t, backend.loads)
		assert.Zero(t, backend.plays)
	})
}

func TestPlayIndex(t *testing.T) {
	clips := []model.Clip{
		model.NewClip("clips/a.wav", time.Time{}),
		model.NewClip("clips/b.wav", time.Time{}),
	}

	backend := newFakeBackend()
	c, _ := newTestController(t, backend, "clips")

	require.NoError(t, c.PlayIndex(context.Background(), clips, 2))
	assert.Equal(t, []string{"b.wav"}, backend.loadedNames())

	for _, idx := range []int{0, 3, -1} {
		err := c.PlayIndex(context.Background(), clips, idx)
		assert.ErrorIs(t, err, ErrInvalidSelection)
	}
	assert.Len(t, backend.loads, 1)
}

func TestPlayClip_WaitsUntilIdle(t *testing.T) {
	backend := newFakeBackend()
	backend.busyPolls = 3

	polls := 0
	backend.onBusy = func() { polls++ }

	c, _ := newTestController(t, backend, "clips")
	require.NoError(t, c.PlayClip(context.Background(), model.NewClip("clips/a.wav", time.Time{})))

	// Three busy answers, then one idle answer ends the wait
	assert.Equal(t, 4, polls)

	session, ok := c.LastSession()
	require.True(t, ok)
	assert.Equal(t, StateIdle, session.State)
	assert.NoError(t, session.Err)
	assert.NotEmpty(t, session.ID)
	assert.False(t, session.EndedAt.IsZero())

	_, active := c.Active()
	assert.False(t, active)
}

func TestPlayClip_FailureIsReported(t *testing.T) {
	backend := newFakeBackend()
	backend.failLoad["bad.wav"] = errors.New("boom")

	c, out := newTestController(t, backend, "clips")
	err := c.PlayClip(context.Background(), model.NewClip("clips/bad.wav", time.Time{}))

	assert.ErrorIs(t, err, ErrPlayback)
	assert.True(t, IsReportable(err))
	assert.Contains(t, out.String(), "Error playing clips/bad.wav: boom")

	session, ok := c.LastSession()
	require.True(t, ok)
	assert.Equal(t, StateFailed, session.State)
	assert.Error(t, session.Err)
}

func TestPlayClip_RejectsOverlappingSession(t *testing.T) {
	backend := newFakeBackend()
	backend.busyPolls = 1

	c, _ := newTestController(t, backend, "clips")

	var nestedErr error
	var state State
	backend.onBusy = func() {
		if nestedErr != nil {
			return
		}
		if s, ok := c.Active(); ok {
			state = s.State
		}
		nestedErr = c.PlayClip(context.Background(), model.NewClip("clips/other.wav", time.Time{}))
	}

	require.NoError(t, c.PlayClip(context.Background(), model.NewClip("clips/first.wav", time.Time{})))
	assert.ErrorIs(t, nestedErr, audio.ErrBusy)
	assert.Equal(t, StatePlaying, state)
	assert.Equal(t, []string{"first.wav"}, backend.loadedNames())
}

func TestSuggestion(t *testing.T) {
	assert.Empty(t, Suggestion(nil))
	assert.NotEmpty(t, Suggestion(ErrNoClips))
	assert.NotEmpty(t, Suggestion(ErrNotFound))
	assert.NotEmpty(t, Suggestion(ErrInvalidSelection))
	assert.Empty(t, Suggestion(errors.New("other")))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestPlayAll_WritesNoFiles(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_STATE_HOME", dataHome)

	dir := t.TempDir()
	writeClips(t, dir, "a.wav", "b.wav")

	backend := newFakeBackend()
	backend.failLoad["b.wav"] = errors.New("boom")
	c, _ := newTestController(t, backend, dir)

	_, err := c.PlayAll(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.wav", "b.wav"}, names)

	written, err := os.ReadDir(dataHome)
	require.NoError(t, err)
	assert.Empty(t, written)
}
