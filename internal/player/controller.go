// Package player implements the playback controller: it discovers clips,
// orders them, and plays them one at a time through an audio.Backend,
// blocking until each clip finishes.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmylchreest/cliplay/internal/audio"
	"github.com/jmylchreest/cliplay/internal/core"
	"github.com/jmylchreest/cliplay/internal/library"
	"github.com/jmylchreest/cliplay/internal/model"
)

// Default timings.
const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultGap          = 500 * time.Millisecond
)

// Options configures a Controller.
type Options struct {
	Directory    string        // Clip directory, may be relative
	PollInterval time.Duration // Busy-status polling interval
	Gap          time.Duration // Idle delay between clips in PlayAll
	Output       io.Writer     // User-facing notices (default: stdout)
	Logger       *slog.Logger
}

// BatchResult summarises a PlayAll run.
type BatchResult struct {
	Total  int
	Played int
	Failed int
}

// Controller drives a playback backend over the clips in one directory.
// At most one session is active at a time; a play call made while another
// is in progress fails with audio.ErrBusy.
type Controller struct {
	backend audio.Backend
	scanner *library.Scanner
	logger  *slog.Logger
	out     io.Writer

	dir          string
	pollInterval time.Duration
	gap          time.Duration

	mu     sync.Mutex
	active *Session
	last   *Session
}

// New creates a controller. A nil scanner uses the default extensions.
func New(backend audio.Backend, scanner *library.Scanner, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}
	if scanner == nil {
		scanner = library.NewScanner(nil, opts.Logger)
	}

	return &Controller{
		backend:      backend,
		scanner:      scanner,
		logger:       opts.Logger,
		out:          opts.Output,
		dir:          opts.Directory,
		pollInterval: opts.PollInterval,
		gap:          opts.Gap,
	}
}

// Directory returns the clip directory.
func (c *Controller) Directory() string {
	return c.dir
}

// Discover scans the clip directory and returns the clips sorted by path.
func (c *Controller) Discover(opts ...library.DiscoverOption) ([]model.Clip, error) {
	clips, err := c.scanner.Discover(c.dir, opts...)
	if err != nil {
		return nil, err
	}
	core.SortByPath(clips)
	return clips, nil
}

// ListFiles prints a numbered listing of the clips and returns them.
// An empty directory is reported and returns ErrNoClips.
func (c *Controller) ListFiles(ctx context.Context) ([]model.Clip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clips, err := c.Discover()
	if err != nil {
		return nil, err
	}
	if len(clips) == 0 {
		c.reportEmpty()
		return clips, ErrNoClips
	}

	c.printf("\nFound %d audio files:\n", len(clips))
	for i, clip := range clips {
		c.printf("%d. %s\n", i+1, clip.Name)
	}
	return clips, nil
}

// PlayAll plays every clip in ascending path order, pausing for the
// configured gap between clips. A failing clip is reported and skipped.
func (c *Controller) PlayAll(ctx context.Context) (BatchResult, error) {
	clips, err := c.Discover()
	if err != nil {
		return BatchResult{}, err
	}
	if len(clips) == 0 {
		c.reportEmpty()
		return BatchResult{}, ErrNoClips
	}

	c.printf("Found %d audio files\n", len(clips))

	result := BatchResult{Total: len(clips)}
	for i, clip := range clips {
		if i > 0 {
			if err := sleepContext(ctx, c.gap); err != nil {
				return result, err
			}
		}

		err := c.PlayClip(ctx, clip)
		switch {
		case err == nil:
			result.Played++
		case ctx.Err() != nil:
			return result, ctx.Err()
		default:
			result.Failed++
		}
	}

	c.logger.Info("play all finished", "total", result.Total, "played", result.Played, "failed", result.Failed)
	return result, nil
}

// PlayLatest plays the clip with the newest creation time.
func (c *Controller) PlayLatest(ctx context.Context) error {
	clips, err := c.scanner.Discover(c.dir, library.WithCreationTime())
	if err != nil {
		return err
	}

	latest, ok := core.Latest(clips)
	if !ok {
		c.reportEmpty()
		return ErrNoClips
	}

	c.logger.Debug("selected latest clip", "path", latest.Path, "created_at", latest.CreatedAt)
	return c.PlayClip(ctx, latest)
}

// PlaySpecific plays dir/name if it exists, otherwise reports it missing.
func (c *Controller) PlaySpecific(ctx context.Context, name string) error {
	path := filepath.Join(c.dir, name)

	if _, err := os.Stat(path); err != nil {
		c.printf("File not found: %s\n", name)
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return c.PlayClip(ctx, model.NewClip(path, time.Time{}))
}

// PlayIndex plays the clip at the 1-based index of a prior listing.
func (c *Controller) PlayIndex(ctx context.Context, clips []model.Clip, index int) error {
	clip := core.LookupByIndex(clips, index)
	if clip == nil {
		return fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidSelection, index, len(clips))
	}
	return c.PlayClip(ctx, *clip)
}

// PlayClip loads and plays one clip, blocking until the backend is idle.
// Backend failures are reported and returned wrapped in ErrPlayback.
func (c *Controller) PlayClip(ctx context.Context, clip model.Clip) error {
	session, err := c.begin(clip)
	if err != nil {
		return err
	}
	defer c.end(session)

	c.printf("Playing: %s\n", clip.Path)

	c.transition(session, StateLoading)
	if err := c.backend.Load(clip.Path); err != nil {
		return c.fail(session, err)
	}
	if err := c.backend.Play(); err != nil {
		return c.fail(session, err)
	}
	c.transition(session, StatePlaying)

	for c.backend.Busy() {
		if err := sleepContext(ctx, c.pollInterval); err != nil {
			c.finish(session, StateIdle, err)
			return err
		}
	}

	c.finish(session, StateIdle, nil)
	c.logger.Debug("clip finished", "session", session.ID, "path", clip.Path, "duration", session.Duration())
	return nil
}

// Active returns a copy of the in-progress session, if any.
func (c *Controller) Active() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Session{}, false
	}
	return *c.active, true
}

// LastSession returns a copy of the most recently finished session.
func (c *Controller) LastSession() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Session{}, false
	}
	return *c.last, true
}

func (c *Controller) begin(clip model.Clip) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return nil, fmt.Errorf("%w: %s", audio.ErrBusy, c.active.Clip.Name)
	}
	c.active = newSession(clip)
	return c.active, nil
}

func (c *Controller) end(session *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = nil
	c.last = session
}

func (c *Controller) transition(session *Session, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session.State = state
}

func (c *Controller) finish(session *Session, state State, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session.finish(state, err)
}

func (c *Controller) fail(session *Session, err error) error {
	c.finish(session, StateFailed, err)
	c.printf("Error playing %s: %v\n", session.Clip.Path, err)
	c.logger.Warn("playback failed", "session", session.ID, "path", session.Clip.Path, "error", err)
	return fmt.Errorf("%w: %s: %w", ErrPlayback, session.Clip.Name, err)
}

func (c *Controller) reportEmpty() {
	c.printf("No audio files found in %s\n", c.dir)
}

func (c *Controller) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		c.logger.Debug("failed to write notice", "error", err)
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsReportable reports whether err is one of the non-fatal conditions after
// which control returns to the caller.
func IsReportable(err error) bool {
	return errors.Is(err, ErrNoClips) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPlayback) ||
		errors.Is(err, ErrInvalidSelection) ||
		errors.Is(err, audio.ErrBusy)
}
