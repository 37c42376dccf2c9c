package library

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmylchreest/cliplay/internal/model"
)

// Scanner finds audio clips directly inside a directory.
type Scanner struct {
	logger     *slog.Logger
	extensions Extensions
}

// NewScanner creates a scanner for the given extensions.
// An empty set falls back to DefaultExtensions.
func NewScanner(extensions Extensions, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if len(extensions) == 0 {
		extensions = NewExtensions(DefaultExtensions...)
	}

	return &Scanner{
		logger:     logger,
		extensions: extensions,
	}
}

// Extensions returns the recognised extension set.
func (s *Scanner) Extensions() Extensions {
	return s.extensions
}

// DiscoverOption tweaks a single Discover call.
type DiscoverOption func(*discoverOptions)

type discoverOptions struct {
	creationTime bool
}

// WithCreationTime populates Clip.CreatedAt for each discovered clip.
func WithCreationTime() DiscoverOption {
	return func(o *discoverOptions) {
		o.creationTime = true
	}
}

// Discover returns the clips directly inside dir whose extension is
// recognised. The result is in directory order; callers sort it.
// A directory that does not exist yields an empty result, not an error.
func (s *Scanner) Discover(dir string, opts ...DiscoverOption) ([]model.Clip, error) {
	var o discoverOptions
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("clip directory does not exist", "dir", dir)
			return []model.Clip{}, nil
		}
		return nil, fmt.Errorf("failed to read clip directory: %w", err)
	}

	clips := make([]model.Clip, 0, len(entries))
	for _, entry := range entries {
		if !s.extensions.Matches(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		// Follow symlinks so a linked clip counts, but never a directory
		// that happens to be named like one.
		info, err := os.Stat(path)
		if err != nil {
			s.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		var created time.Time
		if o.creationTime {
			created = creationTime(path, info)
		}

		clips = append(clips, model.NewClip(path, created))
	}

	s.logger.Debug("discovered clips", "dir", dir, "count", len(clips))
	return clips, nil
}
