// Package model defines the core data structures for cliplay.
package model

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Clip is a single playable audio file discovered on disk.
// Clips are rediscovered on every scan and never mutated afterwards.
type Clip struct {
	Name      string    `json:"name" yaml:"name"`
	Path      string    `json:"path" yaml:"path"`
	CreatedAt time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}

// NewClip builds a Clip from a path. Name is the base filename.
func NewClip(path string, createdAt time.Time) Clip {
	return Clip{
		Name:      filepath.Base(path),
		Path:      path,
		CreatedAt: createdAt,
	}
}

// Ext returns the lowercase extension without the leading dot.
func (c Clip) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Path)), ".")
}

// HasCreationTime reports whether the creation time was read for this clip.
func (c Clip) HasCreationTime() bool {
	return !c.CreatedAt.IsZero()
}

// RelativeTime returns a human-readable age such as "5 minutes ago".
func (c Clip) RelativeTime() string {
	if c.CreatedAt.IsZero() {
		return "unknown"
	}
	return humanize.Time(c.CreatedAt)
}
