package library

import (
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the formats the beep decoders can play.
var DefaultExtensions = []string{"wav", "mp3", "ogg"}

// Extensions is a set of recognised file extensions, stored lowercase
// without the leading dot.
type Extensions map[string]struct{}

// NewExtensions builds a set from the given extensions. Leading dots,
// surrounding whitespace and case are normalised; empty values are dropped.
func NewExtensions(exts ...string) Extensions {
	set := make(Extensions, len(exts))
	for _, ext := range exts {
		ext = normaliseExt(ext)
		if ext == "" {
			continue
		}
		set[ext] = struct{}{}
	}
	return set
}

// Add registers additional extensions.
func (e Extensions) Add(exts ...string) {
	for _, ext := range exts {
		if ext = normaliseExt(ext); ext != "" {
			e[ext] = struct{}{}
		}
	}
}

// Matches reports whether the file name carries a recognised extension.
func (e Extensions) Matches(name string) bool {
	_, ok := e[normaliseExt(filepath.Ext(name))]
	return ok
}

// List returns the extensions in sorted order.
func (e Extensions) List() []string {
	out := make([]string, 0, len(e))
	for ext := range e {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

func normaliseExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
