package core

import (
	"strings"

	"github.com/jmylchreest/cliplay/internal/model"
)

// LookupByIndex finds a clip by its index (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(clips []model.Clip, index int) *model.Clip {
	// Convert to 0-based
	idx := index - 1
	if idx < 0 || idx >= len(clips) {
		return nil
	}
	return &clips[idx]
}

// LookupByName finds a clip by its base filename.
// Returns nil if not found.
func LookupByName(clips []model.Clip, name string) *model.Clip {
	for i := range clips {
		if clips[i].Name == name {
			return &clips[i]
		}
	}
	return nil
}

// Search returns the clips whose name contains term.
// Case-insensitive substring match; an empty term returns clips unchanged.
func Search(clips []model.Clip, term string) []model.Clip {
	if term == "" {
		return clips
	}

	term = strings.ToLower(term)
	var result []model.Clip

	for _, c := range clips {
		if strings.Contains(strings.ToLower(c.Name), term) {
			result = append(result, c)
		}
	}

	return result
}
