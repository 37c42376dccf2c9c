package core

import (
	"sort"

	"github.com/jmylchreest/cliplay/internal/model"
)

// SortByPath sorts clips in place, ascending by path.
func SortByPath(clips []model.Clip) {
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].Path < clips[j].Path
	})
}

// Latest returns the clip with the newest creation time.
// Ties resolve to the smallest path so the choice is stable for a given
// directory state. Returns false when clips is empty.
func Latest(clips []model.Clip) (model.Clip, bool) {
	if len(clips) == 0 {
		return model.Clip{}, false
	}

	best := clips[0]
	for _, c := range clips[1:] {
		switch {
		case c.CreatedAt.After(best.CreatedAt):
			best = c
		case c.CreatedAt.Equal(best.CreatedAt) && c.Path < best.Path:
			best = c
		}
	}
	return best, true
}
