// Package core provides filtering, sorting, and lookup logic for clips.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/cliplay/internal/model"
)

// FilterOptions specifies criteria for filtering clips.
type FilterOptions struct {
	Since     time.Duration // Only clips created after now-since (0=all)
	Extension string        // Only clips with this extension, without dot
	Limit     int           // Maximum results (0=unlimited)
}

// Filter filters clips based on the provided options, keeping their order.
// Clips without a creation time never pass a Since filter.
func Filter(clips []model.Clip, opts FilterOptions) []model.Clip {
	return filterAt(clips, opts, time.Now())
}

func filterAt(clips []model.Clip, opts FilterOptions, now time.Time) []model.Clip {
	ext := strings.ToLower(strings.TrimPrefix(opts.Extension, "."))
	result := make([]model.Clip, 0, len(clips))

	for _, c := range clips {
		if opts.Since > 0 {
			if !c.HasCreationTime() || c.CreatedAt.Before(now.Add(-opts.Since)) {
				continue
			}
		}

		if ext != "" && c.Ext() != ext {
			continue
		}

		result = append(result, c)
	}

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}

	return result
}

// ParseDuration parses a duration string with day and week suffixes.
// Supports: 90s, 48h, 7d, 1w, 0 (no limit)
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}

	units := []struct {
		suffix string
		size   time.Duration
	}{
		{"d", 24 * time.Hour},
		{"w", 7 * 24 * time.Hour},
	}
	for _, u := range units {
		if countStr, found := strings.CutSuffix(s, u.suffix); found {
			count, err := strconv.Atoi(countStr)
			if err != nil || count < 0 {
				return 0, fmt.Errorf("invalid duration: %s", s)
			}
			return time.Duration(count) * u.size, nil
		}
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s", s)
	}
	return d, nil
}
