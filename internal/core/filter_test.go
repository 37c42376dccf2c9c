package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cliplay/internal/model"
)

func TestFilter_Since(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clips := []model.Clip{
		model.NewClip("clips/old.wav", now.Add(-48*time.Hour)),
		model.NewClip("clips/undated.wav", time.Time{}),
		model.NewClip("clips/fresh.mp3", now.Add(-10*time.Minute)),
	}

	result := filterAt(clips, FilterOptions{Since: time.Hour}, now)
	require.Len(t, result, 1)
	assert.Equal(t, "fresh.mp3", result[0].Name)

	// No Since keeps undated clips
	assert.Len(t, filterAt(clips, FilterOptions{}, now), 3)
}

func TestFilter_ExtensionAndLimit(t *testing.T) {
	clips := []model.Clip{
		model.NewClip("clips/a.wav", time.Time{}),
		model.NewClip("clips/b.MP3", time.Time{}),
		model.NewClip("clips/c.wav", time.Time{}),
		model.NewClip("clips/d.wav", time.Time{}),
	}

	result := Filter(clips, FilterOptions{Extension: ".WAV", Limit: 2})
	require.Len(t, result, 2)
	assert.Equal(t, "a.wav", result[0].Name)
	assert.Equal(t, "c.wav", result[1].Name)

	result = Filter(clips, FilterOptions{Extension: "mp3"})
	require.Len(t, result, 1)
	assert.Equal(t, "b.MP3", result[0].Name)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		hasError bool
	}{
		{"0", 0, false},
		{"", 0, false},
		{"1h", time.Hour, false},
		{"30m", 30 * time.Minute, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"1w", 7 * 24 * time.Hour, false},
		{"2w", 14 * 24 * time.Hour, false},
		{"invalid", 0, true},
		{"xd", 0, true},
		{"-1d", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseDuration(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
