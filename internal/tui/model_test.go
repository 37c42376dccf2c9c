package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cliplay/internal/library"
	"github.com/jmylchreest/cliplay/internal/model"
	"github.com/jmylchreest/cliplay/internal/player"
)

type fakeController struct {
	mu       sync.Mutex
	clips    []model.Clip
	played   []string
	calls    []string
	playErr  error
	scanErr  error
	allStats player.BatchResult
}

func (f *fakeController) Directory() string { return "clips" }

func (f *fakeController) Discover(opts ...library.DiscoverOption) ([]model.Clip, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	return f.clips, nil
}

func (f *fakeController) PlayClip(ctx context.Context, clip model.Clip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "clip")
	f.played = append(f.played, clip.Name)
	return f.playErr
}

func (f *fakeController) PlayAll(ctx context.Context) (player.BatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "all")
	return f.allStats, f.playErr
}

func (f *fakeController) PlayLatest(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "latest")
	return f.playErr
}

func testClips() []model.Clip {
	base := time.Now().Add(-time.Hour)
	return []model.Clip{
		model.NewClip("clips/a.wav", base),
		model.NewClip("clips/b.mp3", base.Add(time.Minute)),
	}
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// loadedModel returns a sized model with the clip list populated.
func loadedModel(t *testing.T, c *fakeController) Model {
	t.Helper()
	m := New(context.Background(), c)

	msg := m.Init()()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	updated, _ = updated.(Model).Update(msg)
	return updated.(Model)
}

func TestInit_LoadsClips(t *testing.T) {
	c := &fakeController{clips: testClips()}
	m := loadedModel(t, c)

	assert.Len(t, m.clips, 2)
	assert.Len(t, m.list.Items(), 2)

	item, ok := m.list.Items()[0].(clipItem)
	require.True(t, ok)
	assert.Equal(t, "1. a.wav", item.Title())
	assert.Equal(t, "1 hour ago", item.Description())
	assert.Equal(t, "a.wav", item.FilterValue())
}

func TestInit_ScanErrorSetsStatus(t *testing.T) {
	c := &fakeController{scanErr: errors.New("permission denied")}
	m := New(context.Background(), c)

	_, cmd := m.Update(m.Init()())
	require.NotNil(t, cmd)

	status, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, status.isErr)
	assert.Contains(t, status.text, "permission denied")
}

func TestEnter_PlaysSelectedClip(t *testing.T) {
	c := &fakeController{clips: testClips()}
	m := loadedModel(t, c)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.playing)
	assert.Equal(t, "a.wav", m.nowPlaying)
	assert.Contains(t, m.View(), "Playing a.wav")

	done, ok := cmd().(playDoneMsg)
	require.True(t, ok)
	assert.Equal(t, []string{"a.wav"}, c.played)

	updated, _ = m.Update(done)
	m = updated.(Model)
	assert.False(t, m.playing)
	assert.Empty(t, m.nowPlaying)
}

func TestPlayKeysIgnoredWhilePlaying(t *testing.T) {
	c := &fakeController{clips: testClips()}
	m := loadedModel(t, c)

	updated, cmd := m.Update(runeKey("L"))
	m = updated.(Model)
	require.NotNil(t, cmd)

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEnter}, runeKey("a"), runeKey("L")} {
		_, again := m.Update(msg)
		assert.Nil(t, again)
	}

	cmd()
	assert.Equal(t, []string{"latest"}, c.calls)
}

func TestLowerL_PagesInsteadOfPlaying(t *testing.T) {
	c := &fakeController{clips: testClips()}
	m := loadedModel(t, c)

	updated, _ := m.Update(runeKey("l"))
	m = updated.(Model)
	assert.False(t, m.playing)
	assert.Empty(t, c.calls)
}

func TestPlayAll_ReportsBatch(t *testing.T) {
	c := &fakeController{clips: testClips(), allStats: player.BatchResult{Total: 2, Played: 1, Failed: 1}}
	m := loadedModel(t, c)

	updated, cmd := m.Update(runeKey("a"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, "all clips", m.nowPlaying)

	_, statusCmd := m.Update(cmd())
	require.NotNil(t, statusCmd)

	status, ok := statusCmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, status.isErr)
	assert.Equal(t, "Played 1 of 2 clips (1 failed)", status.text)
}

func TestDescribePlayback(t *testing.T) {
	tests := []struct {
		name    string
		msg     playDoneMsg
		want    string
		wantErr bool
	}{
		{"single ok", playDoneMsg{label: "a.wav"}, "Finished a.wav", false},
		{"no clips", playDoneMsg{label: "latest clip", err: player.ErrNoClips}, "No audio files found", true},
		{"failure", playDoneMsg{label: "a.wav", err: errors.New("boom")}, "Error playing a.wav: boom", true},
		{"batch ok", playDoneMsg{label: "all clips", result: &player.BatchResult{Total: 3, Played: 3}}, "Played 3 clips", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := describePlayback(tt.msg)
			assert.Equal(t, tt.want, text)
			assert.Equal(t, tt.wantErr, isErr)
		})
	}
}

func TestStatusClears(t *testing.T) {
	c := &fakeController{clips: testClips()}
	m := loadedModel(t, c)

	updated, cmd := m.Update(statusMsg{text: "hello"})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "hello")

	updated, _ = m.Update(clearStatusMsg{})
	m = updated.(Model)
	assert.Empty(t, m.statusMsg)
}

func TestQuitAndHelp(t *testing.T) {
	c := &fakeController{clips: testClips()}
	m := loadedModel(t, c)

	_, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	updated, _ := m.Update(runeKey("?"))
	assert.True(t, updated.(Model).showHelp)
}

func TestRefresh_Rescans(t *testing.T) {
	c := &fakeController{clips: testClips()}
	m := loadedModel(t, c)

	c.clips = append(c.clips, model.NewClip("clips/c.ogg", time.Now()))
	_, cmd := m.Update(runeKey("r"))
	require.NotNil(t, cmd)

	updated, _ := m.Update(cmd())
	assert.Len(t, updated.(Model).list.Items(), 3)
}
