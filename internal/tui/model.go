// Package tui provides the BubbleTea-based clip browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/cliplay/internal/library"
	"github.com/jmylchreest/cliplay/internal/model"
	"github.com/jmylchreest/cliplay/internal/player"
)

// Controller is the subset of *player.Controller the browser uses.
type Controller interface {
	Directory() string
	Discover(opts ...library.DiscoverOption) ([]model.Clip, error)
	PlayClip(ctx context.Context, clip model.Clip) error
	PlayAll(ctx context.Context) (player.BatchResult, error)
	PlayLatest(ctx context.Context) error
}

// Model is the main TUI model.
type Model struct {
	ctx        context.Context
	controller Controller

	// Components
	list list.Model
	help help.Model
	keys KeyMap

	// State
	clips      []model.Clip
	playing    bool
	nowPlaying string
	showHelp   bool
	width      int
	height     int
	ready      bool

	// Status message
	statusMsg string
	statusErr bool
}

// clipItem wraps a clip for the list component.
type clipItem struct {
	clip  model.Clip
	index int
}

func (i clipItem) Title() string {
	return fmt.Sprintf("%d. %s", i.index, i.clip.Name)
}

func (i clipItem) Description() string {
	return i.clip.RelativeTime()
}

func (i clipItem) FilterValue() string {
	return i.clip.Name
}

// New creates a new TUI model.
func New(ctx context.Context, c Controller) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Clips in " + c.Directory()
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return Model{
		ctx:        ctx,
		controller: c,
		list:       l,
		help:       help.New(),
		keys:       DefaultKeyMap(),
	}
}

// Init loads the clip list.
func (m Model) Init() tea.Cmd {
	return m.loadClips
}

type clipsLoadedMsg struct {
	clips []model.Clip
	err   error
}

// playDoneMsg reports the end of a playback command.
type playDoneMsg struct {
	label  string
	result *player.BatchResult
	err    error
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// loadClips scans the directory with creation times for the age column.
func (m Model) loadClips() tea.Msg {
	clips, err := m.controller.Discover(library.WithCreationTime())
	return clipsLoadedMsg{clips: clips, err: err}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Let the list consume keys while the filter input is open
		if m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case clipsLoadedMsg:
		if msg.err != nil {
			return m, setStatus("Scan failed: "+msg.err.Error(), true)
		}
		m.clips = msg.clips
		m.list.SetItems(buildListItems(msg.clips))
		return m, nil

	case playDoneMsg:
		m.playing = false
		m.nowPlaying = ""
		return m, setStatus(describePlayback(msg))

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadClips

	case key.Matches(msg, m.keys.Play):
		item, ok := m.list.SelectedItem().(clipItem)
		if !ok || m.playing {
			return m, nil
		}
		m.playing = true
		m.nowPlaying = item.clip.Name
		return m, m.playClip(item.clip)

	case key.Matches(msg, m.keys.PlayAll):
		if m.playing {
			return m, nil
		}
		m.playing = true
		m.nowPlaying = "all clips"
		return m, m.playAll()

	case key.Matches(msg, m.keys.PlayLatest):
		if m.playing {
			return m, nil
		}
		m.playing = true
		m.nowPlaying = "latest clip"
		return m, m.playLatest()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) playClip(clip model.Clip) tea.Cmd {
	return func() tea.Msg {
		return playDoneMsg{label: clip.Name, err: m.controller.PlayClip(m.ctx, clip)}
	}
}

func (m Model) playAll() tea.Cmd {
	return func() tea.Msg {
		result, err := m.controller.PlayAll(m.ctx)
		return playDoneMsg{label: "all clips", result: &result, err: err}
	}
}

func (m Model) playLatest() tea.Cmd {
	return func() tea.Msg {
		return playDoneMsg{label: "latest clip", err: m.controller.PlayLatest(m.ctx)}
	}
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// describePlayback turns a finished playback into a status line.
func describePlayback(msg playDoneMsg) (string, bool) {
	switch {
	case errors.Is(msg.err, player.ErrNoClips):
		return "No audio files found", true
	case msg.err != nil:
		return "Error playing " + msg.label + ": " + msg.err.Error(), true
	case msg.result != nil && msg.result.Failed > 0:
		return fmt.Sprintf("Played %d of %d clips (%d failed)", msg.result.Played, msg.result.Total, msg.result.Failed), true
	case msg.result != nil:
		return fmt.Sprintf("Played %d clips", msg.result.Played), false
	default:
		return "Finished " + msg.label, false
	}
}

func buildListItems(clips []model.Clip) []list.Item {
	items := make([]list.Item, 0, len(clips))
	for i, c := range clips {
		items = append(items, clipItem{clip: c, index: i + 1})
	}
	return items
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	s := m.list.View() + "\n"

	switch {
	case m.playing:
		s += lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true).
			Render("▶ Playing " + m.nowPlaying)
	case m.statusMsg != "":
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += statusStyle.Render(m.statusMsg)
	case m.showHelp:
		s += m.help.FullHelpView(m.keys.FullHelp())
	default:
		s += m.help.ShortHelpView(m.keys.ShortHelp())
	}

	return s
}

// RunOptions configures the TUI.
type RunOptions struct {
	Context    context.Context
	Controller Controller
}

// Run starts the TUI and blocks until it exits.
func Run(opts RunOptions) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := New(ctx, opts.Controller)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
