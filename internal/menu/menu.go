package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jmylchreest/cliplay/internal/player"
)

// Menu is the interactive console driver. It reads one choice per line
// until Exit is selected or input ends. No failure ends the loop.
type Menu struct {
	controller Controller
	dispatcher *Dispatcher
	out        io.Writer
	logger     *slog.Logger
}

// New creates a menu writing prompts to out.
func New(c Controller, out io.Writer, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{
		controller: c,
		dispatcher: NewDispatcher(c),
		out:        out,
		logger:     logger,
	}
}

// Run reads choices from in until Exit, EOF, or ctx is cancelled.
// It returns nil on Exit and EOF.
func (m *Menu) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		line, ok := m.readLine(scanner, "Enter choice (1-5): ")
		if !ok {
			m.println("Goodbye!")
			return scanner.Err()
		}

		cmd, err := ParseChoice(line)
		if err != nil {
			m.println("Invalid choice. Please try again.")
			continue
		}

		if cmd.Kind == PlayByIndex {
			if err := m.playByIndex(ctx, scanner); err != nil && !m.handle(err) {
				return err
			}
			continue
		}

		exit, err := m.dispatcher.Dispatch(ctx, cmd)
		if exit {
			m.println("Goodbye!")
			return nil
		}
		if err != nil && !m.handle(err) {
			return err
		}
	}
}

// playByIndex lists the clips, then prompts for a number and plays it.
func (m *Menu) playByIndex(ctx context.Context, scanner *bufio.Scanner) error {
	clips, err := m.controller.ListFiles(ctx)
	if err != nil || len(clips) == 0 {
		return err
	}

	line, ok := m.readLine(scanner, "Enter file number to play: ")
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		m.println("Please enter a valid number")
		return nil
	}

	err = m.controller.PlayIndex(ctx, clips, n)
	if errors.Is(err, player.ErrInvalidSelection) {
		m.println("Invalid file number")
		return nil
	}
	return err
}

// handle logs a non-fatal error and reports whether the loop may continue.
func (m *Menu) handle(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if player.IsReportable(err) {
		m.logger.Debug("menu action finished with notice", "error", err)
		return true
	}
	// Unexpected errors (unreadable directory) are shown but never end the loop
	m.println(fmt.Sprintf("Error: %v", err))
	m.logger.Warn("menu action failed", "error", err)
	return true
}

func (m *Menu) printMenu() {
	m.println("\nAudio Player Menu:")
	for i, k := range Kinds() {
		m.println(fmt.Sprintf("%d. %s", i+1, k))
	}
}

func (m *Menu) readLine(scanner *bufio.Scanner, prompt string) (string, bool) {
	_, _ = fmt.Fprint(m.out, prompt)
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}
