// Package input reads clip selections from pickers and pipes.
package input

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmylchreest/cliplay/internal/core"
	"github.com/jmylchreest/cliplay/internal/model"
)

// DefaultSeparator matches the dmenu listing separator.
const DefaultSeparator = " | "

// Selection identifies one clip picked from a listing. Name wins over
// Index when both are set and the name still resolves.
type Selection struct {
	Raw   string
	Index int // 1-based, 0 when absent
	Name  string
}

// SelectionReader parses selections from a stream.
type SelectionReader struct {
	reader    io.Reader
	separator string
}

// NewStdinReader creates a SelectionReader over os.Stdin.
func NewStdinReader() *SelectionReader {
	return NewReader(os.Stdin, DefaultSeparator)
}

// NewReader creates a SelectionReader with a custom reader and separator.
func NewReader(r io.Reader, separator string) *SelectionReader {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &SelectionReader{reader: r, separator: separator}
}

// Read reads every selection. Input is either a JSON array as written by
// `cliplay list --format json`, or one listing line per selection in any
// of the plain or dmenu forms.
func (r *SelectionReader) Read(ctx context.Context) ([]Selection, error) {
	data, err := io.ReadAll(r.reader)
	if err != nil {
		return nil, &InputError{Message: "failed to read selections", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		return parseJSONArray(trimmed)
	}

	var selections []Selection
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	for scanner.Scan() {
		if sel, ok := ParseSelection(scanner.Text(), r.separator); ok {
			selections = append(selections, sel)
		}
	}
	if err := scanner.Err(); err != nil {
		return selections, &InputError{Message: "failed to read selections", Err: err}
	}
	return selections, nil
}

// jsonEntry mirrors the fields of the JSON listing that identify a clip.
type jsonEntry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

func parseJSONArray(data []byte) ([]Selection, error) {
	var entries []jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &InputError{Message: "invalid JSON selection", Err: err}
	}

	selections := make([]Selection, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" && e.Index <= 0 {
			continue
		}
		selections = append(selections, Selection{Raw: e.Name, Index: e.Index, Name: e.Name})
	}
	return selections, nil
}

// ParseSelection parses one picker line. Accepted forms:
//
//	3 | take.wav | 5 minutes ago   (dmenu)
//	3. take.wav                    (plain)
//	3                              (bare index)
//	take.wav                       (bare name)
func ParseSelection(line, separator string) (Selection, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Selection{}, false
	}
	sel := Selection{Raw: line}

	if separator != "" && strings.Contains(line, strings.TrimSpace(separator)) {
		parts := strings.Split(line, strings.TrimSpace(separator))
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if idx, err := strconv.Atoi(parts[0]); err == nil && len(parts) > 1 {
			sel.Index = idx
			sel.Name = parts[1]
		} else {
			sel.Name = parts[0]
		}
		return sel, true
	}

	if prefix, rest, found := strings.Cut(line, ". "); found {
		if idx, err := strconv.Atoi(prefix); err == nil {
			sel.Index = idx
			sel.Name = strings.TrimSpace(rest)
			return sel, true
		}
	}

	if idx, err := strconv.Atoi(line); err == nil {
		sel.Index = idx
		return sel, true
	}

	sel.Name = line
	return sel, true
}

// Resolve finds the clip a selection refers to in a listing sorted the
// same way as the one it was picked from. Returns nil if neither the name
// nor the index matches.
func Resolve(clips []model.Clip, sel Selection) *model.Clip {
	if sel.Name != "" {
		if c := core.LookupByName(clips, sel.Name); c != nil {
			return c
		}
	}
	if sel.Index > 0 {
		return core.LookupByIndex(clips, sel.Index)
	}
	return nil
}

// InputError represents a selection input error.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}
