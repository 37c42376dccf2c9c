// Package output provides output formatters for clip listings.
package output

import (
	"io"
	"text/template"
	"time"

	"github.com/jmylchreest/cliplay/internal/model"
)

// Formatter formats clips for output.
type Formatter interface {
	// Format writes formatted clips to the writer.
	Format(w io.Writer, clips []model.Clip) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Custom template for plain/dmenu format
	ShowIndex bool   // Show 1-based index prefix
	ShowAge   bool   // Show humanized creation age
	Separator string // Field separator for dmenu format
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex: true,
		ShowAge:   false,
		Separator: " | ",
	}
}

// entry is the serialised form of a clip in structured formats.
type entry struct {
	Index     int    `json:"index" yaml:"index"`
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path" yaml:"path"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Age       string `json:"age,omitempty" yaml:"age,omitempty"`
}

func toEntries(clips []model.Clip) []entry {
	entries := make([]entry, 0, len(clips))
	for i, c := range clips {
		e := entry{
			Index: i + 1,
			Name:  c.Name,
			Path:  c.Path,
		}
		if c.HasCreationTime() {
			e.CreatedAt = c.CreatedAt.Format(time.RFC3339)
			e.Age = c.RelativeTime()
		}
		entries = append(entries, e)
	}
	return entries
}

// templateData provides data for custom templates.
type templateData struct {
	Index        int
	Clip         model.Clip
	RelativeTime string
}

// parseTemplate returns nil when text is empty or invalid.
func parseTemplate(name, text string) *template.Template {
	if text == "" {
		return nil
	}
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil
	}
	return tmpl
}
