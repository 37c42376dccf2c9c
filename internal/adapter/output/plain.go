package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/cliplay/internal/model"
)

// PlainFormatter formats clips as a numbered list, matching the menu listing.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{
		opts:     opts,
		template: parseTemplate("plain", opts.Template),
	}
}

// Format writes clips as plain text, one per line.
func (f *PlainFormatter) Format(w io.Writer, clips []model.Clip) error {
	for i, c := range clips {
		if err := f.formatClip(w, i+1, c); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatClip(w io.Writer, index int, c model.Clip) error {
	if f.template != nil {
		data := templateData{
			Index:        index,
			Clip:         c,
			RelativeTime: c.RelativeTime(),
		}
		if err := f.template.Execute(w, data); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("%d. ", index))
	}

	sb.WriteString(c.Name)

	if f.opts.ShowAge && c.HasCreationTime() {
		sb.WriteString(fmt.Sprintf(" (%s)", c.RelativeTime()))
	}

	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
