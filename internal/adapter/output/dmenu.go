package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/cliplay/internal/model"
)

// DmenuFormatter formats clips for dmenu/rofi/fuzzel pickers.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	return &DmenuFormatter{
		opts:     opts,
		template: parseTemplate("dmenu", opts.Template),
	}
}

// Format writes clips in dmenu format (one per line).
func (f *DmenuFormatter) Format(w io.Writer, clips []model.Clip) error {
	for i, c := range clips {
		if _, err := fmt.Fprintln(w, f.formatLine(i+1, c)); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single clip line: [index] name [age].
func (f *DmenuFormatter) formatLine(index int, c model.Clip) string {
	if f.template != nil {
		var buf strings.Builder
		data := templateData{
			Index:        index,
			Clip:         c,
			RelativeTime: c.RelativeTime(),
		}
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	var parts []string
	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", index))
	}
	parts = append(parts, c.Name)
	if f.opts.ShowAge && c.HasCreationTime() {
		parts = append(parts, c.RelativeTime())
	}

	return strings.Join(parts, sep)
}
