package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/cliplay/internal/model"
)

// JSONFormatter formats clips as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes clips as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, clips []model.Clip) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toEntries(clips))
}
