package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/cliplay/internal/model"
)

// YAMLFormatter formats clips as a YAML sequence.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes clips as YAML.
func (f *YAMLFormatter) Format(w io.Writer, clips []model.Clip) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(toEntries(clips)); err != nil {
		return err
	}
	return encoder.Close()
}
