// Package output - JSON encoding
package output

import (
	"encoding/json"
	"io"
)

type jsonFormatter struct {
	opts Options
}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) Render(w io.Writer, report *Report) error {
	fillWords(report, f.opts)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}
