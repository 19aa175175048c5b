// Package output provides result report formatters.
package output

import (
	"encoding/json"
	"io"

	"github.com/inodb/sexcheck/internal/sexinfer"
)

// ResultWriter renders a structured run result.
type ResultWriter interface {
	Write(res *sexinfer.Result) error
	Flush() error
}

// JSONWriter writes the result as indented JSON, the shape downstream
// consumers read as output.json.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter creates a JSON result writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// Write renders the result. It re-encodes through a map so keys come
// out sorted, matching the order downstream consumers already parse.
func (jw *JSONWriter) Write(res *sexinfer.Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	var keyed map[string]any
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return err
	}

	out, err := json.MarshalIndent(keyed, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = jw.w.Write(out)
	return err
}

// Flush is a no-op for the unbuffered JSON writer.
func (jw *JSONWriter) Flush() error {
	return nil
}
