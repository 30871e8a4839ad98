package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/lgtm/internal/review"
)

// JSONWriter outputs the full report as indented JSON. Step responses are
// markdown, so HTML escaping is off to keep `<`, `>` and `&` readable.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
