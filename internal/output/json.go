// internal/output/json.go
package output

import (
	"io"

	"abtools/internal/jsonutil"
)

// WriteJSON writes a single JSON array of v1 records (pretty-indented).
func WriteJSON(w io.Writer, view string, list []Record) error {
	out := make([]any, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPI(view, r))
	}
	return jsonutil.EncodePretty(w, out)
}

// WriteJSONScores writes a single JSON array of v1 similarity scores.
func WriteJSONScores(w io.Writer, list []Score) error {
	out := make([]any, 0, len(list))
	for _, s := range list {
		out = append(out, ToAPIScore(s))
	}
	return jsonutil.EncodePretty(w, out)
}
