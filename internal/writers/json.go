// internal/writers/json.go
package writers

import (
	"encoding/json"
	"io"

	"abtools/internal/jsonlutil"
	"abtools/internal/output"
)

func init() {
	RegisterRecord(output.FormatJSON, func(w io.Writer, l RecordLayout, in <-chan output.Record) error {
		var buf []output.Record
		for r := range in {
			buf = append(buf, r)
		}
		return output.WriteJSON(w, l.View, buf)
	})
	RegisterScore(output.FormatJSON, func(w io.Writer, _ ScoreLayout, in <-chan output.Score) error {
		var buf []output.Score
		for s := range in {
			buf = append(buf, s)
		}
		return output.WriteJSONScores(w, buf)
	})
	RegisterRecord(output.FormatJSONL, func(w io.Writer, l RecordLayout, in <-chan output.Record) error {
		dst, done := StartRecordJSONLWriter(w, l.View, cap(in))
		return pump(in, dst, done)
	})
	RegisterScore(output.FormatJSONL, func(w io.Writer, _ ScoreLayout, in <-chan output.Score) error {
		dst, done := StartScoreJSONLWriter(w, cap(in))
		return pump(in, dst, done)
	})
}

// StartRecordJSONLWriter streams each record as one JSON line (v1).
func StartRecordJSONLWriter(out io.Writer, view string, bufSize int) (chan<- output.Record, <-chan error) {
	return jsonlutil.Start[output.Record](out, bufSize,
		func(enc *json.Encoder, r output.Record) error {
			return enc.Encode(output.ToAPI(view, r))
		},
		IsBrokenPipe,
	)
}

// StartScoreJSONLWriter streams each score as one JSON line (v1).
func StartScoreJSONLWriter(out io.Writer, bufSize int) (chan<- output.Score, <-chan error) {
	return jsonlutil.Start[output.Score](out, bufSize,
		func(enc *json.Encoder, s output.Score) error {
			return enc.Encode(output.ToAPIScore(s))
		},
		IsBrokenPipe,
	)
}

// pump forwards in to a jsonlutil writer and waits for it. A write failure
// stops forwarding; the rest of in is drained.
func pump[T any](in <-chan T, dst chan<- T, done <-chan error) error {
	for v := range in {
		select {
		case dst <- v:
		case err := <-done:
			drain(in)
			return err
		}
	}
	close(dst)
	return <-done
}
