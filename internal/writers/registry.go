// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"abtools-core/numbering"
	"abtools/internal/common"
	"abtools/internal/output"
	"abtools/internal/pretty"
)

// RecordLayout describes how numbering records are presented.
type RecordLayout struct {
	View   string
	Chain  numbering.Chain
	Header bool
}

// RecordWriterFunc drains in and writes every record to w.
type RecordWriterFunc func(w io.Writer, l RecordLayout, in <-chan output.Record) error

// ScoreLayout describes how similarity scores are presented.
type ScoreLayout struct {
	Header bool
	Pretty bool // text only: alignment block after each row
	Sort   bool // buffer and order by common.LessScore
	Opt    pretty.Options
}

// ScoreWriterFunc drains in and writes every score to w.
type ScoreWriterFunc func(w io.Writer, l ScoreLayout, in <-chan output.Score) error

// Writer registries (format → handler). Registered in init() blocks.
var (
	RecordWriters = map[string]RecordWriterFunc{}
	ScoreWriters  = map[string]ScoreWriterFunc{}
)

// Register helpers (idempotent last-wins)
func RegisterRecord(format string, fn RecordWriterFunc) { RecordWriters[format] = fn }
func RegisterScore(format string, fn ScoreWriterFunc)   { ScoreWriters[format] = fn }

// StartRecordWriter spins up a writer goroutine for numbering records.
func StartRecordWriter(out io.Writer, format string, l RecordLayout, bufSize int) (chan<- output.Record, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Record, bufSize)
	errCh := make(chan error, 1)
	go func() {
		fn, ok := RecordWriters[format]
		if !ok {
			drain(in)
			errCh <- fmt.Errorf("unknown record format %q (no writer registered)", format)
			return
		}
		errCh <- fn(out, l, in)
	}()
	return in, errCh
}

// sortedScores buffers in, sorts it and replays it on a closed channel.
func sortedScores(in <-chan output.Score) <-chan output.Score {
	var list []output.Score
	for s := range in {
		list = append(list, s)
	}
	common.SortScores(list)
	out := make(chan output.Score, len(list)+1)
	for _, s := range list {
		out <- s
	}
	close(out)
	return out
}

// StartScoreWriter spins up a writer goroutine for similarity scores.
func StartScoreWriter(out io.Writer, format string, l ScoreLayout, bufSize int) (chan<- output.Score, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Score, bufSize)
	errCh := make(chan error, 1)
	go func() {
		fn, ok := ScoreWriters[format]
		if !ok {
			drain(in)
			errCh <- fmt.Errorf("unknown score format %q (no writer registered)", format)
			return
		}
		var src <-chan output.Score = in
		if l.Sort {
			src = sortedScores(in)
		}
		errCh <- fn(out, l, src)
	}()
	return in, errCh
}

func drain[T any](in <-chan T) {
	for range in {
	}
}
