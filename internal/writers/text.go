// internal/writers/text.go
package writers

import (
	"fmt"
	"io"

	"abtools/internal/output"
	"abtools/internal/pretty"
)

func init() {
	RegisterRecord(output.FormatText, writeRecordText)
	RegisterScore(output.FormatText, writeScoreText)
}

func writeRecordText(w io.Writer, l RecordLayout, in <-chan output.Record) error {
	if l.Header {
		h, err := output.TextHeader(l.View, l.Chain)
		if err != nil {
			drain(in)
			return err
		}
		if _, err := fmt.Fprintln(w, h); err != nil {
			drain(in)
			return err
		}
	}
	for r := range in {
		if err := output.WriteTextRecord(w, l.View, r); err != nil {
			drain(in)
			return err
		}
	}
	return nil
}

func writeScoreText(w io.Writer, l ScoreLayout, in <-chan output.Score) error {
	if l.Header {
		if _, err := fmt.Fprintln(w, output.ScoreHeader); err != nil {
			drain(in)
			return err
		}
	}
	for s := range in {
		if err := output.WriteTextScore(w, s); err != nil {
			drain(in)
			return err
		}
		if !l.Pretty {
			continue
		}
		if _, err := io.WriteString(w, pretty.RenderAlignment(s.A, s.B, s.Alignment(), l.Opt)); err != nil {
			drain(in)
			return err
		}
	}
	return nil
}
