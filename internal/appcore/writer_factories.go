// internal/appcore/writer_factories.go
package appcore

import (
	"io"

	"abtools-core/numbering"
	"abtools/internal/output"
	"abtools/internal/pretty"
	"abtools/internal/writers"
)

// ---------------- Record writer ----------------

type RecordWriterFactory struct {
	Format string
	Layout writers.RecordLayout
}

func NewRecordWriterFactory(format, view string, chain numbering.Chain, header bool) RecordWriterFactory {
	return RecordWriterFactory{Format: format, Layout: writers.RecordLayout{View: view, Chain: chain, Header: header}}
}

// NeedGermline reports whether the view needs germline assignment.
func (w RecordWriterFactory) NeedGermline() bool { return w.Layout.View == output.ViewSpecies }

func (w RecordWriterFactory) Start(out io.Writer, bufSize int) (chan<- output.Record, <-chan error) {
	return writers.StartRecordWriter(out, w.Format, w.Layout, bufSize)
}

// ---------------- Score writer ----------------

type ScoreWriterFactory struct {
	Format string
	Layout writers.ScoreLayout
}

func NewScoreWriterFactory(format string, header, prettyMode, sortOut bool) ScoreWriterFactory {
	return ScoreWriterFactory{Format: format, Layout: writers.ScoreLayout{Header: header, Pretty: prettyMode, Sort: sortOut, Opt: pretty.DefaultOptions}}
}

func (w ScoreWriterFactory) Start(out io.Writer, bufSize int) (chan<- output.Score, <-chan error) {
	return writers.StartScoreWriter(out, w.Format, w.Layout, bufSize)
}
