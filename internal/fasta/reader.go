// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry. Seq is upper-cased with line breaks removed.
type Record struct {
	ID   string
	Desc string
	Seq  string
}

// ForEach reads path ("-" for stdin, ".gz" transparently decompressed) and
// calls emit once per record, in file order. It stops at the first error
// from emit or at ctx cancellation.
func ForEach(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := Scan(ctx, rc, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadAll collects every record of path.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var out []Record
	err := ForEach(ctx, path, func(r Record) error {
		out = append(out, r)
		return nil
	})
	return out, err
}

// Scan parses FASTA from r.
func Scan(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		rec  Record
		seq  bytes.Buffer
		open bool
		ln   int
	)
	flush := func() error {
		if !open {
			return nil
		}
		rec.Seq = seq.String()
		seq.Reset()
		return emit(rec)
	}

	for sc.Scan() {
		ln++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			rec = Record{}
			open = true
			fields := strings.SplitN(strings.TrimSpace(string(line[1:])), " ", 2)
			rec.ID = fields[0]
			if len(fields) == 2 {
				rec.Desc = strings.TrimSpace(fields[1])
			}
			continue
		}
		if !open {
			return fmt.Errorf("line %d: sequence data before first header", ln)
		}
		seq.Write(bytes.ToUpper(line))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return flush()
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
