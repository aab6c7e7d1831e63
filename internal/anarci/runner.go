// internal/anarci/runner.go
package anarci

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"abtools-core/numbering"
	"abtools/internal/logging"
)

var logger = logging.GetLogger("abtools.anarci")

// DefaultPath is the executable looked up on PATH when Runner.Path is empty.
const DefaultPath = "ANARCI"

// ErrNotFound is returned when the ANARCI executable cannot be located.
var ErrNotFound = errors.New("anarci executable not found")

// Runner is a numbering.Engine backed by the ANARCI executable.
type Runner struct {
	Path    string        // executable; DefaultPath when empty
	NCPU    int           // passed as --ncpu when > 1
	Timeout time.Duration // per invocation; 0 = none
	TempDir string        // for query FASTA files; os.TempDir() when empty
}

// New returns a Runner for path.
func New(path string) *Runner { return &Runner{Path: path} }

var _ numbering.Engine = (*Runner)(nil)

func (r *Runner) path() string {
	if r.Path == "" {
		return DefaultPath
	}
	return r.Path
}

// LookPath verifies that the executable can be found.
func (r *Runner) LookPath() (string, error) {
	p, err := exec.LookPath(r.path())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, r.path())
	}
	return p, nil
}

// Number writes the non-empty queries to a FASTA file, runs ANARCI on it
// (once, or once per species when germlines are assigned against several)
// and maps the report back onto the queries in order. Empty queries never reach
// ANARCI and come back without domains.
func (r *Runner) Number(ctx context.Context, queries []numbering.Query, req numbering.Request) ([]numbering.Result, error) {
	out := make([]numbering.Result, len(queries))
	var sent []int
	for i, q := range queries {
		out[i] = numbering.Result{Name: q.Name, Seq: q.Seq}
		if q.Seq != "" {
			sent = append(sent, i)
		}
	}
	if len(sent) == 0 {
		return out, nil
	}

	fn, err := r.writeQueries(queries, sent)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(fn) }()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	if !req.Germline || len(req.Species) <= 1 {
		recs, err := r.run(ctx, fn, req, len(sent))
		if err != nil {
			return nil, err
		}
		for k, i := range sent {
			out[i].Domains = recs[k].Domains
		}
		return out, nil
	}

	// One call per allowed species; each query keeps the domains whose
	// germline V identity is highest, earlier species winning ties.
	for _, sp := range req.Species {
		one := req
		one.Species = []string{sp}
		recs, err := r.run(ctx, fn, one, len(sent))
		if err != nil {
			return nil, err
		}
		for k, i := range sent {
			if betterGermline(out[i].Domains, recs[k].Domains) {
				out[i].Domains = recs[k].Domains
			}
		}
	}
	return out, nil
}

// run executes ANARCI once on the query file fn and parses its report.
func (r *Runner) run(ctx context.Context, fn string, req numbering.Request, n int) ([]numbering.Result, error) {
	args := Args(fn, req, r.NCPU)
	logger.Debugf("running %s %s", r.path(), strings.Join(args, " "))
	start := time.Now()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.path(), args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("anarci: %w", ctx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, r.path())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("anarci: %w", err)
		}
		return nil, fmt.Errorf("anarci: %w: %s", err, msg)
	}
	logger.Debugf("numbered %d sequences in %s", n, time.Since(start))

	recs, err := Parse(&stdout)
	if err != nil {
		return nil, err
	}
	if len(recs) != n {
		return nil, fmt.Errorf("anarci: report has %d records for %d sequences", len(recs), n)
	}
	return recs, nil
}

func betterGermline(cur, cand []numbering.Domain) bool {
	if len(cand) == 0 {
		return false
	}
	if len(cur) == 0 {
		return true
	}
	return vIdentity(cand[0]) > vIdentity(cur[0])
}

func vIdentity(d numbering.Domain) float64 {
	if d.Germlines == nil {
		return -1
	}
	return d.Germlines.VIdentity
}

// writeQueries writes one FASTA record per sent query. Headers are the
// query's batch index so that user names never reach ANARCI's parser.
func (r *Runner) writeQueries(queries []numbering.Query, sent []int) (string, error) {
	fh, err := os.CreateTemp(r.TempDir, "abtools-*.fa")
	if err != nil {
		return "", err
	}
	bw := bufio.NewWriter(fh)
	for _, i := range sent {
		if _, err := fmt.Fprintf(bw, ">q%d\n%s\n", i, queries[i].Seq); err != nil {
			_ = fh.Close()
			_ = os.Remove(fh.Name())
			return "", err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		_ = os.Remove(fh.Name())
		return "", err
	}
	if err := fh.Close(); err != nil {
		_ = os.Remove(fh.Name())
		return "", err
	}
	return fh.Name(), nil
}
