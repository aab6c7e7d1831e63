// internal/server/handlers.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"abtools-core/numbering"
	"abtools-core/regions"
	"abtools-core/similarity"
	"abtools/internal/common"
	"abtools/internal/jsonutil"
	"abtools/internal/output"
	"abtools/internal/version"
	"abtools/pkg/api"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := jsonutil.Encode(w, v); err != nil {
		logger.Warningf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	if code == http.StatusBadGateway {
		logger.Errorf("%s %s: %v [%s]", r.Method, r.URL.Path, err, RequestID(r.Context()))
	}
	writeJSON(w, code, api.ErrorV1{Error: err.Error(), RequestID: RequestID(r.Context())})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version.Version})
}

// numberCall is a decoded numbering request.
type numberCall struct {
	queries []numbering.Query
	single  bool
	opts    numbering.Options
}

func (s *Server) decodeNumber(r *http.Request, germline bool) (numberCall, error) {
	var req api.NumberRequestV1
	if err := jsonutil.DecodeStrict(r.Body, &req); err != nil {
		return numberCall{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	var call numberCall
	switch {
	case req.Seq != "" && len(req.Sequences) > 0:
		return call, fmt.Errorf("%w: seq conflicts with sequences", errBadRequest)
	case req.Seq != "":
		call.single = true
		call.queries = []numbering.Query{{Seq: req.Seq}}
	case len(req.Sequences) > 0:
		if len(req.Sequences) > s.opts.MaxBatch {
			return call, fmt.Errorf("%w: %d sequences exceed the limit of %d", errBadRequest, len(req.Sequences), s.opts.MaxBatch)
		}
		for i, sq := range req.Sequences {
			name := sq.Name
			if name == "" {
				name = fmt.Sprintf("seq%d", i+1)
			}
			call.queries = append(call.queries, numbering.Query{Name: name, Seq: sq.Seq})
		}
	default:
		return call, fmt.Errorf("%w: provide seq or sequences", errBadRequest)
	}

	call.opts = numbering.Options{Scheme: req.Scheme, Chain: s.opts.Chain, Germline: req.Germline || germline, Species: req.Species}
	if call.opts.Scheme == "" {
		call.opts.Scheme = s.opts.Scheme
	}
	call.opts.Scheme = strings.ToLower(call.opts.Scheme)
	if req.Chain != "" {
		c, err := numbering.ParseChain(req.Chain)
		if err != nil {
			return call, err
		}
		call.opts.Chain = c
	}
	if call.opts.Germline && len(call.opts.Species) == 0 {
		call.opts.Species = s.opts.Species
	}
	call.opts.Species = common.UniqueLower(call.opts.Species)
	return call, nil
}

// run numbers the call. A single sequence without a domain is an error;
// in batch mode it is reported per item.
func (s *Server) run(ctx context.Context, call numberCall) ([]numbering.Result, error) {
	start := time.Now()
	res, err := numbering.RunBatch(ctx, s.eng, call.queries, call.opts)
	s.Metrics.Engine.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	for _, r := range res {
		if r.OK() {
			s.Metrics.Sequences.WithLabelValues("numbered").Inc()
		} else {
			s.Metrics.Sequences.WithLabelValues("invalid").Inc()
		}
	}
	if call.single && !res[0].OK() {
		return nil, &numbering.InvalidSequenceError{Seq: res[0].Seq}
	}
	return res, nil
}

func invalid(r numbering.Result) string {
	return (&numbering.InvalidSequenceError{Seq: r.Seq}).Error()
}

// respond writes out[0] for single-sequence calls and the whole slice
// otherwise.
func respond[T any](w http.ResponseWriter, call numberCall, out []T) {
	if call.single {
		writeJSON(w, http.StatusOK, out[0])
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) record(call numberCall, r numbering.Result) output.Record {
	return output.Record{Scheme: call.opts.Scheme, Chain: call.opts.Chain, Result: r}
}

func (s *Server) handleNumber(w http.ResponseWriter, r *http.Request) {
	call, err := s.decodeNumber(r, false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.run(r.Context(), call)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]api.NumberingV1, len(res))
	for i, x := range res {
		out[i] = output.ToAPINumbering(s.record(call, x))
	}
	respond(w, call, out)
}

func (s *Server) handleNumbered(w http.ResponseWriter, r *http.Request) {
	call, err := s.decodeNumber(r, false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.run(r.Context(), call)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]api.NumberedV1, len(res))
	for i, x := range res {
		out[i] = output.ToAPINumbered(s.record(call, x))
		if !x.OK() {
			out[i].Error = invalid(x)
		}
	}
	respond(w, call, out)
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	call, err := s.decodeNumber(r, false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := regions.Lookup(call.opts.Scheme, call.opts.Chain); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.run(r.Context(), call)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]api.RegionsV1, len(res))
	for i, x := range res {
		rec := s.record(call, x)
		rs, err := regions.FromResult(x, call.opts.Scheme, call.opts.Chain)
		if err != nil && !errors.Is(err, numbering.ErrInvalidSequence) {
			writeError(w, r, err)
			return
		}
		rec.Regions = rs
		out[i] = output.ToAPIRegions(rec)
		if err != nil {
			out[i].Regions = nil
			out[i].Error = err.Error()
		}
	}
	respond(w, call, out)
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	call, err := s.decodeNumber(r, true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.run(r.Context(), call)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]api.SpeciesV1, len(res))
	for i, x := range res {
		out[i] = output.ToAPISpecies(s.record(call, x))
		if !x.OK() {
			out[i].Error = invalid(x)
		}
	}
	respond(w, call, out)
}

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	var req api.SimilarityRequestV1
	if err := jsonutil.DecodeStrict(r.Body, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	mode, err := similarity.ParseMode(req.Mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := similarity.Align(req.A, req.B, mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.ToAPIScore(output.Score{A: "a", B: "b", Mode: mode, Counts: c}))
}
