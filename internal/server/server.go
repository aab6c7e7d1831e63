// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	uuid "github.com/satori/go.uuid"

	"abtools-core/numbering"
	"abtools/internal/logging"
	"abtools/internal/version"
)

var logger = logging.GetLogger("abtools.server")

// RequestIDHeader carries the per-request ID, echoed when the client sets it.
const RequestIDHeader = "X-Request-ID"

// Options configure a Server.
type Options struct {
	Scheme   string // default scheme; numbering.DefaultScheme when empty
	Chain    numbering.Chain
	Species  []string // default germline species
	MaxBatch int      // sequences per request; 0 = 1000
	MaxBody  int64    // request body bytes; 0 = 4 MiB
}

// Server routes the v1 API onto a numbering engine.
type Server struct {
	eng     numbering.Engine
	opts    Options
	router  *mux.Router
	Metrics *Metrics
}

// New builds the router for eng.
func New(eng numbering.Engine, opts Options) *Server {
	if opts.Scheme == "" {
		opts.Scheme = numbering.DefaultScheme
	}
	if opts.Chain == "" {
		opts.Chain = numbering.Heavy
	}
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = 1000
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = 4 << 20
	}
	s := &Server{eng: eng, opts: opts, router: mux.NewRouter(), Metrics: newMetrics()}
	if c, ok := eng.(cacheStats); ok {
		s.Metrics.watchCache(c)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.requestID)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/number", s.instrument("number", s.handleNumber)).Methods(http.MethodPost)
	v1.HandleFunc("/numbered", s.instrument("numbered", s.handleNumbered)).Methods(http.MethodPost)
	v1.HandleFunc("/regions", s.instrument("regions", s.handleRegions)).Methods(http.MethodPost)
	v1.HandleFunc("/species", s.instrument("species", s.handleSpecies)).Methods(http.MethodPost)
	v1.HandleFunc("/similarity", s.instrument("similarity", s.handleSimilarity)).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

type ctxKey int

const requestIDKey ctxKey = 0

// RequestID returns the ID assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.Must(uuid.NewV4()).String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		r.Body = http.MaxBytesReader(sw, r.Body, s.opts.MaxBody)
		h(sw, r)
		s.Metrics.Requests.WithLabelValues(endpoint, fmt.Sprint(sw.code)).Inc()
		logger.Debugf("%s %s %d %s [%s]", r.Method, r.URL.Path, sw.code, time.Since(start), RequestID(r.Context()))
	}
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Infof("abserve %s listening on %s", version.Version, addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	logger.Infof("abserve stopped")
	return ctx.Err()
}
