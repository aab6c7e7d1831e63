package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"abtools-core/numbering"
	"abtools-core/numbering/numberingtest"
	"abtools/internal/numcache"
	"abtools/pkg/api"
)

func post(t *testing.T, s *Server, path, body string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestNumberSingle(t *testing.T) {
	s := New(numberingtest.NewEngine(), Options{})
	rec := post(t, s, "/v1/number", `{"seq":"`+numberingtest.HeavySeq+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
	var got api.NumberingV1
	decode(t, rec, &got)
	if got.Scheme != "imgt" || got.Chain != "H" || len(got.Domains) != 1 {
		t.Fatalf("got %+v", got)
	}
	if got.Domains[0].Numbered != numberingtest.HeavyIMGT().Sequence() {
		t.Fatalf("numbered = %q", got.Domains[0].Numbered)
	}
}

func TestNumberedBatchReportsInvalidPerItem(t *testing.T) {
	s := New(numberingtest.NewEngine(), Options{})
	body := `{"sequences":[{"name":"h","seq":"` + numberingtest.HeavySeq + `"},{"seq":"GGGG"}]}`
	rec := post(t, s, "/v1/numbered", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
	var got []api.NumberedV1
	decode(t, rec, &got)
	if len(got) != 2 {
		t.Fatalf("len=%d", len(got))
	}
	if got[0].Name != "h" || got[0].Error != "" || got[0].Numbered == "" {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Name != "seq2" || !strings.Contains(got[1].Error, "invalid sequence: GGGG") {
		t.Fatalf("second = %+v", got[1])
	}
	if n := testutil.ToFloat64(s.Metrics.Sequences.WithLabelValues("invalid")); n != 1 {
		t.Fatalf("invalid count = %v", n)
	}
	if n := testutil.ToFloat64(s.Metrics.Sequences.WithLabelValues("numbered")); n != 1 {
		t.Fatalf("numbered count = %v", n)
	}
}

func TestRegionsLight(t *testing.T) {
	s := New(numberingtest.NewEngine(), Options{})
	rec := post(t, s, "/v1/regions", `{"seq":"`+numberingtest.LightSeq+`","chain":"L"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
	var got api.RegionsV1
	decode(t, rec, &got)
	if got.Chain != "L" || got.Regions["vl_cdr3"] != "QQSSN----WPRT" {
		t.Fatalf("got %+v", got)
	}
}

func TestRegionsUnknownScheme(t *testing.T) {
	eng := numberingtest.NewEngine()
	s := New(eng, Options{})
	rec := post(t, s, "/v1/regions", `{"seq":"`+numberingtest.HeavySeq+`","scheme":"bogus"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
	if len(eng.Calls()) != 0 {
		t.Fatal("engine called for an unknown scheme")
	}
}

func TestSpeciesRequestsGermline(t *testing.T) {
	eng := numberingtest.NewEngine()
	s := New(eng, Options{Species: []string{"human"}})
	rec := post(t, s, "/v1/species", `{"seq":"`+numberingtest.HeavySeq+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
	var got api.SpeciesV1
	decode(t, rec, &got)
	if got.Species != "human" {
		t.Fatalf("species = %q", got.Species)
	}
	req := eng.Calls()[0].Request
	if !req.Germline || len(req.Species) != 1 || req.Species[0] != "human" {
		t.Fatalf("request = %+v", req)
	}
}

func TestSingleInvalidIs422(t *testing.T) {
	s := New(numberingtest.NewEngine(), Options{})
	rec := post(t, s, "/v1/number", `{"seq":"GGGG"}`, RequestIDHeader, "abc")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code=%d", rec.Code)
	}
	var got api.ErrorV1
	decode(t, rec, &got)
	if got.RequestID != "abc" || !strings.Contains(got.Error, "invalid sequence") {
		t.Fatalf("got %+v", got)
	}
	if h := rec.Header().Get(RequestIDHeader); h != "abc" {
		t.Fatalf("header = %q", h)
	}
}

func TestBadRequests(t *testing.T) {
	s := New(numberingtest.NewEngine(), Options{MaxBatch: 1})
	cases := map[string]string{
		"not json":      `{`,
		"unknown field": `{"seq":"QVQ","colour":1}`,
		"empty":         `{}`,
		"both":          `{"seq":"QVQ","sequences":[{"seq":"QVQ"}]}`,
		"over limit":    `{"sequences":[{"seq":"A"},{"seq":"C"}]}`,
	}
	for name, body := range cases {
		rec := post(t, s, "/v1/number", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: code=%d body=%s", name, rec.Code, rec.Body)
		}
	}
	if n := testutil.ToFloat64(s.Metrics.Requests.WithLabelValues("number", "400")); n != float64(len(cases)) {
		t.Fatalf("400 count = %v", n)
	}
}

func TestInvalidChainIs422(t *testing.T) {
	s := New(numberingtest.NewEngine(), Options{})
	rec := post(t, s, "/v1/number", `{"seq":"QVQ","chain":"X"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code=%d", rec.Code)
	}
}

func TestEngineFailureIs502(t *testing.T) {
	eng := numberingtest.NewEngine()
	eng.Err = errors.New("anarci: exit status 1")
	s := New(eng, Options{})
	rec := post(t, s, "/v1/number", `{"seq":"`+numberingtest.HeavySeq+`"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("code=%d", rec.Code)
	}
	var got api.ErrorV1
	decode(t, rec, &got)
	if got.RequestID == "" {
		t.Fatal("missing generated request id")
	}
}

func TestSimilarity(t *testing.T) {
	s := New(numberingtest.NewEngine(), Options{})
	rec := post(t, s, "/v1/similarity", `{"a":"QVQLVESGG","b":"QVQLVESGG"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body)
	}
	var got api.SimilarityV1
	decode(t, rec, &got)
	if got.Percent != 100 || got.Mode != "blastp" || got.Identities != 9 {
		t.Fatalf("got %+v", got)
	}

	for _, body := range []string{`{"a":"","b":"QVQ"}`, `{"a":"QVQ","b":"QV1"}`, `{"a":"QVQ","b":"QVQ","mode":"global"}`} {
		if rec := post(t, s, "/v1/similarity", body); rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: code=%d", body, rec.Code)
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := New(numberingtest.NewEngine(), Options{})
	post(t, s, "/v1/number", `{"seq":"`+numberingtest.HeavySeq+`"}`)

	for _, path := range []string{"/healthz", "/metrics"} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: code=%d", path, rec.Code)
		}
		body, _ := io.ReadAll(rec.Body)
		if path == "/healthz" && !bytes.Contains(body, []byte(`"status":"ok"`)) {
			t.Fatalf("health = %s", body)
		}
		if path == "/metrics" && !bytes.Contains(body, []byte(`abtools_http_requests_total{code="200",endpoint="number"} 1`)) {
			t.Fatalf("metrics missing request counter:\n%s", body)
		}
	}
}

func TestDefaultsFromOptions(t *testing.T) {
	eng := numberingtest.NewEngine()
	s := New(eng, Options{Chain: numbering.Light, Scheme: "Kabat"})
	post(t, s, "/v1/number", `{"seq":"`+numberingtest.LightSeq+`"}`)
	req := eng.Calls()[0].Request
	if req.Scheme != "kabat" || len(req.Allow) != 2 {
		t.Fatalf("request = %+v", req)
	}
}

func TestCacheMetrics(t *testing.T) {
	eng := numcache.New(numberingtest.NewEngine(), time.Minute, time.Minute)
	s := New(eng, Options{})
	for i := 0; i < 2; i++ {
		if rec := post(t, s, "/v1/number", `{"seq":"`+numberingtest.HeavySeq+`"}`); rec.Code != http.StatusOK {
			t.Fatalf("code=%d", rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	for _, want := range []string{"abtools_cache_hits_total 1", "abtools_cache_misses_total 1", "abtools_cache_items 1"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, rec.Body.String())
		}
	}
}
