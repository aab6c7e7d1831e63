// Package server exposes numbering, region extraction, species assignment
// and pairwise similarity over HTTP/JSON (v1 schemas in pkg/api).
package server
