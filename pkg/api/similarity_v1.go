// pkg/api/similarity_v1.go
package api

// SimilarityV1 is the stable schema for one pairwise score.
type SimilarityV1 struct {
	A          string  `json:"a"`
	B          string  `json:"b"`
	Mode       string  `json:"mode"`
	Percent    float64 `json:"percent"`
	Identities int     `json:"identities"`
	Mismatches int     `json:"mismatches"`
	Gaps       int     `json:"gaps"`
	SourceFile string  `json:"source_file,omitempty"`
}
