// pkg/api/service_v1.go
package api

// SequenceV1 is a named input sequence.
type SequenceV1 struct {
	Name string `json:"name,omitempty"`
	Seq  string `json:"seq"`
}

// NumberRequestV1 is the body of the numbering endpoints. Either Seq or
// Sequences is set.
type NumberRequestV1 struct {
	Seq       string       `json:"seq,omitempty"`
	Sequences []SequenceV1 `json:"sequences,omitempty"`
	Scheme    string       `json:"scheme,omitempty"`
	Chain     string       `json:"chain,omitempty"`
	Germline  bool         `json:"germline,omitempty"`
	Species   []string     `json:"species,omitempty"`
}

// SimilarityRequestV1 is the body of /v1/similarity.
type SimilarityRequestV1 struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Mode string `json:"mode,omitempty"`
}

// ErrorV1 is returned with every non-2xx response.
type ErrorV1 struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
