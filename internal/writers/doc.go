// Package writers turns numbering records and similarity scores into
// serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (TSV, JSON, JSONL).
//   • Core packages stay domain-only; the pipeline stays orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
