// Package pipeline streams FASTA records and inline sequences through a
// numbering.Engine in batches, on a pool of workers, and hands results to a
// visit callback in input order.
//
// The only contract to implement is numbering.Engine.
// This keeps the pipeline swappable and testable.
package pipeline
