// Package anarci drives the ANARCI command-line numbering program and turns
// its text report into numbering.Result values.
//
// ANARCI is invoked once per batch: queries are written to a temporary FASTA
// file and the report is read from stdout. Nothing else in the repository
// knows about ANARCI's argv or report layout.
package anarci
