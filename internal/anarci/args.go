// internal/anarci/args.go
package anarci

import (
	"strconv"

	"abtools-core/numbering"
)

// Args builds the ANARCI argument list for input file in and request req.
// ANARCI's --use_species takes a single species, so it is only emitted for
// one-element lists; Runner.Number splits longer lists into one call each.
func Args(in string, req numbering.Request, ncpu int) []string {
	args := []string{"-i", in, "--scheme", req.Scheme}
	if len(req.Allow) > 0 {
		args = append(args, "--restrict")
		args = append(args, req.Allow...)
	}
	if req.Germline {
		args = append(args, "--assign_germline")
	}
	if len(req.Species) == 1 {
		args = append(args, "--use_species", req.Species[0])
	}
	if ncpu > 1 {
		args = append(args, "--ncpu", strconv.Itoa(ncpu))
	}
	return args
}
