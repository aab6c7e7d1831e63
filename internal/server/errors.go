// internal/server/errors.go
package server

import (
	"errors"
	"net/http"

	"abtools-core/numbering"
	"abtools-core/regions"
	"abtools-core/similarity"
)

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("bad request")

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, numbering.ErrInvalidSequence),
		errors.Is(err, numbering.ErrInvalidChain),
		errors.Is(err, regions.ErrInvalidScheme),
		errors.Is(err, similarity.ErrEmptySequence),
		errors.Is(err, similarity.ErrInvalidResidue),
		errors.Is(err, similarity.ErrUnknownMode):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}
