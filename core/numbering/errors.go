package numbering

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSequence is returned when the engine finds no numberable domain.
	ErrInvalidSequence = errors.New("invalid sequence")
	// ErrInvalidChain is returned for chain values other than H and L.
	ErrInvalidChain = errors.New("invalid chain")
)

// InvalidSequenceError names the cleaned sequence the engine rejected.
type InvalidSequenceError struct {
	Seq string
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("invalid sequence: %s", e.Seq)
}

func (e *InvalidSequenceError) Unwrap() error { return ErrInvalidSequence }
