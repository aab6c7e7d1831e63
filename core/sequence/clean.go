// core/sequence/clean.go
package sequence

import "strings"

// Gap is the placeholder used by numbering schemes for unoccupied positions.
const Gap = '-'

// Clean trims surrounding whitespace and drops gap characters.
// Anything else is left for the numbering engine to accept or reject.
func Clean(seq string) string {
	return strings.ReplaceAll(strings.TrimSpace(seq), string(Gap), "")
}

// Ungap removes gap placeholders without trimming.
func Ungap(seq string) string {
	return strings.ReplaceAll(seq, string(Gap), "")
}
