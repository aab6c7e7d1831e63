// internal/common/sort.go
package common

import (
	"sort"

	"abtools/internal/output"
)

// LessScore defines a stable order for scores (for --sort): highest
// percent first, then source file and name.
func LessScore(a, b output.Score) bool {
	pa, pb := a.Counts.Percent(), b.Counts.Percent()
	if pa != pb {
		return pa > pb
	}
	if a.SourceFile != b.SourceFile {
		return a.SourceFile < b.SourceFile
	}
	return a.B < b.B
}

func SortScores(list []output.Score) {
	sort.SliceStable(list, func(i, j int) bool { return LessScore(list[i], list[j]) })
}
