package common

import (
	"reflect"
	"testing"

	"abtools-core/similarity"
	"abtools/internal/output"
)

func TestUniqueLower(t *testing.T) {
	got := UniqueLower([]string{" Human", "mouse", "HUMAN", "", "rat "})
	if want := []string{"human", "mouse", "rat"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v", got)
	}
}

func TestSortScores(t *testing.T) {
	score := func(file, b string, ident, mism int) output.Score {
		return output.Score{SourceFile: file, B: b, Counts: similarity.Counts{Identities: ident, Mismatches: mism}}
	}
	list := []output.Score{
		score("x.fa", "low", 1, 9),
		score("y.fa", "tie", 5, 5),
		score("x.fa", "top", 10, 0),
		score("x.fa", "tie", 5, 5),
	}
	SortScores(list)
	var got []string
	for _, s := range list {
		got = append(got, s.SourceFile+":"+s.B)
	}
	if want := []string{"x.fa:top", "x.fa:tie", "y.fa:tie", "x.fa:low"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v", got)
	}
}
