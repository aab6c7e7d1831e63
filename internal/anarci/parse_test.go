// internal/anarci/parse_test.go
package anarci

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"abtools-core/numbering/numberingtest"
)

func TestParseReport(t *testing.T) {
	fh, err := os.Open("testdata/report.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()

	recs, err := Parse(fh)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("want 3 records, got %d", len(recs))
	}
	if recs[0].Name != "q0" || recs[1].Name != "q1" || recs[2].Name != "q2" {
		t.Fatalf("names = %q %q %q", recs[0].Name, recs[1].Name, recs[2].Name)
	}
	if recs[1].OK() {
		t.Fatalf("q1 should have no domain")
	}

	h, ok := recs[0].First()
	if !ok {
		t.Fatal("q0 has no domain")
	}
	if want := numberingtest.HeavyIMGT(); !reflect.DeepEqual(h.Residues, want.Residues) {
		t.Fatalf("heavy residues differ from fixture")
	}
	if h.Scheme != "imgt" {
		t.Errorf("scheme = %q", h.Scheme)
	}
	wantHit := numberingtest.HeavyIMGT().Hit
	if h.Hit != wantHit {
		t.Errorf("hit = %+v, want %+v", h.Hit, wantHit)
	}
	if h.Germlines == nil || h.Germlines.VGene != "IGHV3-33*01" || h.Germlines.JIdentity != 0.86 {
		t.Errorf("germlines = %+v", h.Germlines)
	}

	l, _ := recs[2].First()
	if !reflect.DeepEqual(l.Residues, numberingtest.LightIMGT().Residues) {
		t.Fatalf("light residues differ from fixture")
	}
	if l.Hit.ChainType != "K" || l.Hit.Species != "human" {
		t.Errorf("light hit = %+v", l.Hit)
	}
}

func TestParseInsertionCode(t *testing.T) {
	recs, err := Parse(strings.NewReader("# x\n# ANARCI numbered\n# Domain 1 of 1\nH 111   A G\nH 112     -\n//\n"))
	if err != nil {
		t.Fatal(err)
	}
	d, _ := recs[0].First()
	if len(d.Residues) != 2 || d.Residues[0].Label() != "111A" || d.Residues[0].AA != 'G' || d.Residues[1].AA != '-' {
		t.Fatalf("residues = %+v", d.Residues)
	}
}

func TestParseMultipleDomains(t *testing.T) {
	in := "# scfv\n# ANARCI numbered\n# Domain 1 of 2\nH 1 Q\n# Domain 2 of 2\nL 1 E\nL 2 I\n//\n"
	recs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || len(recs[0].Domains) != 2 {
		t.Fatalf("recs = %+v", recs)
	}
	if recs[0].Domains[0].Sequence() != "Q" || recs[0].Domains[1].Sequence() != "EI" {
		t.Fatalf("domains = %+v", recs[0].Domains)
	}
}

func TestParseMissingTerminator(t *testing.T) {
	recs, err := Parse(strings.NewReader("# a\n//\n# b\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[1].Name != "b" {
		t.Fatalf("recs = %+v", recs)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"residue before domain": "# a\nH 1 Q\n//\n",
		"bad position":          "# a\n# Domain 1 of 1\nH x Q\n//\n",
		"bad hit":               "# a\n# Domain 1 of 1\n#|species|chain_type|e-value|score|seqstart_index|seqend_index|\n#|human|H|nan?|1|0|\n//\n",
		"bad residue":           "# a\n# Domain 1 of 1\nH 1 QQ\n//\n",
	}
	for name, in := range cases {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
