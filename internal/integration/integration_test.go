// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"abtools-core/numbering/numberingtest"
	"abtools/internal/app"
	"abtools/internal/identapp"
	"abtools/pkg/api"
)

func write(t *testing.T, fn, data string, mode os.FileMode) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), mode); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

// fakeANARCI is a stand-in executable that prints body's output as its report.
func fakeANARCI(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	return write(t, filepath.Join(t.TempDir(), "ANARCI"), "#!/bin/sh\n"+body+"\n", 0o755)
}

// reportANARCI replays the anarci package's three-record fixture:
// heavy, unnumberable, light.
func reportANARCI(t *testing.T) string {
	t.Helper()
	report, err := filepath.Abs("../anarci/testdata/report.txt")
	if err != nil {
		t.Fatal(err)
	}
	return fakeANARCI(t, "cat '"+report+"'")
}

func abnum(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func threeInline(bin string) []string {
	return []string{
		"--anarci", bin, "--threads", "1", "--batch-size", "3",
		"-i", numberingtest.HeavySeq, "-i", "INVALID", "-i", numberingtest.LightSeq,
	}
}

func TestAbnumNumberedText(t *testing.T) {
	code, out, errOut := abnum(t, append(threeInline(reportANARCI(t)), "--what", "numbered")...)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 rows, got:\n%s", out)
	}
	if lines[0] != "source_file\tname\tnumbered" {
		t.Fatalf("header = %q", lines[0])
	}
	if want := "\tH-imgt-1\t" + numberingtest.HeavyIMGT().Sequence(); lines[1] != want {
		t.Fatalf("heavy row = %q, want %q", lines[1], want)
	}
	if !strings.HasPrefix(lines[2], "\tH-imgt-3\t") {
		t.Fatalf("light row = %q", lines[2])
	}
	if !strings.Contains(errOut, "H-imgt-2: invalid sequence: INVALID") {
		t.Fatalf("missing warning, stderr=%q", errOut)
	}
}

func TestAbnumQuietSuppressesWarnings(t *testing.T) {
	code, _, errOut := abnum(t, append(threeInline(reportANARCI(t)), "--what", "numbered", "--quiet")...)
	if code != 0 || errOut != "" {
		t.Fatalf("exit %d, stderr=%q", code, errOut)
	}
}

func TestAbnumSpeciesJSON(t *testing.T) {
	code, out, errOut := abnum(t, append(threeInline(reportANARCI(t)), "--what", "species", "-o", "json")...)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	var got []api.SpeciesV1
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].Species != "human" || got[0].Name != "H-imgt-1" {
		t.Fatalf("got %+v", got)
	}
}

func TestAbnumRegionsFromFASTA(t *testing.T) {
	fa := write(t, filepath.Join(t.TempDir(), "ab.fa"),
		">vh\n"+numberingtest.HeavySeq+"\n>junk\nINVALID\n>vl\n"+numberingtest.LightSeq+"\n", 0o644)
	code, out, errOut := abnum(t, "--anarci", reportANARCI(t), "--threads", "1", "--batch-size", "3",
		"-o", "jsonl", fa)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 records, got:\n%s", out)
	}
	var heavy api.RegionsV1
	if err := json.Unmarshal([]byte(lines[0]), &heavy); err != nil {
		t.Fatal(err)
	}
	if heavy.Name != "vh" || heavy.SourceFile != fa || heavy.Regions["vh_cdr3"] != "ATN-------DDY" {
		t.Fatalf("heavy = %+v", heavy)
	}
}

func TestAbnumNoMatchExitCode(t *testing.T) {
	bin := fakeANARCI(t, `printf '# q0\n//\n'`)
	if code, _, _ := abnum(t, "--anarci", bin, "-q", "-i", "INVALID"); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if code, _, _ := abnum(t, "--anarci", bin, "-q", "-i", "INVALID", "--no-match-exit-code", "0"); code != 0 {
		t.Fatalf("exit %d, want 0", code)
	}
}

func TestAbnumEngineFailureExit3(t *testing.T) {
	bin := fakeANARCI(t, "echo 'hmmscan: not found' >&2; exit 1")
	code, _, errOut := abnum(t, "--anarci", bin, "-i", numberingtest.HeavySeq)
	if code != 3 || !strings.Contains(errOut, "hmmscan: not found") {
		t.Fatalf("exit %d, stderr=%q", code, errOut)
	}
}

func TestAbnumUsageErrors(t *testing.T) {
	bin := reportANARCI(t)
	for _, argv := range [][]string{
		{"--anarci", bin, "-i", "QVQ", "--chain", "X"},
		{"--anarci", bin, "-i", "QVQ", "--scheme", "bogus"},
		{"--anarci", bin, "-i", "QVQ", "--what", "everything"},
		{"--anarci", bin, "--what", "numbered"},
	} {
		if code, _, _ := abnum(t, argv...); code != 2 {
			t.Errorf("%v: exit %d, want 2", argv, code)
		}
	}
}

func TestAbnumConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := write(t, filepath.Join(dir, "abtools.yaml"),
		"anarci:\n  path: "+reportANARCI(t)+"\ncache:\n  ttl: \"0\"\n", 0o644)
	code, out, errOut := abnum(t, "--config-file", cfg, "--threads", "1", "--batch-size", "3", "-w", "numbered",
		"-i", numberingtest.HeavySeq, "-i", "INVALID", "-i", numberingtest.LightSeq, "--no-header", "-q")
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	if n := strings.Count(out, "\n"); n != 2 {
		t.Fatalf("want 2 rows, got:\n%s", out)
	}
}

func TestAbnumAnarciFromEnv(t *testing.T) {
	t.Setenv("ABTOOLS_ANARCI", reportANARCI(t))
	code, _, errOut := abnum(t, append(threeInline("")[2:], "-w", "numbered")...)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
}

func abident(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := identapp.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestAbidentPair(t *testing.T) {
	code, out, errOut := abident(t, "--a", "ARDYYGSSYWYFDV", "--b", "ARDYYGSSYWYFDV", "--no-header")
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	if want := "\ta\tb\tblastp\t100.00\t14\t0\t0\n"; out != want {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestAbidentReference(t *testing.T) {
	fa := write(t, filepath.Join(t.TempDir(), "lib.fa"),
		">same\n"+numberingtest.HeavySeq+"\n>bad\nQV1Q\n>light\n"+numberingtest.LightSeq+"\n", 0o644)
	code, out, errOut := abident(t, "--reference", numberingtest.HeavySeq, "--mode", "local", "-o", "json", fa)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	var got []api.SimilarityV1
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].B != "same" || got[0].Percent != 100 || got[1].B != "light" {
		t.Fatalf("got %+v", got)
	}
	if got[1].Percent <= 0 || got[1].Percent >= 100 {
		t.Fatalf("light percent = %v", got[1].Percent)
	}
	if !strings.Contains(errOut, "bad:") {
		t.Fatalf("missing warning, stderr=%q", errOut)
	}
}

func TestAbidentUsageErrors(t *testing.T) {
	for _, argv := range [][]string{
		{"--a", "QVQ"},
		{"--a", "QVQ", "--b", ""},
		{"--a", "QVQ", "--b", "QV1"},
		{"--a", "QVQ", "--b", "QVQ", "--mode", "global"},
	} {
		if code, _, _ := abident(t, argv...); code != 2 {
			t.Errorf("%v: exit %d, want 2", argv, code)
		}
	}
}

func TestAbidentPretty(t *testing.T) {
	code, out, errOut := abident(t, "--a", "ARDYYGSSYWYFDV", "--b", "ARDRYGSSYWYFDV", "--pretty", "--no-header")
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	for _, want := range []string{
		"# a     1 ARDYYGSSYWYFDV 14\n",
		"# b     1 ARDRYGSSYWYFDV 14\n",
		"# identities 13/14 (92.86%), mismatches 1, gaps 0\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestAbidentSort(t *testing.T) {
	fa := write(t, filepath.Join(t.TempDir(), "lib.fa"),
		">light\n"+numberingtest.LightSeq+"\n>same\n"+numberingtest.HeavySeq+"\n", 0o644)
	code, out, errOut := abident(t, "--reference", numberingtest.HeavySeq, "--mode", "local", "--sort", "-o", "json", fa)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	var got []api.SimilarityV1
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].B != "same" || got[1].B != "light" {
		t.Fatalf("got %+v", got)
	}
}
