package appcore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"abtools-core/numbering"
	"abtools-core/numbering/numberingtest"
	"abtools/internal/clibase"
	"abtools/internal/config"
	"abtools/internal/numcache"
	"abtools/internal/output"
	"abtools/internal/pipeline"
)

func numberedVisit(it pipeline.Item[numbering.Result]) (bool, output.Record, error) {
	if !it.Value.OK() {
		return false, output.Record{}, nil
	}
	return true, output.Record{Scheme: "imgt", Chain: numbering.Heavy, Result: it.Value}, nil
}

func numberWork(eng numbering.Engine) pipeline.WorkFunc[numbering.Result] {
	return func(ctx context.Context, qs []numbering.Query) ([]numbering.Result, error) {
		return numbering.RunBatch(ctx, eng, qs, numbering.Options{})
	}
}

func TestRunExitCodes(t *testing.T) {
	eng := numberingtest.NewEngine()
	wf := NewRecordWriterFactory("text", output.ViewNumbered, numbering.Heavy, false)

	var out, errb bytes.Buffer
	code := Run[numbering.Result, output.Record](context.Background(), &out, &errb,
		Options{Inline: []numbering.Query{{Name: "vh", Seq: numberingtest.HeavySeq}}, NoMatchExitCode: 1},
		numberWork(eng), numberedVisit, wf)
	if code != 0 || !strings.HasPrefix(out.String(), "\tvh\tQVQLVESGG-") {
		t.Fatalf("code=%d out=%q err=%q", code, out.String(), errb.String())
	}

	out.Reset()
	code = Run[numbering.Result, output.Record](context.Background(), &out, &errb,
		Options{Inline: []numbering.Query{{Name: "x", Seq: "INVALID"}}, NoMatchExitCode: 4},
		numberWork(eng), numberedVisit, wf)
	if code != 4 || out.Len() != 0 {
		t.Fatalf("no-match code=%d out=%q", code, out.String())
	}

	eng.Err = errors.New("anarci exploded")
	errb.Reset()
	code = Run[numbering.Result, output.Record](context.Background(), &out, &errb,
		Options{Inline: []numbering.Query{{Name: "vh", Seq: numberingtest.HeavySeq}}},
		numberWork(eng), numberedVisit, wf)
	if code != 3 || !strings.Contains(errb.String(), "anarci exploded") {
		t.Fatalf("engine error code=%d err=%q", code, errb.String())
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	code := Run[numbering.Result, output.Record](ctx, &out, &errb,
		Options{Inline: []numbering.Query{{Name: "vh", Seq: numberingtest.HeavySeq}}},
		numberWork(numberingtest.NewEngine()), numberedVisit,
		NewRecordWriterFactory("text", output.ViewNumbered, numbering.Heavy, false))
	if code != 130 {
		t.Fatalf("code = %d", code)
	}
}

func TestLoadSettingsFlagsOverConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "abtools.yaml")
	if err := os.WriteFile(fn, []byte("anarci:\n  path: /opt/ANARCI\n  ncpu: 4\nnumbering:\n  scheme: kabat\n  species: [human]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadSettings(clibase.Engine{ConfigFile: fn, NCPU: 2})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Anarci.Path != "/opt/ANARCI" || cfg.Anarci.NCPU != 2 {
		t.Fatalf("anarci = %+v", cfg.Anarci)
	}
	o, err := NumberingOptions(cfg, "", "", true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if o.Scheme != "kabat" || o.Chain != numbering.Heavy || len(o.Species) != 1 {
		t.Fatalf("opts = %+v", o)
	}
	o, _ = NumberingOptions(cfg, "imgt", "light", false, nil)
	if o.Scheme != "imgt" || o.Chain != numbering.Light || len(o.Species) != 0 {
		t.Fatalf("opts = %+v", o)
	}
	if _, err := NumberingOptions(cfg, "", "X", false, nil); !errors.Is(err, numbering.ErrInvalidChain) {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildEngineMissingExecutable(t *testing.T) {
	cfg := config.Default()
	cfg.Anarci.Path = filepath.Join(t.TempDir(), "no-anarci")
	if _, err := BuildEngine(cfg, 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildEngineLayers(t *testing.T) {
	self, err := os.Executable()
	if err != nil {
		t.Skip(err)
	}
	cfg := config.Default()
	cfg.Anarci.Path = self
	eng, err := BuildEngine(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := eng.(*numcache.Engine); !ok {
		t.Fatalf("engine = %T, want cache in front", eng)
	}

	cfg.Cache.TTL = "0"
	if eng, _ := BuildEngine(cfg, 1); eng == nil {
		t.Fatal("nil engine")
	} else if _, ok := eng.(*numcache.Engine); ok {
		t.Fatal("ttl 0 must disable the cache")
	}

	cfg.Cache.TTL = "1m"
	cfg.Cache.Redis = "127.0.0.1:1"
	if _, err := BuildEngine(cfg, 1); err == nil {
		t.Fatal("unreachable redis must fail")
	}
}
