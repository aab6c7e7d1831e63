package logging

import (
	"testing"

	"github.com/juju/loggo"
)

func TestGetLoggerLevelFromEnv(t *testing.T) {
	t.Setenv(DebugEnv, "1")
	if lvl := GetLogger("abtools.test.debug").LogLevel(); lvl != loggo.DEBUG {
		t.Fatalf("level = %s, want DEBUG", lvl)
	}
	t.Setenv(DebugEnv, "0")
	if lvl := GetLogger("abtools.test.info").LogLevel(); lvl != loggo.INFO {
		t.Fatalf("level = %s, want INFO", lvl)
	}
}

func TestConfigure(t *testing.T) {
	defer loggo.DefaultContext().ResetLoggerLevels()
	if err := Configure("abtools.test.cfg=ERROR"); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if lvl := loggo.GetLogger("abtools.test.cfg").LogLevel(); lvl != loggo.ERROR {
		t.Fatalf("level = %s", lvl)
	}
	if err := Configure(""); err != nil {
		t.Fatalf("empty spec: %v", err)
	}
	if err := Configure("abtools=NOPE"); err == nil {
		t.Fatal("bad level accepted")
	}
}

func TestLoggerWritesEntries(t *testing.T) {
	var tw loggo.TestWriter
	if err := loggo.RegisterWriter("test", &tw); err != nil {
		t.Fatalf("register writer: %v", err)
	}
	defer loggo.RemoveWriter("test")
	t.Setenv(DebugEnv, "")
	log := GetLogger("abtools.test.writer")
	log.Debugf("hidden")
	log.Infof("numbered %d", 3)
	entries := tw.Log()
	if len(entries) != 1 || entries[0].Message != "numbered 3" || entries[0].Module != "abtools.test.writer" {
		t.Fatalf("entries = %+v", entries)
	}
}

// Level resets between tests must leave the default writer in place.
func TestConfigureKeepsDefaultWriter(t *testing.T) {
	if err := Configure("abtools.test.keep=ERROR"); err != nil {
		t.Fatal(err)
	}
	loggo.DefaultContext().ResetLoggerLevels()
	w, err := loggo.RemoveWriter(loggo.DefaultWriterName)
	if err != nil {
		t.Fatalf("default writer gone: %v", err)
	}
	if err := loggo.RegisterWriter(loggo.DefaultWriterName, w); err != nil {
		t.Fatal(err)
	}
}
