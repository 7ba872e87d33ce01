package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	log, closeLog, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	log.Info().Str("key", "value").Msg("hello")
	closeLog()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), "hello") {
		t.Errorf("log file missing entry, got %q", raw)
	}
}

func TestSetupEmptyPathDiscards(t *testing.T) {
	log, closeLog, err := Setup("", "info")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closeLog()
	log.Info().Msg("dropped")
}

func TestConsoleWritesHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log := Console(&buf, "info")

	log.Info().Msg("starting up")
	if !strings.Contains(buf.String(), "starting up") {
		t.Errorf("console output missing message, got %q", buf.String())
	}
}

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Console(&buf, "error")

	log.Info().Msg("quiet")
	if buf.Len() != 0 {
		t.Errorf("info entry written at error level: %q", buf.String())
	}

	log.Error().Msg("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("error entry missing, got %q", buf.String())
	}
}
