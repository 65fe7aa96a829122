package logs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vanops.log")
	logger, closer, err := New(Options{File: path, Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug().Str("key", "van-build-ops:v1").Msg("saved")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, data)
	}
	if entry["message"] != "saved" || entry["key"] != "van-build-ops:v1" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry missing time field")
	}
	if _, ok := entry["caller"]; !ok {
		t.Error("entry missing caller field")
	}
}

func TestNew_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vanops.log")
	if err := os.WriteFile(path, []byte("{\"message\":\"earlier\"}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	logger, closer, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info().Msg("later")
	closer.Close()

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), data)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vanops.log")
	logger, closer, err := New(Options{File: path, Level: "warn"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")
	closer.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "dropped") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("warn entry missing")
	}
}

func TestNew_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Console: true, ConsoleOut: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()
	logger.Info().Msg("hello console")
	if !strings.Contains(buf.String(), "hello console") {
		t.Errorf("console output = %q", buf.String())
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
	if !strings.Contains(err.Error(), "logs: level") {
		t.Errorf("error = %q, want logs: level prefix", err.Error())
	}
}
