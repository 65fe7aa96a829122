package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testConfig writes a config file whose storage, logs and backups all live
// in a fresh temp directory and returns its path.
func testConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := fmt.Sprintf(`storage:
  driver: sqlite
  path: %s
backup:
  dir: %s
log:
  file: %s
  level: debug
inventory:
  low_stock_feet: 10
`, filepath.Join(dir, "vanops.db"), filepath.Join(dir, "backups"), filepath.Join(dir, "vanops.log"))
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// runVops executes the root command against cfg with stdin as input.
func runVops(t *testing.T, cfg, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", cfg))
	err := cmd.Execute()
	return buf.String(), err
}

// mustVops is runVops that fails the test on error.
func mustVops(t *testing.T, cfg string, args ...string) string {
	t.Helper()
	out, err := runVops(t, cfg, "", args...)
	if err != nil {
		t.Fatalf("vops %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, unwanted ...string) {
	t.Helper()
	for _, w := range unwanted {
		if strings.Contains(out, w) {
			t.Errorf("expected output not to contain %q, got:\n%s", w, out)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	assertContains(t, buf.String(), "vops dev", "commit: none")
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	assertContains(t, buf.String(), "vops 1.0.0", "commit: abc123", "built: 2026-01-01")
}

func TestRootCmdHelp(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	assertContains(t, buf.String(), "van electrical build",
		"wiring", "parts", "fuses", "guides", "phases", "backup", "reset", "--config")
}

func TestExecute_ReturnsExitCode(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"no-such-command"})
	if code := execute(cmd); code != 1 {
		t.Errorf("execute = %d, want 1", code)
	}
}

func TestInitCmd_CreatesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out := mustVops(t, path, "init")
	assertContains(t, out, "Wrote default config to "+path, "Connected to sqlite storage", "Migrated 1 tables")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "vanops.db")); err != nil {
		t.Errorf("database not created next to config: %v", err)
	}

	out = mustVops(t, path, "init")
	assertContains(t, out, "Loaded config from "+path)
}

func TestStatusCmd(t *testing.T) {
	cfg := testConfig(t)
	out := mustVops(t, cfg, "status")
	assertContains(t, out, "Saved:    never", "0 wiring runs")

	mustVops(t, cfg, "wiring", "add", "--id", "DC-001", "--status", "done")
	mustVops(t, cfg, "wiring", "add", "--id", "DC-002", "--status", "issue")
	out = mustVops(t, cfg, "status")
	assertContains(t, out, "2 wiring runs", "1/2 done (50%)", "1 issues")
	assertNotContains(t, out, "never")
}

func TestResetCmd(t *testing.T) {
	cfg := testConfig(t)
	mustVops(t, cfg, "wiring", "add", "--id", "DC-001")

	out, err := runVops(t, cfg, "nope\n", "reset")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	assertContains(t, out, "This will erase 1 wiring runs", "Aborted.")
	assertContains(t, mustVops(t, cfg, "wiring", "list"), "DC-001")

	out, err = runVops(t, cfg, "yes\n", "reset")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	assertContains(t, out, "All data erased.")
	assertContains(t, mustVops(t, cfg, "wiring", "list"), "No wiring runs found.")
	assertNotContains(t, mustVops(t, cfg, "status"), "Saved:    never")
}

func TestResetCmd_Purge(t *testing.T) {
	cfg := testConfig(t)
	mustVops(t, cfg, "wiring", "add", "--id", "DC-001")
	assertNotContains(t, mustVops(t, cfg, "status"), "Saved:    never")

	out := mustVops(t, cfg, "reset", "--purge", "--yes")
	assertContains(t, out, "Storage slot van-build-ops:v1 removed.")

	out = mustVops(t, cfg, "status")
	assertContains(t, out, "Saved:    never", "0 wiring runs")
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  driver: oracle\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runVops(t, path, "", "status")
	if err == nil || !strings.Contains(err.Error(), "storage.driver") {
		t.Errorf("error = %v, want driver validation error", err)
	}
}
