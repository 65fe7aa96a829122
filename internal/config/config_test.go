package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
app_name: sprinter-build
storage:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  database: van
  user: builder
  password: secret
  key: sprinter:v2
backup:
  dir: /srv/backups
log:
  file: /var/log/vanops.log
  console: true
  level: warn
inventory:
  low_stock_feet: 15.5
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppName != "sprinter-build" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "sprinter-build")
	}
	if cfg.Storage.Driver != "mysql" {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, "mysql")
	}
	if cfg.Storage.Host != "10.0.0.5" {
		t.Errorf("Storage.Host = %q, want %q", cfg.Storage.Host, "10.0.0.5")
	}
	if cfg.Storage.Port != 3307 {
		t.Errorf("Storage.Port = %d, want %d", cfg.Storage.Port, 3307)
	}
	if cfg.Storage.Database != "van" {
		t.Errorf("Storage.Database = %q, want %q", cfg.Storage.Database, "van")
	}
	if cfg.Storage.User != "builder" || cfg.Storage.Password != "secret" {
		t.Errorf("Storage credentials = %q/%q, want builder/secret", cfg.Storage.User, cfg.Storage.Password)
	}
	if cfg.Storage.Key != "sprinter:v2" {
		t.Errorf("Storage.Key = %q, want %q", cfg.Storage.Key, "sprinter:v2")
	}
	if cfg.Backup.Dir != "/srv/backups" {
		t.Errorf("Backup.Dir = %q, want %q", cfg.Backup.Dir, "/srv/backups")
	}
	if cfg.Log.File != "/var/log/vanops.log" || !cfg.Log.Console || cfg.Log.Level != "warn" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Inventory.LowStockFeet != 15.5 {
		t.Errorf("Inventory.LowStockFeet = %v, want 15.5", cfg.Inventory.LowStockFeet)
	}
}

func TestParse_Empty_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppName != DefaultAppName {
		t.Errorf("AppName = %q, want %q (default)", cfg.AppName, DefaultAppName)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Storage.Driver = %q, want sqlite (default)", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != DefaultDBFile {
		t.Errorf("Storage.Path = %q, want %q (default)", cfg.Storage.Path, DefaultDBFile)
	}
	if cfg.Storage.Key != "van-build-ops:v1" {
		t.Errorf("Storage.Key = %q, want %q (default)", cfg.Storage.Key, "van-build-ops:v1")
	}
	if cfg.Storage.Database != "" {
		t.Errorf("Storage.Database = %q, want empty for sqlite", cfg.Storage.Database)
	}
	if cfg.Backup.Dir != "." {
		t.Errorf("Backup.Dir = %q, want %q (default)", cfg.Backup.Dir, ".")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info (default)", cfg.Log.Level)
	}
	if cfg.Inventory.LowStockFeet != 10 {
		t.Errorf("Inventory.LowStockFeet = %v, want 10 (default)", cfg.Inventory.LowStockFeet)
	}
}

func TestParse_ZeroLowStockKept(t *testing.T) {
	cfg, err := Parse([]byte("inventory:\n  low_stock_feet: 0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Inventory.LowStockFeet != 0 {
		t.Errorf("Inventory.LowStockFeet = %v, want 0 (explicit)", cfg.Inventory.LowStockFeet)
	}

	cfg, err = Parse([]byte("inventory: {}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Inventory.LowStockFeet != DefaultLowStockFeet {
		t.Errorf("Inventory.LowStockFeet = %v, want %v when absent", cfg.Inventory.LowStockFeet, DefaultLowStockFeet)
	}
}

func TestDefault_LowStockFeet(t *testing.T) {
	if got := Default(t.TempDir()).Inventory.LowStockFeet; got != DefaultLowStockFeet {
		t.Errorf("Default LowStockFeet = %v, want %v", got, DefaultLowStockFeet)
	}
}

func TestParse_NetworkDriverDefaults(t *testing.T) {
	tests := []struct {
		driver string
		port   int
	}{
		{"mysql", 3306},
		{"postgres", 5432},
		{"  Postgres ", 5432},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			yaml := "storage:\n  driver: \"" + tt.driver + "\"\n  user: builder\n"
			cfg, err := Parse([]byte(yaml))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Storage.Host != "127.0.0.1" {
				t.Errorf("Host = %q, want 127.0.0.1", cfg.Storage.Host)
			}
			if cfg.Storage.Port != tt.port {
				t.Errorf("Port = %d, want %d", cfg.Storage.Port, tt.port)
			}
			if cfg.Storage.Database != "vanops" {
				t.Errorf("Database = %q, want vanops", cfg.Storage.Database)
			}
		})
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown driver", "storage:\n  driver: oracle\n", `storage.driver "oracle"`},
		{"network driver without user", "storage:\n  driver: mysql\n", "storage.user is required for mysql"},
		{"port out of range", "storage:\n  port: 70000\n", "storage.port 70000 is out of range"},
		{"blank key", "storage:\n  key: \"   \"\n", "storage.key must not be blank"},
		{"bad log level", "log:\n  level: loud\n", `log.level "loud"`},
		{"negative threshold", "inventory:\n  low_stock_feet: -1\n", "inventory.low_stock_feet must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParse_MultipleValidationErrors(t *testing.T) {
	yaml := `
storage:
  driver: postgres
log:
  level: loud
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "config: validation failed: ") {
		t.Errorf("error = %q, want validation prefix", msg)
	}
	if !strings.Contains(msg, "storage.user is required") {
		t.Errorf("error missing user message: %s", msg)
	}
	if !strings.Contains(msg, "log.level") {
		t.Errorf("error missing log.level message: %s", msg)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte(":::invalid"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "config: parse:") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: parse:")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config: read") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: read")
	}
}

// --- Fixture-based tests using testdata/ files ---

func TestLoad_FullFixture(t *testing.T) {
	cfg, err := Load("testdata/valid_full.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Driver != "postgres" {
		t.Errorf("Storage.Driver = %q, want postgres", cfg.Storage.Driver)
	}
	if cfg.Storage.Port != 5433 {
		t.Errorf("Storage.Port = %d, want 5433", cfg.Storage.Port)
	}
	if cfg.Inventory.LowStockFeet != 25 {
		t.Errorf("Inventory.LowStockFeet = %v, want 25", cfg.Inventory.LowStockFeet)
	}
}

func TestLoad_MinimalFixture(t *testing.T) {
	cfg, err := Load("testdata/valid_minimal.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Path != "/tmp/van.db" {
		t.Errorf("Storage.Path = %q, want /tmp/van.db", cfg.Storage.Path)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Storage.Driver = %q, want default sqlite", cfg.Storage.Driver)
	}
}

func TestLoad_BadDriverFixture(t *testing.T) {
	_, err := Load("testdata/bad_driver.yaml")
	if err == nil {
		t.Fatal("expected error for bad driver")
	}
	if !strings.Contains(err.Error(), "storage.driver") {
		t.Errorf("error = %q, want to contain storage.driver", err.Error())
	}
}

func TestLoad_InvalidYAMLFixture(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "config: parse:") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: parse:")
	}
}

func TestLoadOrCreate_WritesDefaultOnFirstRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vanops")
	path := filepath.Join(dir, FileName)

	cfg, created, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if !created {
		t.Error("created = false, want true on first run")
	}
	if cfg.Storage.Path != filepath.Join(dir, DefaultDBFile) {
		t.Errorf("Storage.Path = %q, want under %s", cfg.Storage.Path, dir)
	}
	if cfg.Backup.Dir != filepath.Join(dir, "backups") {
		t.Errorf("Backup.Dir = %q, want %s/backups", cfg.Backup.Dir, dir)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	again, created, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("second LoadOrCreate: %v", err)
	}
	if created {
		t.Error("created = true on second run, want false")
	}
	if again.Storage.Path != cfg.Storage.Path {
		t.Errorf("reloaded Storage.Path = %q, want %q", again.Storage.Path, cfg.Storage.Path)
	}
}

func TestLoadOrCreate_InvalidExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("storage:\n  driver: oracle\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, created, err := LoadOrCreate(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if created {
		t.Error("created = true, want false for an existing file")
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "oracle") {
		t.Error("existing config was overwritten")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	want := Default("/data/van")
	want.Log.Console = true
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
