package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
server:
  port: "9090"
  mode: debug
database:
  driver: sqlite
  dsn: "file::memory:"
report:
  page_size: 200
  cache_backend: none
  cache_ttl: 30s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadReadsYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Server.Mode != "debug" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if cfg.Database.MaxOpenConns != 50 {
		t.Fatalf("expected default max_open_conns 50, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Report.PageSize != 200 || cfg.Report.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected report config: %+v", cfg.Report)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FINSCALE_SERVER_PORT", "7000")
	t.Setenv("FINSCALE_REPORT_PAGE_SIZE", "50")

	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Fatalf("expected env port 7000, got %q", cfg.Server.Port)
	}
	if cfg.Report.PageSize != 50 {
		t.Fatalf("expected env page size 50, got %d", cfg.Report.PageSize)
	}
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	t.Setenv("FINSCALE_REPORT_PAGE_SIZE", "0")

	if _, err := Load(writeConfig(t, sampleConfig)); err == nil {
		t.Fatalf("expected error for zero page size")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
