package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
database:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  name: trestle_prod

server:
  port: 9000

schedule:
  cron: "0 * * * *"

slack:
  webhook_url: https://hooks.slack.com/services/T000/B000/XXXX
`

const minimalYAML = `
database:
  driver: sqlite
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != DriverMySQL {
		t.Errorf("Database.Driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.Database.Host != "10.0.0.5" || cfg.Database.Port != 3307 {
		t.Errorf("Database host/port = %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.Name != "trestle_prod" {
		t.Errorf("Database.Name = %q", cfg.Database.Name)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Schedule.Cron != "0 * * * *" {
		t.Errorf("Schedule.Cron = %q", cfg.Schedule.Cron)
	}
	if !strings.HasPrefix(cfg.Slack.WebhookURL, "https://hooks.slack.com/") {
		t.Errorf("Slack.WebhookURL = %q", cfg.Slack.WebhookURL)
	}
}

func TestParse_MinimalConfigDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Path != "trestle.db" {
		t.Errorf("Database.Path = %q, want trestle.db", cfg.Database.Path)
	}
	if cfg.Server.Port != 8600 {
		t.Errorf("Server.Port = %d, want 8600", cfg.Server.Port)
	}
	if cfg.Schedule.Cron != "" {
		t.Errorf("Schedule.Cron = %q, want disabled", cfg.Schedule.Cron)
	}
}

func TestParse_InvalidDriver(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "database.driver") {
		t.Errorf("err = %v, want driver complaint", err)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("database: [not a map")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Server.Port != 8600 {
		t.Errorf("Server.Port = %d, want 8600", cfg.Server.Port)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trestle.yaml")
	if err := os.WriteFile(path, []byte(fullYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Name != "trestle_prod" {
		t.Errorf("Database.Name = %q", cfg.Database.Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
