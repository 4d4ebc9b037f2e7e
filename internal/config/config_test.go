package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("config without file must equal defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
server:
  port: "9100"
geocoding:
  enabled: true
assignment:
  primary_bus: Rebel
  max_stops_per_bus: 20
bus_keywords:
  ocho: Ocho
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("port = %s", cfg.Server.Port)
	}
	if !cfg.Geocoding.Enabled {
		t.Error("geocoding must be enabled")
	}
	if cfg.Assignment.PrimaryBus != "Rebel" || cfg.Assignment.MaxStopsPerBus != 20 {
		t.Errorf("assignment = %+v", cfg.Assignment)
	}
	// Untouched sections keep their defaults.
	if cfg.Data.MatchedDir != "data/matched" {
		t.Errorf("matched dir = %s", cfg.Data.MatchedDir)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
data:
  matched_dir: ""
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for blank matched_dir")
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("explicit path that does not exist must fail")
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("FLEET_TEST_KEY", "")
	if got := Get("FLEET_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("FLEET_TEST_KEY", "set")
	if got := Get("FLEET_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("got %q", got)
	}
}
