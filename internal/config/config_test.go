package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Planner.Deadline() != 10*time.Second {
		t.Errorf("Expected 10s default deadline, got %v", cfg.Planner.Deadline())
	}
	if cfg.Planner.Penalty != 2 {
		t.Errorf("Expected penalty 2, got %v", cfg.Planner.Penalty)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics should default to disabled")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Missing File Uses Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Planner.Penalty != 2 {
			t.Errorf("Expected default penalty, got %v", cfg.Planner.Penalty)
		}
	})

	t.Run("Empty Path Uses Defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Output.Directory != "./output" {
			t.Errorf("Expected default output dir, got %s", cfg.Output.Directory)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		content := `
planner:
  deadline_sec: 0.5
  penalty: 4
metrics:
  enabled: true
  influx_token: ${BLOCKPLAN_TEST_TOKEN}
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("BLOCKPLAN_TEST_TOKEN", "secret-token")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Planner.Deadline() != 500*time.Millisecond {
			t.Errorf("Expected 500ms deadline, got %v", cfg.Planner.Deadline())
		}
		if cfg.Planner.Penalty != 4 {
			t.Errorf("Expected penalty 4, got %v", cfg.Planner.Penalty)
		}
		if cfg.Metrics.InfluxToken != "secret-token" {
			t.Errorf("Environment interpolation failed: %q", cfg.Metrics.InfluxToken)
		}
		// Untouched sections keep their defaults.
		if cfg.Output.Directory != "./output" {
			t.Errorf("Expected default output dir, got %s", cfg.Output.Directory)
		}
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cfg.yaml")

	cfg := DefaultConfig()
	cfg.Planner.Penalty = 7
	cfg.Metrics.Enabled = true

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Planner.Penalty != 7 || !loaded.Metrics.Enabled {
		t.Errorf("Round trip lost values: %+v", loaded)
	}
}
