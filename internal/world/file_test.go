package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeWorld(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("Example File", func(t *testing.T) {
		path := writeWorld(t, ExampleFile())

		reg, state, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if len(reg) != 13 {
			t.Errorf("Expected 13 objects, got %d", len(reg))
		}
		if len(state.Stacks) != 10 {
			t.Errorf("Expected 10 columns, got %d", len(state.Stacks))
		}
		if state.Arm != 0 || state.Holding != "" {
			t.Errorf("Expected free arm at column 0, got arm=%d holding=%q", state.Arm, state.Holding)
		}
	})

	t.Run("Invalid World", func(t *testing.T) {
		path := writeWorld(t, `
objects:
  a: {form: brick, size: large, color: green}
stacks:
  - [a, a]
arm: 0
`)
		_, _, err := LoadFile(path)
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("Expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := writeWorld(t, "stacks: [not: valid: yaml")
		if _, _, err := LoadFile(path); err == nil {
			t.Error("Expected parse error")
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected read error")
		}
	})
}
