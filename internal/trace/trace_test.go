package trace

import (
	"testing"
	"time"

	"upside-down-research.com/oss/blockplan/internal/plan"
	"upside-down-research.com/oss/blockplan/internal/world"
)

func sampleRecord(runID string) *Record {
	best := &plan.Plan{
		Actions:  []plan.Action{plan.PickUp, plan.MoveRight, plan.PutDown},
		Cost:     3,
		Expanded: 12,
	}
	return &Record{
		RunID:     runID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		WorldFile: "examples/small.yaml",
		Initial:   &world.State{Stacks: [][]string{{"a"}, {"b"}, {}}, Arm: 0},
		Outcomes: []GoalOutcome{
			{Goal: "ontop(a,b)", Plan: best},
			{Goal: "ontop(b,a)", Error: "no plan found"},
		},
		Best:    best,
		Elapsed: 42 * time.Millisecond,
	}
}

func TestStore(t *testing.T) {
	store := NewStore(t.TempDir())

	t.Run("Save And Load", func(t *testing.T) {
		rec := sampleRecord("run-1")
		if err := store.Save(rec); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load("run-1")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.RunID != "run-1" {
			t.Errorf("Expected run-1, got %s", loaded.RunID)
		}
		if loaded.Best == nil || loaded.Best.Cost != 3 {
			t.Errorf("Best plan lost in round trip: %+v", loaded.Best)
		}
		if len(loaded.Outcomes) != 2 {
			t.Fatalf("Expected 2 outcomes, got %d", len(loaded.Outcomes))
		}
		if loaded.Outcomes[1].Error == "" {
			t.Error("Failed outcome should keep its error message")
		}
		if len(loaded.Initial.Stacks) != 3 {
			t.Errorf("Initial state lost: %+v", loaded.Initial)
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := store.Save(sampleRecord("run-2")); err != nil {
			t.Fatal(err)
		}
		ids, err := store.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(ids) != 2 {
			t.Errorf("Expected 2 runs, got %v", ids)
		}
	})

	t.Run("Load Missing", func(t *testing.T) {
		if _, err := store.Load("no-such-run"); err == nil {
			t.Error("Expected error for missing run")
		}
	})

	t.Run("List Empty Store", func(t *testing.T) {
		empty := NewStore(t.TempDir() + "/unused")
		ids, err := empty.List()
		if err != nil || ids != nil {
			t.Errorf("Expected empty list, got %v, %v", ids, err)
		}
	})
}
