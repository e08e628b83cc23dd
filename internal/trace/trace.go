// Package trace persists the record of a planning run: the world, the goal
// candidates tried, and the chosen action sequence. The planner core never
// depends on it; it exists so runs can be inspected after the fact.
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/blockplan/internal/plan"
	"upside-down-research.com/oss/blockplan/internal/world"
)

// Record is the persisted outcome of one planning run.
type Record struct {
	RunID     string        `json:"run_id"`
	CreatedAt string        `json:"created_at"`
	WorldFile string        `json:"world_file,omitempty"`
	Initial   *world.State  `json:"initial"`
	Outcomes  []GoalOutcome `json:"outcomes"`
	Best      *plan.Plan    `json:"best,omitempty"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// GoalOutcome is the per-candidate result inside a record.
type GoalOutcome struct {
	Goal  string     `json:"goal"`
	Plan  *plan.Plan `json:"plan,omitempty"`
	Error string     `json:"error,omitempty"`
}

// Store saves and loads run records under a base directory, one
// subdirectory per run.
type Store struct {
	basePath string
}

// NewStore creates a store rooted at basePath.
func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

// Save writes a record to <base>/<runID>/record.json.
func (s *Store) Save(rec *Record) error {
	runDir := filepath.Join(s.basePath, rec.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	path := filepath.Join(runDir, "record.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}

	log.Info("Run record saved", "path", path)
	return nil
}

// Load reads the record for a run ID.
func (s *Store) Load(runID string) (*Record, error) {
	path := filepath.Join(s.basePath, runID, "record.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

// List returns the run IDs present in the store, lexically ordered.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}
