package plan

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/blockplan/internal/goal"
	"upside-down-research.com/oss/blockplan/internal/world"
)

// Candidate is the outcome of planning one goal interpretation. Exactly one
// of Plan and Err is set.
type Candidate struct {
	Formula goal.Formula
	Plan    *Plan
	Err     error
}

// PlanAll plans every candidate formula independently and in parallel. The
// calls share nothing: each owns its own search structures and a clone of
// the start state. A failure on one candidate never aborts the others; the
// returned error is non-nil only when every candidate failed.
func (p *Planner) PlanAll(start *world.State, formulas []goal.Formula) ([]Candidate, error) {
	if len(formulas) == 0 {
		return nil, fmt.Errorf("%w: no candidate formulas", ErrNoPlan)
	}

	candidates := make([]Candidate, len(formulas))
	var wg sync.WaitGroup
	for i, f := range formulas {
		wg.Add(1)
		go func(i int, f goal.Formula) {
			defer wg.Done()
			pl, err := p.Plan(start.Clone(), f)
			candidates[i] = Candidate{Formula: f, Plan: pl, Err: err}
		}(i, f)
	}
	wg.Wait()

	failures := 0
	for _, c := range candidates {
		if c.Err != nil {
			failures++
			log.Warn("Candidate failed", "goal", c.Formula.String(), "error", c.Err)
		}
	}
	if failures == len(candidates) {
		return candidates, fmt.Errorf("%w: all %d candidate goals failed", ErrNoPlan, len(candidates))
	}
	return candidates, nil
}

// Best returns the cheapest successful candidate plan, or nil if none
// succeeded. Ties keep the earliest candidate, so results are reproducible.
func Best(candidates []Candidate) *Plan {
	var best *Plan
	for _, c := range candidates {
		if c.Err != nil {
			continue
		}
		if best == nil || c.Plan.Cost < best.Cost {
			best = c.Plan
		}
	}
	return best
}
