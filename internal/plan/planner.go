// Package plan ties the block-world model to the generic search engine: it
// enumerates primitive arm actions as graph edges, estimates remaining work
// for a goal formula, and encodes the resulting state path as a sequence of
// primitive action tokens.
package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/blockplan/internal/goal"
	"upside-down-research.com/oss/blockplan/internal/physics"
	"upside-down-research.com/oss/blockplan/internal/search"
	"upside-down-research.com/oss/blockplan/internal/world"
)

// Action is a primitive arm action token. The alphabet has exactly four
// symbols.
type Action string

const (
	MoveLeft  Action = "move arm left"
	MoveRight Action = "move arm right"
	PickUp    Action = "pick up"
	PutDown   Action = "put down"
)

// ErrNoPlan is returned when the search frontier is exhausted or the
// deadline elapses before the goal formula is satisfied. It is definitive
// for that formula; callers do not retry.
var ErrNoPlan = errors.New("no plan found")

// DefaultDeadline bounds a single planning call when the caller does not
// set one.
const DefaultDeadline = 10 * time.Second

// DefaultPenalty is the heuristic's per-object clearing penalty.
const DefaultPenalty = 2.0

// Plan is a complete action sequence: the goal formula holds in the state
// reached by the last action. An empty sequence means the goal already held.
type Plan struct {
	Actions  []Action `json:"actions"`
	Cost     float64  `json:"cost"`
	Expanded int      `json:"expanded"`
}

func (p *Plan) String() string {
	if len(p.Actions) == 0 {
		return "empty plan (goal already satisfied)"
	}
	parts := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		parts[i] = fmt.Sprintf("%d. %s", i+1, a)
	}
	return fmt.Sprintf("plan (cost %.0f):\n%s", p.Cost, strings.Join(parts, "\n"))
}

// Options configures a Planner. Zero values fall back to defaults.
type Options struct {
	// Deadline is the wall-clock budget per planning call.
	Deadline time.Duration
	// Penalty is the heuristic cost charged per object that must be
	// relocated before a goal object can move.
	Penalty float64
}

// Planner plans primitive action sequences for goal formulas over a fixed
// object registry and physics oracle. It is safe for concurrent use: each
// call owns its own search structures and never shares states.
type Planner struct {
	reg      world.Registry
	oracle   physics.Oracle
	deadline time.Duration
	penalty  float64
}

// NewPlanner creates a Planner. The oracle is consulted for every put-down
// onto a non-floor destination and is never second-guessed.
func NewPlanner(reg world.Registry, oracle physics.Oracle, opts Options) *Planner {
	if opts.Deadline <= 0 {
		opts.Deadline = DefaultDeadline
	}
	if opts.Penalty <= 0 {
		opts.Penalty = DefaultPenalty
	}
	return &Planner{
		reg:      reg,
		oracle:   oracle,
		deadline: opts.Deadline,
		penalty:  opts.Penalty,
	}
}

// Deadline returns the per-call wall-clock budget.
func (p *Planner) Deadline() time.Duration {
	return p.deadline
}

// Plan searches for an action sequence that transforms start into a state
// satisfying formula. Returns ErrNoPlan when the search fails, or a wrapped
// world.ErrInvalidState if the start state is malformed.
func (p *Planner) Plan(start *world.State, formula goal.Formula) (*Plan, error) {
	return p.PlanDeadline(start, formula, p.deadline)
}

// PlanDeadline is Plan with an explicit wall-clock budget for this call.
func (p *Planner) PlanDeadline(start *world.State, formula goal.Formula, deadline time.Duration) (*Plan, error) {
	if err := start.Validate(p.reg); err != nil {
		return nil, err
	}

	log.Info("Starting plan search", "goal", formula.String(), "deadline", deadline)

	if formula.Satisfied(start) {
		log.Info("Goal already satisfied, no actions needed")
		return &Plan{Actions: []Action{}, Cost: 0}, nil
	}

	space := &stateSpace{reg: p.reg, oracle: p.oracle}
	result, err := search.Search[*world.State](
		space,
		start.Clone(),
		formula.Satisfied,
		p.heuristic(formula),
		deadline,
	)
	if err != nil {
		return nil, fmt.Errorf("%w for goal %q: %s", ErrNoPlan, formula.String(), err)
	}

	actions, err := Encode(result.Path)
	if err != nil {
		return nil, err
	}

	log.Info("Plan found", "actions", len(actions), "cost", result.Cost, "expanded", result.Expanded)
	return &Plan{Actions: actions, Cost: result.Cost, Expanded: result.Expanded}, nil
}

// stateSpace is the implicit graph of world states: up to four cost-1 edges
// per state, one per legal primitive action.
type stateSpace struct {
	reg    world.Registry
	oracle physics.Oracle
}

func (sp *stateSpace) Successors(s *world.State) []search.Edge[*world.State] {
	edges := make([]search.Edge[*world.State], 0, 4)

	if s.Arm > 0 {
		next := s.Clone()
		next.Arm--
		edges = append(edges, search.Edge[*world.State]{To: next, Cost: 1})
	}

	if s.Arm < len(s.Stacks)-1 {
		next := s.Clone()
		next.Arm++
		edges = append(edges, search.Edge[*world.State]{To: next, Cost: 1})
	}

	if s.Holding == "" && len(s.Stacks[s.Arm]) > 0 {
		next := s.Clone()
		col := next.Stacks[next.Arm]
		next.Holding = col[len(col)-1]
		next.Stacks[next.Arm] = col[:len(col)-1]
		edges = append(edges, search.Edge[*world.State]{To: next, Cost: 1})
	}

	if s.Holding != "" && sp.legalPutDown(s) {
		next := s.Clone()
		next.Stacks[next.Arm] = append(next.Stacks[next.Arm], next.Holding)
		next.Holding = ""
		edges = append(edges, search.Edge[*world.State]{To: next, Cost: 1})
	}

	return edges
}

// legalPutDown asks the oracle whether the held object may rest on the top
// of the arm's column. The floor accepts anything; a box top means the
// object goes inside it.
func (sp *stateSpace) legalPutDown(s *world.State) bool {
	top := s.Top(s.Arm)
	if top == world.Floor {
		return true
	}

	src, ok := sp.reg.Lookup(s.Holding)
	if !ok {
		return false
	}
	dst, ok := sp.reg.Lookup(top)
	if !ok {
		return false
	}

	rel := physics.OnTop
	if dst.Form == world.FormBox {
		rel = physics.Inside
	}
	return !sp.oracle.Illegal(src, dst, rel)
}

// heuristic estimates the remaining actions for a formula as the cheapest
// of its conjunctions, each conjunction costing the sum of its unsatisfied
// literals. An unsatisfied literal charges the per-object penalty for every
// object stacked above each of its placed arguments (each must be relocated
// first), with a floor of one action. Arm travel and intermediate
// relocations are ignored, so the estimate is not guaranteed admissible;
// the engine stays correct, only optimality guarantees weaken.
func (p *Planner) heuristic(formula goal.Formula) func(*world.State) float64 {
	return func(s *world.State) float64 {
		best := -1.0
		for _, conj := range formula {
			total := 0.0
			for _, lit := range conj {
				total += p.literalEstimate(s, lit)
			}
			if best < 0 || total < best {
				best = total
			}
		}
		if best < 0 {
			return 0
		}
		return best
	}
}

func (p *Planner) literalEstimate(s *world.State, lit goal.Literal) float64 {
	if lit.Holds(s) {
		return 0
	}

	cost := 0.0
	for _, arg := range lit.Args {
		if arg == world.Floor {
			continue
		}
		cost += p.penalty * float64(s.AboveCount(arg))
	}
	if cost == 0 {
		// Mispositioned but unburied: still at least one action away.
		cost = 1
	}
	return cost
}

// Encode translates a state path from the search engine into primitive
// action tokens by diffing consecutive states. A malformed path (two states
// not related by one primitive action) wraps world.ErrInvalidState.
func Encode(path []*world.State) ([]Action, error) {
	actions := make([]Action, 0, len(path))
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		switch {
		case cur.Arm == prev.Arm-1:
			actions = append(actions, MoveLeft)
		case cur.Arm == prev.Arm+1:
			actions = append(actions, MoveRight)
		case prev.Holding == "" && cur.Holding != "":
			actions = append(actions, PickUp)
		case prev.Holding != "" && cur.Holding == "":
			actions = append(actions, PutDown)
		default:
			return nil, fmt.Errorf("%w: states %q and %q differ by no primitive action",
				world.ErrInvalidState, prev.Key(), cur.Key())
		}
	}
	return actions, nil
}
