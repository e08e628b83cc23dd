package world

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidState reports a violation of the world data-model invariants:
// an object in two places at once, an arm index out of range, and so on.
// These are internal errors, not domain failures; a correct successor
// generator never produces one.
var ErrInvalidState = errors.New("invalid world state")

// State is an immutable-value snapshot of the block world: column stacks of
// object identifiers (index 0 is floor-adjacent), the arm payload, and the
// arm's column. Successor generation always works on a fresh Clone, never
// on an ancestor.
type State struct {
	Stacks  [][]string `yaml:"stacks" json:"stacks"`
	Holding string     `yaml:"holding" json:"holding"` // empty string means the arm is free
	Arm     int        `yaml:"arm" json:"arm"`
}

// Clone returns an independently owned deep copy. The stacks share no
// backing arrays with the receiver.
func (s *State) Clone() *State {
	stacks := make([][]string, len(s.Stacks))
	for i, col := range s.Stacks {
		stacks[i] = append([]string(nil), col...)
	}
	return &State{Stacks: stacks, Holding: s.Holding, Arm: s.Arm}
}

// Key returns a canonical string identity for the state. Two states with
// equal stacks, payload, and arm column produce the same key, so the search
// engine can use it for its visited table.
func (s *State) Key() string {
	var b strings.Builder
	for i, col := range s.Stacks {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strings.Join(col, ","))
	}
	b.WriteByte(';')
	b.WriteString(s.Holding)
	fmt.Fprintf(&b, ";%d", s.Arm)
	return b.String()
}

func (s *State) String() string {
	return s.Key()
}

// Position returns the column and row of an object identifier, row 0 being
// floor-adjacent. The floor token and identifiers not currently placed in
// any stack (including the held object) report row -1.
func (s *State) Position(id string) (col, row int) {
	for c, stack := range s.Stacks {
		for r, obj := range stack {
			if obj == id {
				return c, r
			}
		}
	}
	return -1, -1
}

// Top returns the identifier on top of the column at index col, or Floor
// for an empty column.
func (s *State) Top(col int) string {
	stack := s.Stacks[col]
	if len(stack) == 0 {
		return Floor
	}
	return stack[len(stack)-1]
}

// AboveCount returns how many objects rest above id in its column. An
// object that is held or not placed has nothing above it.
func (s *State) AboveCount(id string) int {
	col, row := s.Position(id)
	if row < 0 {
		return 0
	}
	return len(s.Stacks[col]) - row - 1
}

// Validate checks the data-model invariants against a registry: every
// identifier known, every identifier in exactly one place, arm in range.
// Violations wrap ErrInvalidState.
func (s *State) Validate(reg Registry) error {
	if len(s.Stacks) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidState)
	}
	if s.Arm < 0 || s.Arm >= len(s.Stacks) {
		return fmt.Errorf("%w: arm column %d out of range [0,%d)", ErrInvalidState, s.Arm, len(s.Stacks))
	}

	seen := make(map[string]bool)
	place := func(id string) error {
		if id == Floor {
			return fmt.Errorf("%w: floor token used as an object", ErrInvalidState)
		}
		if _, ok := reg.Lookup(id); !ok {
			return fmt.Errorf("%w: unknown object %q", ErrInvalidState, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: object %q appears in two places", ErrInvalidState, id)
		}
		seen[id] = true
		return nil
	}

	for _, col := range s.Stacks {
		for _, id := range col {
			if err := place(id); err != nil {
				return err
			}
		}
	}
	if s.Holding != "" {
		if err := place(s.Holding); err != nil {
			return err
		}
	}
	return nil
}

// Objects returns every object identifier present in the state, stacks
// first (bottom to top, left to right) then the held object.
func (s *State) Objects() []string {
	var ids []string
	for _, col := range s.Stacks {
		ids = append(ids, col...)
	}
	if s.Holding != "" {
		ids = append(ids, s.Holding)
	}
	return ids
}
