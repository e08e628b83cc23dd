// Package goal models planning goals as formulas in disjunctive normal
// form and evaluates them against world states.
package goal

import (
	"fmt"
	"strings"

	"upside-down-research.com/oss/blockplan/internal/world"
)

// Relation names understood by the evaluator.
const (
	RelHolding = "holding"
	RelOnTop   = "ontop"
	RelInside  = "inside"
	RelAbove   = "above"
	RelUnder   = "under"
	RelLeftOf  = "leftof"
	RelRightOf = "rightof"
	RelBeside  = "beside"
)

// Literal is a signed relation over object identifiers (or the floor
// token). Polarity false negates the relation.
type Literal struct {
	Polarity bool     `json:"polarity"`
	Relation string   `json:"relation"`
	Args     []string `json:"args"`
}

func (l Literal) String() string {
	s := fmt.Sprintf("%s(%s)", l.Relation, strings.Join(l.Args, ","))
	if !l.Polarity {
		return "!" + s
	}
	return s
}

// Holds reports whether the literal is true in the given state. A negated
// literal is the logical negation of its positive form.
func (l Literal) Holds(s *world.State) bool {
	truth := l.positive(s)
	if !l.Polarity {
		return !truth
	}
	return truth
}

func (l Literal) positive(s *world.State) bool {
	if l.Relation == RelHolding {
		return len(l.Args) == 1 && s.Holding == l.Args[0]
	}
	if len(l.Args) != 2 {
		return false
	}
	a, b := l.Args[0], l.Args[1]
	colA, rowA := position(s, a)
	colB, rowB := position(s, b)

	switch l.Relation {
	case RelOnTop, RelInside:
		if b == world.Floor {
			return rowA == 0
		}
		return colA >= 0 && colA == colB && rowA == rowB+1
	case RelAbove:
		return colA >= 0 && colA == colB && rowA > rowB
	case RelUnder:
		return colA >= 0 && colA == colB && rowA < rowB
	case RelLeftOf:
		return colA >= 0 && colB >= 0 && colA < colB
	case RelRightOf:
		return colA >= 0 && colB >= 0 && colA > colB
	case RelBeside:
		if colA < 0 || colB < 0 {
			return false
		}
		d := colA - colB
		return d == 1 || d == -1
	}
	return false
}

// position is the geometric interpretation used by the relations: the floor
// sits at row -1 in every column, a held or absent object at column -1.
func position(s *world.State, id string) (col, row int) {
	if id == world.Floor {
		return -1, -1
	}
	return s.Position(id)
}

// Conjunction is a set of literals that must all hold.
type Conjunction []Literal

// Holds reports whether every literal in the conjunction is true.
func (c Conjunction) Holds(s *world.State) bool {
	for _, l := range c {
		if !l.Holds(s) {
			return false
		}
	}
	return true
}

func (c Conjunction) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return strings.Join(parts, " & ")
}

// Formula is a goal in disjunctive normal form: a disjunction of
// conjunctions. It is satisfied when any one conjunction fully holds.
type Formula []Conjunction

// Satisfied reports whether any conjunction of the formula holds in s.
// Every disjunct is checked, not just the first.
func (f Formula) Satisfied(s *world.State) bool {
	for _, c := range f {
		if c.Holds(s) {
			return true
		}
	}
	return false
}

func (f Formula) String() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}
