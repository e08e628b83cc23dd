package goal

import (
	"fmt"
	"strings"
)

// Parse reads a goal formula from its textual form:
//
//	ontop(a,b) & leftof(c,floor) | !holding(e)
//
// '|' separates disjuncts, '&' separates literals within a disjunct, '!'
// negates a literal. This is a structured command syntax, not natural
// language; identifiers are taken as-is.
func Parse(text string) (Formula, error) {
	var formula Formula
	for _, disjunct := range strings.Split(text, "|") {
		var conj Conjunction
		for _, part := range strings.Split(disjunct, "&") {
			lit, err := parseLiteral(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			conj = append(conj, lit)
		}
		if len(conj) == 0 {
			return nil, fmt.Errorf("empty conjunction in goal %q", text)
		}
		formula = append(formula, conj)
	}
	if len(formula) == 0 {
		return nil, fmt.Errorf("empty goal formula")
	}
	return formula, nil
}

func parseLiteral(s string) (Literal, error) {
	lit := Literal{Polarity: true}
	if strings.HasPrefix(s, "!") {
		lit.Polarity = false
		s = strings.TrimSpace(s[1:])
	}

	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return Literal{}, fmt.Errorf("malformed literal %q, want rel(arg,...)", s)
	}
	lit.Relation = strings.TrimSpace(s[:open])

	argText := s[open+1 : len(s)-1]
	for _, arg := range strings.Split(argText, ",") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return Literal{}, fmt.Errorf("empty argument in literal %q", s)
		}
		lit.Args = append(lit.Args, arg)
	}

	if err := checkArity(lit); err != nil {
		return Literal{}, err
	}
	return lit, nil
}

func checkArity(l Literal) error {
	want := 2
	if l.Relation == RelHolding {
		want = 1
	}
	switch l.Relation {
	case RelHolding, RelOnTop, RelInside, RelAbove, RelUnder, RelLeftOf, RelRightOf, RelBeside:
	default:
		return fmt.Errorf("unknown relation %q", l.Relation)
	}
	if len(l.Args) != want {
		return fmt.Errorf("relation %q wants %d argument(s), got %d", l.Relation, want, len(l.Args))
	}
	return nil
}
