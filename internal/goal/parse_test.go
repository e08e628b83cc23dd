package goal

import "testing"

func TestParse(t *testing.T) {
	t.Run("Single Literal", func(t *testing.T) {
		f, err := Parse("ontop(a,b)")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(f) != 1 || len(f[0]) != 1 {
			t.Fatalf("Expected 1 disjunct with 1 literal, got %v", f)
		}
		l := f[0][0]
		if !l.Polarity || l.Relation != RelOnTop || len(l.Args) != 2 || l.Args[0] != "a" || l.Args[1] != "b" {
			t.Errorf("Unexpected literal %v", l)
		}
	})

	t.Run("Conjunction And Disjunction", func(t *testing.T) {
		f, err := Parse("ontop(a,b) & leftof(c, floor) | !holding(e)")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if len(f) != 2 {
			t.Fatalf("Expected 2 disjuncts, got %d", len(f))
		}
		if len(f[0]) != 2 {
			t.Errorf("Expected 2 literals in first disjunct, got %d", len(f[0]))
		}
		if f[1][0].Polarity {
			t.Error("Expected negated literal in second disjunct")
		}
	})

	t.Run("Whitespace Tolerant", func(t *testing.T) {
		f, err := Parse("  beside( a , c )  ")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if f[0][0].Args[0] != "a" || f[0][0].Args[1] != "c" {
			t.Errorf("Arguments not trimmed: %v", f[0][0].Args)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		bad := []string{
			"",
			"ontop",
			"ontop(a,b",
			"ontop(a)",
			"holding(a,b)",
			"frobnicate(a,b)",
			"ontop(,b)",
			"ontop(a,b) | ",
		}
		for _, text := range bad {
			if _, err := Parse(text); err == nil {
				t.Errorf("Parse(%q) should fail", text)
			}
		}
	})
}
