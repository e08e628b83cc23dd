// Package physics decides whether one object may rest on, or inside,
// another. The planner consumes the Oracle interface as an opaque
// predicate; the rule table lives here and nowhere else.
package physics

import "upside-down-research.com/oss/blockplan/internal/world"

// Relation distinguishes resting on top of an object from being contained
// by a box. Placement legality differs between the two.
type Relation string

const (
	OnTop  Relation = "ontop"
	Inside Relation = "inside"
)

// Oracle reports whether placing src on/in dst violates a physical
// constraint. Implementations must be pure: same inputs, same answer.
type Oracle interface {
	Illegal(src, dst world.Object, rel Relation) bool
}

// Rules is the standard rule table for the block world.
type Rules struct{}

// NewRules returns the standard physics oracle.
func NewRules() Rules {
	return Rules{}
}

// Illegal implements Oracle.
//
// The rules: balls rest only inside boxes (or on the floor, which never
// reaches the oracle); balls support nothing; small objects never support
// large ones; boxes cannot contain same-size boxes, pyramids, or planks;
// small boxes cannot rest on small bricks or pyramids; large boxes cannot
// rest on large pyramids.
func (Rules) Illegal(src, dst world.Object, rel Relation) bool {
	if dst.Form == world.FormBall {
		return true
	}
	if src.Size == world.SizeLarge && dst.Size == world.SizeSmall {
		return true
	}

	switch rel {
	case Inside:
		// dst is a box; it cannot contain a box, pyramid, or plank of
		// its own size.
		switch src.Form {
		case world.FormBox, world.FormPyramid, world.FormPlank:
			if src.Size == dst.Size {
				return true
			}
		}
	case OnTop:
		if src.Form == world.FormBall {
			return true
		}
		if src.Form == world.FormBox {
			if src.Size == world.SizeSmall &&
				dst.Size == world.SizeSmall &&
				(dst.Form == world.FormBrick || dst.Form == world.FormPyramid) {
				return true
			}
			if src.Size == world.SizeLarge &&
				dst.Form == world.FormPyramid && dst.Size == world.SizeLarge {
				return true
			}
		}
	}

	return false
}
