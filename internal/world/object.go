package world

import "fmt"

// Form is the shape class of an object. The physics rules key off it.
type Form string

const (
	FormBrick   Form = "brick"
	FormPlank   Form = "plank"
	FormBall    Form = "ball"
	FormPyramid Form = "pyramid"
	FormBox     Form = "box"
	FormTable   Form = "table"
)

// Size is the size class of an object. Only two classes exist; the
// placement rules never need finer granularity.
type Size string

const (
	SizeSmall Size = "small"
	SizeLarge Size = "large"
)

// Floor is the reserved token for the floor pseudo-object. It never appears
// in the registry and occupies row -1 conceptually, below every stack.
const Floor = "floor"

// Object describes a single physical object in the world.
type Object struct {
	Form  Form   `yaml:"form" json:"form"`
	Size  Size   `yaml:"size" json:"size"`
	Color string `yaml:"color" json:"color"`
}

func (o Object) String() string {
	return fmt.Sprintf("%s %s %s", o.Size, o.Color, o.Form)
}

// Registry maps object identifiers to their definitions. It is read-only to
// the planner; the planner looks objects up but never owns or mutates them.
type Registry map[string]Object

// Lookup returns the definition for id. The boolean is false for unknown
// identifiers and for the floor token, which has no definition.
func (r Registry) Lookup(id string) (Object, bool) {
	obj, ok := r[id]
	return obj, ok
}
