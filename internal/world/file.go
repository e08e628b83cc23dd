package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk description of a world: the object registry plus the
// initial state. The held object is optional; the arm defaults to column 0.
type File struct {
	Objects Registry   `yaml:"objects"`
	Stacks  [][]string `yaml:"stacks"`
	Holding string     `yaml:"holding"`
	Arm     int        `yaml:"arm"`
}

// LoadFile reads and validates a YAML world file, returning the registry
// and the initial state.
func LoadFile(path string) (Registry, *State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse world file: %w", err)
	}

	state := &State{Stacks: f.Stacks, Holding: f.Holding, Arm: f.Arm}
	if err := state.Validate(f.Objects); err != nil {
		return nil, nil, err
	}
	return f.Objects, state, nil
}

// ExampleFile returns a commented example world file.
func ExampleFile() string {
	return `# blockplan world file
#
# objects: identifier -> {form, size, color}
# stacks:  columns of identifiers, bottom to top
# holding: identifier in the arm, or omit for an empty arm
# arm:     column index of the arm

objects:
  a: {form: brick,   size: large, color: green}
  b: {form: brick,   size: small, color: white}
  c: {form: plank,   size: large, color: red}
  d: {form: plank,   size: small, color: green}
  e: {form: ball,    size: large, color: white}
  f: {form: ball,    size: small, color: black}
  g: {form: table,   size: large, color: blue}
  h: {form: table,   size: small, color: red}
  i: {form: pyramid, size: large, color: yellow}
  j: {form: pyramid, size: small, color: red}
  k: {form: box,     size: large, color: yellow}
  l: {form: box,     size: large, color: red}
  m: {form: box,     size: small, color: blue}

stacks:
  - [e]
  - [g, l]
  - []
  - [k, m, f]
  - []
  - [c, h, j]
  - []
  - [a, i]
  - []
  - [d, b]

arm: 0
`
}
