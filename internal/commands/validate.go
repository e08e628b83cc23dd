package commands

import (
	"fmt"

	"upside-down-research.com/oss/blockplan/internal/world"
)

// ValidateCommand validates a world file
type ValidateCommand struct {
	WorldFile string `arg:"" name:"world" help:"World file to validate" type:"path"`
}

// Run executes the validate command
func (cmd *ValidateCommand) Run() error {
	fmt.Printf("📋 Validating world file: %s\n\n", cmd.WorldFile)

	reg, state, err := world.LoadFile(cmd.WorldFile)
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		return fmt.Errorf("validation failed")
	}

	held := "nothing"
	if state.Holding != "" {
		held = state.Holding
	}
	fmt.Printf("✓ World is valid\n")
	fmt.Printf("  Columns: %d\n", len(state.Stacks))
	fmt.Printf("  Objects: %d\n", len(reg))
	fmt.Printf("  Arm:     column %d, holding %s\n", state.Arm, held)
	return nil
}
