package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"upside-down-research.com/oss/blockplan/internal/config"
)

// ConfigCommand manages configuration
type ConfigCommand struct {
	Init ConfigInitCommand `cmd:"" help:"Create a new configuration file"`
	Show ConfigShowCommand `cmd:"" help:"Print the effective configuration"`
}

// ConfigInitCommand creates a new config file
type ConfigInitCommand struct {
	Output string `name:"output" help:"Output path for config file" default:"blockplan.yaml"`
	Force  bool   `name:"force" help:"Overwrite existing file"`
}

// Run executes the config init command
func (cmd *ConfigInitCommand) Run() error {
	// Check if file exists
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cmd.Output)
	}

	// Write example config
	err := os.WriteFile(cmd.Output, []byte(config.ExampleConfig()), 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("✓ Created configuration file: %s\n", cmd.Output)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the config file to tune the planner and metrics")
	fmt.Println("  2. Run 'blockplan validate <world-file>' to check a world")
	fmt.Println("  3. Run 'blockplan plan <world-file> --goal <formula>' to plan")

	return nil
}

// ConfigShowCommand prints the effective configuration
type ConfigShowCommand struct {
	Config string `name:"config" help:"Config file path" default:"blockplan.yaml"`
}

// Run executes the config show command
func (cmd *ConfigShowCommand) Run() error {
	cfg, err := config.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
