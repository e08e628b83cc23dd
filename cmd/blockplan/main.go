package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/blockplan/internal/commands"
)

var CLI struct {
	Plan     commands.PlanCommand     `cmd:"" help:"Plan an action sequence for a goal" default:"withargs"`
	Validate commands.ValidateCommand `cmd:"" help:"Validate a world file"`
	Config   commands.ConfigCommand   `cmd:"" help:"Manage configuration"`

	Verbose bool `name:"verbose" short:"v" help:"Enable debug logging"`
}

const banner = `
 _     _            _         _
| |__ | | ___   ___| | ___ __| | __ _ _ __
| '_ \| |/ _ \ / __| |/ / '_ \ |/ _' | '_ \
| |_) | | (_) | (__|   <| |_) | | (_| | | | |
|_.__/|_|\___/ \___|_|\_\ .__/|_|\__,_|_| |_|
                        |_|

Goal-directed planning for the robot-arm block world
`

func main() {
	log.SetLevel(log.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("blockplan"),
		kong.Description("blockplan - goal-directed block-world planner\n\nSearches for primitive arm actions that make a goal formula true."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: false,
			Summary: true,
		}),
	)

	if CLI.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	// Show banner for main help
	if ctx.Command() == "" {
		fmt.Print(banner)
		fmt.Println("Quick start:")
		fmt.Println("  $ blockplan config init                        # Create config file")
		fmt.Println("  $ blockplan validate world.yaml                # Check a world file")
		fmt.Println("  $ blockplan plan world.yaml -g 'ontop(a,b)'    # Plan a goal")
		fmt.Println()
		fmt.Println("Run 'blockplan --help' for all commands")
		os.Exit(0)
	}

	err := ctx.Run()
	if err != nil {
		log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
