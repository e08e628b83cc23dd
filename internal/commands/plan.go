package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"upside-down-research.com/oss/blockplan/internal/config"
	"upside-down-research.com/oss/blockplan/internal/goal"
	"upside-down-research.com/oss/blockplan/internal/o11y"
	"upside-down-research.com/oss/blockplan/internal/physics"
	"upside-down-research.com/oss/blockplan/internal/plan"
	"upside-down-research.com/oss/blockplan/internal/progress"
	"upside-down-research.com/oss/blockplan/internal/trace"
	"upside-down-research.com/oss/blockplan/internal/world"
)

// PlanCommand plans an action sequence for a goal in a world
type PlanCommand struct {
	WorldFile string        `arg:"" name:"world" help:"World file to plan in" type:"path"`
	Goal      []string      `name:"goal" short:"g" required:"" help:"Goal formula, e.g. 'ontop(a,b) & leftof(c,d)'. Repeat for independent candidate interpretations."`
	Deadline  time.Duration `name:"deadline" help:"Wall-clock budget per candidate (overrides config)"`
	Config    string        `name:"config" help:"Config file path" default:"blockplan.yaml"`
	Quiet     bool          `name:"quiet" short:"q" help:"Suppress progress output"`
	NoSave    bool          `name:"no-save" help:"Do not persist a run record"`
}

// Run executes the plan command
func (cmd *PlanCommand) Run() error {
	cfg, err := config.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}

	deadline := cfg.Planner.Deadline()
	if cmd.Deadline > 0 {
		deadline = cmd.Deadline
	}

	ind := progress.NewIndicator(!cmd.Quiet)
	ind.Phase("Loading world")
	reg, start, err := world.LoadFile(cmd.WorldFile)
	if err != nil {
		ind.Error("load world", err)
		return err
	}
	ind.Success(fmt.Sprintf("%d columns, %d objects", len(start.Stacks), len(start.Objects())))

	formulas := make([]goal.Formula, 0, len(cmd.Goal))
	for _, text := range cmd.Goal {
		f, err := goal.Parse(text)
		if err != nil {
			return err
		}
		formulas = append(formulas, f)
	}

	planner := plan.NewPlanner(reg, physics.NewRules(), plan.Options{
		Deadline: deadline,
		Penalty:  cfg.Planner.Penalty,
	})

	ind.Phase("Planning")
	for i, f := range formulas {
		ind.Candidate(i+1, len(formulas), f.String())
	}

	began := time.Now()
	candidates, planErr := planner.PlanAll(start, formulas)
	elapsed := time.Since(began)

	best := plan.Best(candidates)
	outcome := "found"
	if best == nil {
		outcome = "not_found"
	}

	if cfg.Metrics.Enabled {
		rec := o11y.NewRecorder(o11y.Options{
			PushgatewayURL: cfg.Metrics.PushgatewayURL,
			InfluxURL:      cfg.Metrics.InfluxURL,
			InfluxToken:    cfg.Metrics.InfluxToken,
			InfluxOrg:      cfg.Metrics.InfluxOrg,
			InfluxBucket:   cfg.Metrics.InfluxBucket,
		})
		cost, expanded := 0.0, 0
		if best != nil {
			cost, expanded = best.Cost, best.Expanded
		}
		rec.PlanCompleted(cmd.WorldFile, outcome, elapsed, cost, expanded)
	}

	if !cmd.NoSave {
		if err := cmd.saveRecord(cfg, start, candidates, best, elapsed); err != nil {
			log.Warn("Failed to save run record", "error", err)
		}
	}

	if planErr != nil {
		ind.Summary(false, "no candidate goal could be planned")
		return planErr
	}

	ind.Result(len(best.Actions), best.Cost, best.Expanded)
	ind.Summary(true, fmt.Sprintf("%d candidate(s), best cost %.0f", len(candidates), best.Cost))

	fmt.Println()
	if len(best.Actions) == 0 {
		fmt.Println("Goal already satisfied; nothing to do.")
		return nil
	}
	actions := make([]string, len(best.Actions))
	for i, a := range best.Actions {
		actions[i] = string(a)
	}
	fmt.Printf("Actions (%d, cost %.0f):\n  %s\n", len(best.Actions), best.Cost, strings.Join(actions, "\n  "))
	return nil
}

func (cmd *PlanCommand) saveRecord(cfg *config.Config, start *world.State, candidates []plan.Candidate, best *plan.Plan, elapsed time.Duration) error {
	outcomes := make([]trace.GoalOutcome, len(candidates))
	for i, c := range candidates {
		outcomes[i] = trace.GoalOutcome{Goal: c.Formula.String(), Plan: c.Plan}
		if c.Err != nil {
			outcomes[i].Error = c.Err.Error()
		}
	}

	store := trace.NewStore(cfg.Output.Directory)
	return store.Save(&trace.Record{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		WorldFile: cmd.WorldFile,
		Initial:   start,
		Outcomes:  outcomes,
		Best:      best,
		Elapsed:   elapsed,
	})
}
