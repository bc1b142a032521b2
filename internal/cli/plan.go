package cli

import (
	"github.com/vburojevic/hiit/internal/output"
	"github.com/vburojevic/hiit/internal/session"
)

// PlanCmd prints when each phase of a workout starts
type PlanCmd struct {
	WorkoutFlags `embed:""`
}

// Run executes the plan command
func (c *PlanCmd) Run(globals *Globals) error {
	w := c.Workout()
	if err := validateWorkout(globals, w); err != nil {
		return err
	}

	plan, err := session.Schedule(w)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_WORKOUT", err.Error())
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WritePlan(plan)
	}
	return output.WritePlanTable(globals.Stdout, plan)
}
