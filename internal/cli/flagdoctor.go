package cli

import "github.com/vburojevic/hiit/internal/domain"

// validateWorkout reports workout flag problems with a hint naming the flag to fix
func validateWorkout(globals *Globals, w domain.Workout) error {
	err := w.Validate()
	if err == nil {
		return nil
	}
	hint := ""
	switch {
	case w.ExerciseSeconds <= 0:
		hint = "pass --exercise with a value above 0"
	case w.RestSeconds <= 0:
		hint = "pass --rest with a value above 0"
	case w.TotalRounds < 1:
		hint = "pass --rounds 1 or more"
	case w.CueLeadSeconds < 0:
		hint = "pass --cue-lead 0 to disable countdown pips"
	}
	return outputErrorCommon(globals, "INVALID_WORKOUT", err.Error(), hint)
}
