package domain

import "fmt"

// Default workout parameters
const (
	DefaultExerciseSeconds = 40
	DefaultRestSeconds     = 20
	DefaultRounds          = 4
	DefaultCueLeadSeconds  = 3
)

// Workout is the immutable configuration of a session
type Workout struct {
	ExerciseSeconds int `json:"exercise_seconds"`
	RestSeconds     int `json:"rest_seconds"`
	TotalRounds     int `json:"total_rounds"`
	CueLeadSeconds  int `json:"cue_lead_seconds"`
}

// DefaultWorkout returns the 40/20 x4 workout with a 3 second lead-in
func DefaultWorkout() Workout {
	return Workout{
		ExerciseSeconds: DefaultExerciseSeconds,
		RestSeconds:     DefaultRestSeconds,
		TotalRounds:     DefaultRounds,
		CueLeadSeconds:  DefaultCueLeadSeconds,
	}
}

// Validate checks the workout bounds
func (w Workout) Validate() error {
	switch {
	case w.ExerciseSeconds <= 0:
		return fmt.Errorf("%w: exercise seconds must be positive, got %d", ErrInvalidWorkout, w.ExerciseSeconds)
	case w.RestSeconds <= 0:
		return fmt.Errorf("%w: rest seconds must be positive, got %d", ErrInvalidWorkout, w.RestSeconds)
	case w.TotalRounds < 1:
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidWorkout, w.TotalRounds)
	case w.CueLeadSeconds < 0:
		return fmt.Errorf("%w: cue lead seconds must not be negative, got %d", ErrInvalidWorkout, w.CueLeadSeconds)
	}
	return nil
}

// PhaseDuration returns the countdown length of an active phase.
// ok is false for Ready and Complete, which have no duration.
func (w Workout) PhaseDuration(p Phase) (seconds int, ok bool) {
	switch p {
	case PhaseExercising:
		return w.ExerciseSeconds, true
	case PhaseResting:
		return w.RestSeconds, true
	default:
		return 0, false
	}
}

// SessionState is the mutable part of a session
type SessionState struct {
	Phase            Phase `json:"phase"`
	CurrentRound     int   `json:"current_round"`
	SecondsRemaining int   `json:"seconds_remaining"`
}

// Percent returns remaining/total as a percentage
func Percent(remaining, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(remaining) / float64(total) * 100
}
