package domain

// Phase is the controller's primary state
type Phase string

const (
	PhaseReady      Phase = "ready"
	PhaseExercising Phase = "exercising"
	PhaseResting    Phase = "resting"
	PhaseComplete   Phase = "complete"
)

// Active reports whether the phase counts down and accepts ticks
func (p Phase) Active() bool {
	return p == PhaseExercising || p == PhaseResting
}

// Label returns the heading shown for the phase
func (p Phase) Label() string {
	switch p {
	case PhaseReady, PhaseExercising:
		return "EXERCISE"
	case PhaseResting:
		return "REST"
	case PhaseComplete:
		return "DONE!"
	default:
		return "UNKNOWN"
	}
}

// Status returns the short status line shown under the timer
func (p Phase) Status() string {
	switch p {
	case PhaseReady:
		return "READY"
	case PhaseExercising:
		return "GO!"
	case PhaseResting:
		return "BREATHE"
	case PhaseComplete:
		return "WORKOUT FINISHED"
	default:
		return ""
	}
}

// Operation names a controller operation that mutates session state
type Operation string

const (
	OpStart Operation = "start"
	OpTick  Operation = "tick"
	OpReset Operation = "reset"
)
