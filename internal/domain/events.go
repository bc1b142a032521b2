package domain

// SchemaVersion is stamped on every emitted record
const SchemaVersion = 1

// EventType identifies an emitted record on the wire
type EventType string

const (
	EventPhaseStarted EventType = "phase_started"
	EventTimeUpdated  EventType = "time_updated"
	EventCue          EventType = "cue"
)

// Event is anything the controller emits
type Event interface {
	EventType() EventType
}

// PhaseStarted is emitted whenever the session enters a phase, including Ready on reset
type PhaseStarted struct {
	Type             EventType `json:"type"`          // "phase_started"
	SchemaVersion    int       `json:"schemaVersion"` // 1
	Phase            Phase     `json:"phase"`
	Round            int       `json:"round"`
	TotalRounds      int       `json:"total_rounds"`
	SecondsRemaining int       `json:"seconds_remaining"`
	PhaseSeconds     int       `json:"phase_seconds,omitempty"` // 0 for Ready and Complete
}

func (PhaseStarted) EventType() EventType { return EventPhaseStarted }

// TimeUpdated is emitted for every tick that does not end a phase
type TimeUpdated struct {
	Type             EventType `json:"type"`          // "time_updated"
	SchemaVersion    int       `json:"schemaVersion"` // 1
	Phase            Phase     `json:"phase"`
	Round            int       `json:"round"`
	SecondsRemaining int       `json:"seconds_remaining"`
	PhaseSeconds     int       `json:"phase_seconds"`
}

func (TimeUpdated) EventType() EventType { return EventTimeUpdated }

// Percent returns how much of the phase is left
func (t TimeUpdated) Percent() float64 {
	return Percent(t.SecondsRemaining, t.PhaseSeconds)
}

// CueKind is the semantic audio trigger carried by a Cue
type CueKind string

const (
	CuePhaseBegin CueKind = "phase_begin"
	CueCountdown  CueKind = "countdown"
	CueFanfare    CueKind = "fanfare"
)

// Cue asks the audio layer to sound something. Rendering is up to the consumer.
type Cue struct {
	Type             EventType `json:"type"`          // "cue"
	SchemaVersion    int       `json:"schemaVersion"` // 1
	Kind             CueKind   `json:"kind"`
	Phase            Phase     `json:"phase,omitempty"`             // phase_begin only
	SecondsRemaining int       `json:"seconds_remaining,omitempty"` // countdown only
	Final            bool      `json:"final,omitempty"`             // last pip before the switch
}

func (Cue) EventType() EventType { return EventCue }

// NewPhaseStarted creates a PhaseStarted event
func NewPhaseStarted(s SessionState, w Workout) PhaseStarted {
	phaseSeconds, _ := w.PhaseDuration(s.Phase)
	return PhaseStarted{
		Type:             EventPhaseStarted,
		SchemaVersion:    SchemaVersion,
		Phase:            s.Phase,
		Round:            s.CurrentRound,
		TotalRounds:      w.TotalRounds,
		SecondsRemaining: s.SecondsRemaining,
		PhaseSeconds:     phaseSeconds,
	}
}

// NewTimeUpdated creates a TimeUpdated event
func NewTimeUpdated(s SessionState, w Workout) TimeUpdated {
	phaseSeconds, _ := w.PhaseDuration(s.Phase)
	return TimeUpdated{
		Type:             EventTimeUpdated,
		SchemaVersion:    SchemaVersion,
		Phase:            s.Phase,
		Round:            s.CurrentRound,
		SecondsRemaining: s.SecondsRemaining,
		PhaseSeconds:     phaseSeconds,
	}
}

// NewPhaseBeginCue creates the cue sounded when an active phase begins
func NewPhaseBeginCue(p Phase) Cue {
	return Cue{Type: EventCue, SchemaVersion: SchemaVersion, Kind: CuePhaseBegin, Phase: p}
}

// NewCountdownCue creates a lead-in pip
func NewCountdownCue(secondsRemaining int) Cue {
	return Cue{
		Type:             EventCue,
		SchemaVersion:    SchemaVersion,
		Kind:             CueCountdown,
		SecondsRemaining: secondsRemaining,
		Final:            secondsRemaining == 1,
	}
}

// NewFanfareCue creates the completion cue
func NewFanfareCue() Cue {
	return Cue{Type: EventCue, SchemaVersion: SchemaVersion, Kind: CueFanfare}
}
