package session

import "github.com/vburojevic/hiit/internal/domain"

// Controller owns one session's state and applies the phase rules to it.
// It holds no resources and is not safe for concurrent use; callers drive it
// from a single goroutine.
type Controller struct {
	workout domain.Workout
	state   domain.SessionState
}

// NewController creates a controller in Ready for the given workout
func NewController(w domain.Workout) (*Controller, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Controller{workout: w, state: readyState(w)}, nil
}

// Start begins round 1 of exercise. Valid only from Ready.
func (c *Controller) Start() ([]domain.Event, error) {
	return c.apply(start)
}

// Tick advances the countdown by one second. Valid only while exercising or resting.
func (c *Controller) Tick() ([]domain.Event, error) {
	return c.apply(tick)
}

// Reset discards the session and returns to Ready from any phase
func (c *Controller) Reset() []domain.Event {
	events, _ := c.apply(reset)
	return events
}

func (c *Controller) apply(fn transition) ([]domain.Event, error) {
	next, events, err := fn(c.workout, c.state)
	if err != nil {
		return nil, err
	}
	c.state = next
	return events, nil
}

// Workout returns the configuration the session runs
func (c *Controller) Workout() domain.Workout { return c.workout }

// State returns a copy of the current session state
func (c *Controller) State() domain.SessionState { return c.state }

func (c *Controller) Phase() domain.Phase { return c.state.Phase }

func (c *Controller) Round() int { return c.state.CurrentRound }

func (c *Controller) SecondsRemaining() int { return c.state.SecondsRemaining }

// PercentRemaining returns how much of the current phase is left, 100 at the
// start of a phase. Only defined while exercising or resting.
func (c *Controller) PercentRemaining() (float64, error) {
	total, ok := c.workout.PhaseDuration(c.state.Phase)
	if !ok {
		return 0, domain.ErrNoPhaseDuration
	}
	return domain.Percent(c.state.SecondsRemaining, total), nil
}

// transition is a pure step from one state to the next
type transition func(w domain.Workout, s domain.SessionState) (domain.SessionState, []domain.Event, error)

func readyState(w domain.Workout) domain.SessionState {
	return domain.SessionState{
		Phase:            domain.PhaseReady,
		CurrentRound:     1,
		SecondsRemaining: w.ExerciseSeconds,
	}
}

func start(w domain.Workout, s domain.SessionState) (domain.SessionState, []domain.Event, error) {
	if s.Phase != domain.PhaseReady {
		return s, nil, &domain.InvalidTransitionError{Phase: s.Phase, Operation: domain.OpStart}
	}
	s.Phase = domain.PhaseExercising
	s.SecondsRemaining = w.ExerciseSeconds
	return s, []domain.Event{
		domain.NewPhaseStarted(s, w),
		domain.NewPhaseBeginCue(domain.PhaseExercising),
	}, nil
}

func tick(w domain.Workout, s domain.SessionState) (domain.SessionState, []domain.Event, error) {
	if !s.Phase.Active() {
		return s, nil, &domain.InvalidTransitionError{Phase: s.Phase, Operation: domain.OpTick}
	}

	s.SecondsRemaining--
	// The displayed countdown reaches 0 first; only the tick after that switches phase.
	if s.SecondsRemaining < 0 {
		return endPhase(w, s)
	}

	events := []domain.Event{domain.NewTimeUpdated(s, w)}
	if s.SecondsRemaining >= 1 && s.SecondsRemaining <= w.CueLeadSeconds {
		events = append(events, domain.NewCountdownCue(s.SecondsRemaining))
	}
	return s, events, nil
}

func endPhase(w domain.Workout, s domain.SessionState) (domain.SessionState, []domain.Event, error) {
	switch {
	case s.Phase == domain.PhaseExercising:
		s.Phase = domain.PhaseResting
		s.SecondsRemaining = w.RestSeconds
		return s, []domain.Event{
			domain.NewPhaseStarted(s, w),
			domain.NewPhaseBeginCue(domain.PhaseResting),
		}, nil

	case s.CurrentRound < w.TotalRounds:
		s.CurrentRound++
		s.Phase = domain.PhaseExercising
		s.SecondsRemaining = w.ExerciseSeconds
		return s, []domain.Event{
			domain.NewPhaseStarted(s, w),
			domain.NewPhaseBeginCue(domain.PhaseExercising),
		}, nil

	default:
		s.Phase = domain.PhaseComplete
		s.SecondsRemaining = 0
		return s, []domain.Event{
			domain.NewPhaseStarted(s, w),
			domain.NewFanfareCue(),
		}, nil
	}
}

func reset(w domain.Workout, _ domain.SessionState) (domain.SessionState, []domain.Event, error) {
	s := readyState(w)
	return s, []domain.Event{domain.NewPhaseStarted(s, w)}, nil
}
