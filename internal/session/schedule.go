package session

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/vburojevic/hiit/internal/domain"
)

// Segment is one phase of a planned session
type Segment struct {
	Type          string       `json:"type"` // "segment"
	SchemaVersion int          `json:"schemaVersion"`
	Round         int          `json:"round"`
	Phase         domain.Phase `json:"phase"`
	StartSeconds  int          `json:"start_seconds"` // offset from start()
	Seconds       int          `json:"seconds"`       // ticks spent in the phase
}

// Start returns the segment offset as a duration
func (s Segment) Start() time.Duration {
	return time.Duration(s.StartSeconds) * time.Second
}

// Plan is the timeline a workout produces when ticked once per second
type Plan struct {
	Workout  domain.Workout
	Segments []Segment
}

// TotalSeconds returns the time from start() until Complete
func (p Plan) TotalSeconds() int {
	return lo.SumBy(p.Segments, func(s Segment) int { return s.Seconds })
}

// Schedule drives a fresh controller to completion and records when each
// phase begins. Each active phase lasts one tick longer than its duration
// because the countdown displays 0 before switching.
func Schedule(w domain.Workout) (Plan, error) {
	c, err := NewController(w)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{Workout: w}
	elapsed := 0
	record := func(events []domain.Event) {
		for _, ev := range events {
			ps, ok := ev.(domain.PhaseStarted)
			if !ok {
				continue
			}
			if n := len(plan.Segments); n > 0 {
				plan.Segments[n-1].Seconds = elapsed - plan.Segments[n-1].StartSeconds
			}
			plan.Segments = append(plan.Segments, Segment{
				Type:          "segment",
				SchemaVersion: domain.SchemaVersion,
				Round:         ps.Round,
				Phase:         ps.Phase,
				StartSeconds:  elapsed,
			})
		}
	}

	events, err := c.Start()
	if err != nil {
		return Plan{}, err
	}
	record(events)

	for c.Phase() != domain.PhaseComplete {
		events, err := c.Tick()
		if err != nil {
			return Plan{}, fmt.Errorf("schedule tick %d: %w", elapsed+1, err)
		}
		elapsed++
		record(events)
	}

	return plan, nil
}
