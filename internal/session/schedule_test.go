package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/hiit/internal/domain"
)

func TestScheduleDefaults(t *testing.T) {
	plan, err := Schedule(domain.DefaultWorkout())
	require.NoError(t, err)

	// 4 rounds of exercise + rest, then Complete
	require.Len(t, plan.Segments, 9)

	first := plan.Segments[0]
	assert.Equal(t, domain.PhaseExercising, first.Phase)
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, 0, first.StartSeconds)
	assert.Equal(t, 41, first.Seconds)

	rest := plan.Segments[1]
	assert.Equal(t, domain.PhaseResting, rest.Phase)
	assert.Equal(t, 41*time.Second, rest.Start())
	assert.Equal(t, 21, rest.Seconds)

	second := plan.Segments[2]
	assert.Equal(t, domain.PhaseExercising, second.Phase)
	assert.Equal(t, 2, second.Round)
	assert.Equal(t, 62, second.StartSeconds)

	last := plan.Segments[len(plan.Segments)-1]
	assert.Equal(t, domain.PhaseComplete, last.Phase)
	assert.Equal(t, 4, last.Round)
	assert.Equal(t, 0, last.Seconds)

	assert.Equal(t, 4*(41+21), plan.TotalSeconds())
	assert.Equal(t, plan.TotalSeconds(), last.StartSeconds)
}

func TestScheduleSingleRound(t *testing.T) {
	plan, err := Schedule(domain.Workout{ExerciseSeconds: 1, RestSeconds: 1, TotalRounds: 1})
	require.NoError(t, err)

	require.Len(t, plan.Segments, 3)
	assert.Equal(t, 4, plan.TotalSeconds())
	for _, s := range plan.Segments {
		assert.Equal(t, "segment", s.Type)
		assert.Equal(t, domain.SchemaVersion, s.SchemaVersion)
	}
}

func TestScheduleInvalidWorkout(t *testing.T) {
	_, err := Schedule(domain.Workout{})
	assert.ErrorIs(t, err, domain.ErrInvalidWorkout)
}
