package runner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/hiit/internal/domain"
	"github.com/vburojevic/hiit/internal/session"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) Handle(ev domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) snapshot() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

func (r *recorder) len() int { return len(r.snapshot()) }

func (r *recorder) last() domain.Event {
	events := r.snapshot()
	if len(events) == 0 {
		return nil
	}
	return events[len(events)-1]
}

func startRunner(t *testing.T, w domain.Workout, subs ...Subscriber) (*clock.Mock, context.CancelFunc, <-chan error) {
	t.Helper()
	ctrl, err := session.NewController(w)
	require.NoError(t, err)

	mock := clock.NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	r := New(ctrl, mock, nil, subs...)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()
	return mock, cancel, errCh
}

func waitLen(t *testing.T, rec *recorder, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return rec.len() >= n }, time.Second, time.Millisecond, "want %d events", n)
}

func TestRunToCompletion(t *testing.T) {
	rec := &recorder{}
	w := domain.Workout{ExerciseSeconds: 1, RestSeconds: 1, TotalRounds: 1, CueLeadSeconds: 1}
	mock, cancel, errCh := startRunner(t, w, rec)
	defer cancel()

	// start: PhaseStarted + Cue
	waitLen(t, rec, 2)

	// tick 1: remaining 0, no cue at 0
	mock.Add(time.Second)
	waitLen(t, rec, 3)
	assert.Equal(t, domain.EventTimeUpdated, rec.last().EventType())

	// tick 2: rest begins
	mock.Add(time.Second)
	waitLen(t, rec, 5)

	// tick 3: remaining 0
	mock.Add(time.Second)
	waitLen(t, rec, 6)

	// tick 4: complete + fanfare
	mock.Add(time.Second)
	waitLen(t, rec, 8)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not return after completion")
	}

	events := rec.snapshot()
	ps := events[6].(domain.PhaseStarted)
	assert.Equal(t, domain.PhaseComplete, ps.Phase)
	assert.Equal(t, domain.NewFanfareCue(), events[7])
}

func TestRunCancelResets(t *testing.T) {
	rec := &recorder{}
	mock, cancel, errCh := startRunner(t, domain.DefaultWorkout(), rec)

	waitLen(t, rec, 2)
	mock.Add(time.Second)
	waitLen(t, rec, 3)

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not return after cancel")
	}

	ps, ok := rec.last().(domain.PhaseStarted)
	require.True(t, ok)
	assert.Equal(t, domain.PhaseReady, ps.Phase)
	assert.Equal(t, 1, ps.Round)
	assert.Equal(t, 40, ps.SecondsRemaining)
}

func TestFailingSubscriberDoesNotStopOthers(t *testing.T) {
	rec := &recorder{}
	failing := SubscriberFunc(func(domain.Event) error { return errors.New("renderer gone") })
	mock, cancel, _ := startRunner(t, domain.DefaultWorkout(), failing, rec)
	defer cancel()

	waitLen(t, rec, 2)
	mock.Add(time.Second)
	waitLen(t, rec, 3)
}

func TestOnly(t *testing.T) {
	rec := &recorder{}
	sub := Only(rec, domain.EventPhaseStarted)

	require.NoError(t, sub.Handle(domain.TimeUpdated{}))
	require.NoError(t, sub.Handle(domain.NewFanfareCue()))
	require.NoError(t, sub.Handle(domain.PhaseStarted{Phase: domain.PhaseResting}))

	require.Equal(t, 1, rec.len())
	assert.Equal(t, domain.EventPhaseStarted, rec.last().EventType())
}
