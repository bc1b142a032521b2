// Package runner drives a session controller off a one second clock.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"github.com/vburojevic/hiit/internal/domain"
	"github.com/vburojevic/hiit/internal/session"
	"go.uber.org/zap"
)

// TickInterval is the nominal period of the recurring trigger
const TickInterval = time.Second

// Subscriber receives every emitted event in order
type Subscriber interface {
	Handle(domain.Event) error
}

// SubscriberFunc adapts a function to Subscriber
type SubscriberFunc func(domain.Event) error

func (f SubscriberFunc) Handle(ev domain.Event) error { return f(ev) }

// Only forwards events of the given types to sub
func Only(sub Subscriber, types ...domain.EventType) Subscriber {
	return SubscriberFunc(func(ev domain.Event) error {
		if !lo.Contains(types, ev.EventType()) {
			return nil
		}
		return sub.Handle(ev)
	})
}

// Runner owns a controller for the length of one session. Ticks are handled
// on the Run goroutine, so at most one call into the controller is in flight.
type Runner struct {
	ctrl *session.Controller
	clk  clock.Clock
	log  *zap.Logger
	subs []Subscriber
}

// New creates a runner. A nil logger disables logging.
func New(ctrl *session.Controller, clk clock.Clock, log *zap.Logger, subs ...Subscriber) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{ctrl: ctrl, clk: clk, log: log, subs: subs}
}

// Run starts the session and ticks it until Complete, returning nil. If ctx
// ends first the session is reset and ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context) error {
	// Armed before start() so the first second is never lost.
	ticker := r.clk.Ticker(TickInterval)
	defer ticker.Stop()

	events, err := r.ctrl.Start()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	r.dispatch(events)

	for {
		select {
		case <-ctx.Done():
			r.log.Debug("session cancelled", zap.String("phase", string(r.ctrl.Phase())), zap.Int("round", r.ctrl.Round()))
			r.dispatch(r.ctrl.Reset())
			return ctx.Err()

		case <-ticker.C:
			events, err := r.ctrl.Tick()
			if err != nil {
				return fmt.Errorf("tick failed: %w", err)
			}
			r.dispatch(events)
			if r.ctrl.Phase() == domain.PhaseComplete {
				r.log.Debug("session complete", zap.Int("rounds", r.ctrl.Round()))
				return nil
			}
		}
	}
}

// dispatch delivers events to every subscriber. A failing subscriber is
// logged and does not stop the others or the session.
func (r *Runner) dispatch(events []domain.Event) {
	for _, ev := range events {
		for _, sub := range r.subs {
			if err := sub.Handle(ev); err != nil {
				r.log.Warn("subscriber failed", zap.String("event", string(ev.EventType())), zap.Error(err))
			}
		}
	}
}
