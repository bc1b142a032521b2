package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vburojevic/hiit/internal/domain"
	"github.com/vburojevic/hiit/internal/output"
	"github.com/vburojevic/hiit/internal/runner"
	"github.com/vburojevic/hiit/internal/session"
	"github.com/vburojevic/hiit/internal/sound"
	"github.com/vburojevic/hiit/internal/wakelock"
	"go.uber.org/zap"
)

// fanfareGrace bounds how long run waits for the completion fanfare to finish
const fanfareGrace = 2 * time.Second

// RunCmd runs a workout headless, rendering events to stdout
type RunCmd struct {
	WorkoutFlags `embed:""`

	Mute     bool `default:"${config_muted}" help:"Start with sound off"`
	WakeLock bool `default:"${config_wake_lock}" negatable:"" help:"Keep the display awake during the workout"`
}

// Run executes the run command
func (c *RunCmd) Run(globals *Globals) error {
	w := c.Workout()
	if err := validateWorkout(globals, w); err != nil {
		return err
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.run(ctx, globals, w)
}

func (c *RunCmd) run(ctx context.Context, globals *Globals, w domain.Workout) error {
	ctrl, err := session.NewController(w)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_WORKOUT", err.Error())
	}

	log := newLogger(globals, true)
	defer log.Sync()

	clk := globals.clock()
	device := sound.NewDevice(sound.NewBellSink(globals.Stderr), clk, log)
	device.SetMuted(c.Mute)

	keeper := wakelock.NewKeeper(wakeLockAcquirer(c.WakeLock), log)
	// A missing wake lock never blocks the workout; the keeper logs it.
	_ = keeper.Acquire(ctx)
	defer keeper.Release()

	log.Debug("starting workout",
		zap.Int("exercise", w.ExerciseSeconds),
		zap.Int("rest", w.RestSeconds),
		zap.Int("rounds", w.TotalRounds),
		zap.Int("cue_lead", w.CueLeadSeconds))

	r := runner.New(ctrl, clk, log, eventRenderer(globals), device)
	err = r.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		device.Stop()
		return nil
	case err != nil:
		return outputErrorCommon(globals, "RUN_FAILED", err.Error())
	}

	// Let the fanfare tail play before the process exits
	drainCtx, cancel := context.WithTimeout(context.Background(), fanfareGrace)
	defer cancel()
	if err := device.Drain(drainCtx); err != nil {
		log.Debug("fanfare cut short", zap.Error(err))
	}
	return nil
}

// eventRenderer picks the subscriber that prints session events
func eventRenderer(globals *Globals) runner.Subscriber {
	var sub runner.Subscriber
	if globals.Format == "ndjson" {
		sub = output.NewNDJSONWriter(globals.Stdout)
	} else {
		sub = output.NewTextWriter(globals.Stdout)
	}
	if globals.Quiet {
		return runner.Only(sub, domain.EventPhaseStarted)
	}
	return sub
}

func wakeLockAcquirer(enabled bool) wakelock.Acquirer {
	if !enabled {
		return wakelock.Disabled{}
	}
	return wakelock.DefaultAcquirer()
}
