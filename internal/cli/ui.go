package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vburojevic/hiit/internal/session"
	"github.com/vburojevic/hiit/internal/sound"
	"github.com/vburojevic/hiit/internal/tui"
	"github.com/vburojevic/hiit/internal/wakelock"
)

// UICmd launches the interactive timer
type UICmd struct {
	WorkoutFlags `embed:""`

	Mute     bool `default:"${config_muted}" help:"Start with sound off (toggle with m)"`
	WakeLock bool `default:"${config_wake_lock}" negatable:"" help:"Keep the display awake while a workout runs"`
}

// Run executes the UI command
func (c *UICmd) Run(globals *Globals) error {
	w := c.Workout()
	if err := validateWorkout(globals, w); err != nil {
		return err
	}
	ctrl, err := session.NewController(w)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_WORKOUT", err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	log := newLogger(globals, false)
	defer log.Sync()

	clk := globals.clock()
	device := sound.NewDevice(sound.NewBellSink(globals.Stderr), clk, log)
	device.SetMuted(c.Mute)
	defer device.Stop()

	keeper := wakelock.NewKeeper(wakeLockAcquirer(c.WakeLock), log)
	defer keeper.Release()

	model := tui.New(tui.Options{
		Controller: ctrl,
		Clock:      clk,
		Sound:      device,
		WakeLock:   keeper,
		Logger:     log,
	})

	// Focus reports stand in for display visibility
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return outputErrorCommon(globals, "UI_FAILED", fmt.Sprintf("TUI error: %s", err))
	}
	return nil
}
