package wakelock

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// CommandAcquirer holds a lock by keeping an inhibitor process alive.
// The lock is lost if the process exits on its own.
type CommandAcquirer struct {
	Name string
	Args []string
}

// DefaultAcquirer returns the platform inhibitor: caffeinate on macOS,
// systemd-inhibit on Linux
func DefaultAcquirer() Acquirer {
	switch runtime.GOOS {
	case "darwin":
		return &CommandAcquirer{Name: "caffeinate", Args: []string{"-d", "-i"}}
	case "linux":
		return &CommandAcquirer{Name: "systemd-inhibit", Args: []string{
			"--what=idle:sleep",
			"--who=hiit",
			"--why=workout in progress",
			"--mode=block",
			"sleep", "infinity",
		}}
	default:
		return Unsupported{}
	}
}

func (a *CommandAcquirer) Acquire(ctx context.Context) (Lock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := exec.LookPath(a.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrUnsupported, a.Name)
	}

	cmd := exec.Command(path, a.Args...)
	ownGroup(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", a.Name, err)
	}

	l := &processLock{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(l.done)
	}()
	return l, nil
}

type processLock struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (l *processLock) Done() <-chan struct{} { return l.done }

// Release stops the inhibitor and everything it forked. The group is
// signalled even if the inhibitor already exited, since its children may not have.
func (l *processLock) Release() error {
	if err := killGroup(l.cmd); err != nil {
		select {
		case <-l.done:
			return nil
		default:
		}
		return fmt.Errorf("failed to stop inhibitor: %w", err)
	}
	<-l.done
	return nil
}

// Unsupported always fails with ErrUnsupported
type Unsupported struct{}

func (Unsupported) Acquire(context.Context) (Lock, error) {
	return nil, ErrUnsupported
}

// Disabled hands out locks that do nothing, for --no-wake-lock
type Disabled struct{}

func (Disabled) Acquire(context.Context) (Lock, error) {
	return nopLock{}, nil
}

type nopLock struct{}

func (nopLock) Release() error        { return nil }
func (nopLock) Done() <-chan struct{} { return nil }
