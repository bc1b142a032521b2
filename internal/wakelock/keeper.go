// Package wakelock keeps the display awake while a session runs.
package wakelock

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrUnsupported is returned when the platform has no way to inhibit idle
var ErrUnsupported = errors.New("wake lock not supported on this platform")

// Lock is a held wake lock. Done is closed if the lock is lost.
type Lock interface {
	Release() error
	Done() <-chan struct{}
}

// Acquirer obtains wake locks
type Acquirer interface {
	Acquire(ctx context.Context) (Lock, error)
}

// Keeper tracks whether a session wants the screen awake and holds a lock
// for it. It never blocks or fails the session: acquisition errors are
// logged and returned for information only.
type Keeper struct {
	acq Acquirer
	log *zap.Logger

	mu     sync.Mutex
	active bool
	lock   Lock
}

// NewKeeper creates a keeper. A nil logger disables logging.
func NewKeeper(acq Acquirer, log *zap.Logger) *Keeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Keeper{acq: acq, log: log}
}

// Acquire marks the session active and takes a lock if none is held
func (k *Keeper) Acquire(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.active = true
	return k.ensureLocked(ctx)
}

// Visible re-acquires the lock after the display becomes visible again, if
// the session is still active and the lock was lost in the meantime
func (k *Keeper) Visible(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.active {
		return nil
	}
	return k.ensureLocked(ctx)
}

// Release marks the session inactive and drops any held lock
func (k *Keeper) Release() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.active = false
	if k.lock == nil {
		return nil
	}
	lock := k.lock
	k.lock = nil
	if err := lock.Release(); err != nil {
		k.log.Warn("wake lock release failed", zap.Error(err))
		return err
	}
	k.log.Debug("wake lock released")
	return nil
}

// Held reports whether a live lock is currently held
func (k *Keeper) Held() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.lock != nil && !lost(k.lock)
}

func (k *Keeper) ensureLocked(ctx context.Context) error {
	if k.lock != nil && !lost(k.lock) {
		return nil
	}
	k.lock = nil

	lock, err := k.acq.Acquire(ctx)
	if err != nil {
		k.log.Warn("wake lock unavailable", zap.Error(err))
		return err
	}
	k.lock = lock
	k.log.Debug("wake lock active")
	return nil
}

func lost(l Lock) bool {
	select {
	case <-l.Done():
		return true
	default:
		return false
	}
}
