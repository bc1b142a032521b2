package wakelock

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLock struct {
	once     sync.Once
	done     chan struct{}
	released bool
}

func newFakeLock() *fakeLock { return &fakeLock{done: make(chan struct{})} }

func (l *fakeLock) Release() error {
	l.released = true
	l.lose()
	return nil
}

func (l *fakeLock) Done() <-chan struct{} { return l.done }

func (l *fakeLock) lose() { l.once.Do(func() { close(l.done) }) }

type fakeAcquirer struct {
	calls int
	err   error
	locks []*fakeLock
}

func (a *fakeAcquirer) Acquire(context.Context) (Lock, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	l := newFakeLock()
	a.locks = append(a.locks, l)
	return l, nil
}

func TestKeeperAcquireAndRelease(t *testing.T) {
	acq := &fakeAcquirer{}
	k := NewKeeper(acq, nil)
	ctx := context.Background()

	require.NoError(t, k.Acquire(ctx))
	assert.True(t, k.Held())

	// Already held: no second acquisition
	require.NoError(t, k.Acquire(ctx))
	assert.Equal(t, 1, acq.calls)

	require.NoError(t, k.Release())
	assert.False(t, k.Held())
	assert.True(t, acq.locks[0].released)

	// Releasing twice is harmless
	assert.NoError(t, k.Release())
}

func TestKeeperVisibleReacquiresLostLock(t *testing.T) {
	acq := &fakeAcquirer{}
	k := NewKeeper(acq, nil)
	ctx := context.Background()

	require.NoError(t, k.Acquire(ctx))
	acq.locks[0].lose()
	assert.False(t, k.Held())

	require.NoError(t, k.Visible(ctx))
	assert.True(t, k.Held())
	assert.Equal(t, 2, acq.calls)

	// Lock still live: visibility does nothing
	require.NoError(t, k.Visible(ctx))
	assert.Equal(t, 2, acq.calls)
}

func TestKeeperVisibleIgnoredWhenInactive(t *testing.T) {
	acq := &fakeAcquirer{}
	k := NewKeeper(acq, nil)
	ctx := context.Background()

	require.NoError(t, k.Visible(ctx))
	assert.Equal(t, 0, acq.calls)

	require.NoError(t, k.Acquire(ctx))
	require.NoError(t, k.Release())
	require.NoError(t, k.Visible(ctx))
	assert.Equal(t, 1, acq.calls)
	assert.False(t, k.Held())
}

func TestKeeperAcquireFailureKeepsSessionActive(t *testing.T) {
	acq := &fakeAcquirer{err: errors.New("denied")}
	k := NewKeeper(acq, nil)
	ctx := context.Background()

	assert.Error(t, k.Acquire(ctx))
	assert.False(t, k.Held())

	// A later visibility change retries
	acq.err = nil
	require.NoError(t, k.Visible(ctx))
	assert.True(t, k.Held())
}

func TestUnsupportedAcquirer(t *testing.T) {
	_, err := Unsupported{}.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDisabledAcquirer(t *testing.T) {
	k := NewKeeper(Disabled{}, nil)
	require.NoError(t, k.Acquire(context.Background()))
	assert.True(t, k.Held())
	assert.NoError(t, k.Release())
}

func TestCommandAcquirerMissingBinary(t *testing.T) {
	a := &CommandAcquirer{Name: "definitely-not-an-inhibitor-binary"}
	_, err := a.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCommandAcquirerHoldsProcess(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	a := &CommandAcquirer{Name: "sleep", Args: []string{"60"}}

	lock, err := a.Acquire(context.Background())
	require.NoError(t, err)
	assert.False(t, lost(lock))

	require.NoError(t, lock.Release())
	assert.True(t, lost(lock))
}

func TestCommandAcquirerDetectsExit(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	k := NewKeeper(&CommandAcquirer{Name: "true"}, nil)

	require.NoError(t, k.Acquire(context.Background()))
	require.Eventually(t, func() bool { return !k.Held() }, 5*time.Second, 10*time.Millisecond)
	assert.NoError(t, k.Release())
}

// processGone reports whether pid has exited (a zombie counts as exited)
func processGone(pid int) bool {
	stat, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat"))
	if err != nil {
		return true
	}
	// state follows the parenthesised command name
	fields := strings.Fields(string(stat[strings.LastIndexByte(string(stat), ')')+1:]))
	return len(fields) > 0 && fields[0] == "Z"
}

func TestCommandAcquirerReleaseStopsForkedChildren(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs /proc")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	pidFile := filepath.Join(t.TempDir(), "child.pid")
	// Like systemd-inhibit: the inhibitor runs its payload as a child
	a := &CommandAcquirer{Name: "sh", Args: []string{"-c", "sleep 300 & echo $! > '" + pidFile + "'; wait"}}

	lock, err := a.Acquire(context.Background())
	require.NoError(t, err)

	var child int
	require.Eventually(t, func() bool {
		raw, err := os.ReadFile(pidFile)
		if err != nil {
			return false
		}
		child, err = strconv.Atoi(strings.TrimSpace(string(raw)))
		return err == nil && child > 0
	}, 5*time.Second, 10*time.Millisecond)
	require.False(t, processGone(child))

	require.NoError(t, lock.Release())
	assert.True(t, lost(lock))
	require.Eventually(t, func() bool { return processGone(child) }, 5*time.Second, 10*time.Millisecond,
		"forked child %d outlived Release", child)
}

func TestCommandAcquirerReleaseAfterExit(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	lock, err := (&CommandAcquirer{Name: "true"}).Acquire(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return lost(lock) }, 5*time.Second, 10*time.Millisecond)

	assert.NoError(t, lock.Release())
}
