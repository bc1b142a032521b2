// Package tui renders a session in the terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/vburojevic/hiit/internal/domain"
	"github.com/vburojevic/hiit/internal/runner"
	"github.com/vburojevic/hiit/internal/session"
	"github.com/vburojevic/hiit/internal/sound"
	"github.com/vburojevic/hiit/internal/wakelock"
	"go.uber.org/zap"
)

// Messages
type tickMsg struct{ gen int }
type wakeLockMsg struct {
	op  string
	err error
}

// Options wires the model to its collaborators. Nil fields get quiet defaults.
type Options struct {
	Controller *session.Controller
	Clock      clock.Clock
	Sound      *sound.Device
	WakeLock   *wakelock.Keeper
	Logger     *zap.Logger
}

// Model is the bubbletea model for one session
type Model struct {
	ctrl   *session.Controller
	clk    clock.Clock
	sound  *sound.Device
	keeper *wakelock.Keeper
	log    *zap.Logger

	// wakeQ orders wake-lock calls; bubbletea runs each Cmd on its own goroutine
	wakeQ *opQueue

	keys keyMap
	help help.Model
	bar  progress.Model

	// gen invalidates ticks armed before the latest start or reset
	gen      int
	beeping  bool
	width    int
	height   int
	quitting bool
}

// New creates a model in Ready
func New(opts Options) Model {
	m := Model{
		ctrl:   opts.Controller,
		clk:    opts.Clock,
		sound:  opts.Sound,
		keeper: opts.WakeLock,
		log:    opts.Logger,
		wakeQ:  &opQueue{},
		keys:   newKeyMap(),
		help:   help.New(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.clk == nil {
		m.clk = clock.New()
	}
	if m.sound == nil {
		m.sound = sound.NewDevice(sound.NewBellSink(io.Discard), m.clk, m.log)
	}
	if m.keeper == nil {
		m.keeper = wakelock.NewKeeper(wakelock.Disabled{}, m.log)
	}
	m.syncKeys()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = lo.Clamp(msg.Width-10, 10, 60)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.shutdown()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			return m.start()
		case key.Matches(msg, m.keys.Reset):
			return m.reset()
		case key.Matches(msg, m.keys.Mute):
			muted := m.sound.ToggleMute()
			m.log.Debug("mute toggled", zap.Bool("muted", muted))
			return m, nil
		}

	case tickMsg:
		return m.tick(msg)

	case tea.FocusMsg:
		return m, m.wakeLockCmd("visible", m.keeper.Visible)

	case wakeLockMsg:
		if msg.err != nil {
			m.log.Debug("wake lock", zap.String("op", msg.op), zap.Error(msg.err))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) start() (tea.Model, tea.Cmd) {
	events, err := m.ctrl.Start()
	if err != nil {
		m.log.Warn("start rejected", zap.Error(err))
		return m, nil
	}
	m.gen++
	m.dispatch(events)
	m.syncKeys()
	return m, tea.Batch(m.tickCmd(), m.wakeLockCmd("acquire", m.keeper.Acquire))
}

func (m Model) tick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || !m.ctrl.Phase().Active() {
		return m, nil
	}
	events, err := m.ctrl.Tick()
	if err != nil {
		m.log.Warn("tick rejected", zap.Error(err))
		return m, nil
	}
	m.dispatch(events)

	if m.ctrl.Phase() == domain.PhaseComplete {
		m.syncKeys()
		return m, m.wakeLockCmd("release", func(context.Context) error { return m.keeper.Release() })
	}
	// Re-armed only after this tick is handled, so ticks never overlap.
	return m, m.tickCmd()
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	m.gen++
	m.sound.Stop()
	m.dispatch(m.ctrl.Reset())
	m.syncKeys()
	return m, m.wakeLockCmd("release", func(context.Context) error { return m.keeper.Release() })
}

func (m *Model) dispatch(events []domain.Event) {
	m.beeping = false
	for _, ev := range events {
		if err := m.sound.Handle(ev); err != nil {
			m.log.Warn("sound failed", zap.Error(err))
		}
		if cue, ok := ev.(domain.Cue); ok && cue.Kind == domain.CueCountdown {
			m.beeping = true
		}
	}
}

func (m *Model) syncKeys() {
	ready := m.ctrl.Phase() == domain.PhaseReady
	m.keys.Start.SetEnabled(ready)
	m.keys.Reset.SetEnabled(!ready)
}

func (m Model) shutdown() {
	m.sound.Stop()
	if err := m.keeper.Release(); err != nil {
		m.log.Debug("wake lock release on quit", zap.Error(err))
	}
}

func (m Model) tickCmd() tea.Cmd {
	gen, clk := m.gen, m.clk
	return func() tea.Msg {
		<-clk.After(runner.TickInterval)
		return tickMsg{gen: gen}
	}
}

// wakeLockCmd queues fn behind every wake-lock call issued before it, so a
// release sent after a start can never overtake the acquire
func (m Model) wakeLockCmd(op string, fn func(context.Context) error) tea.Cmd {
	run := m.wakeQ.then(func() error { return fn(context.Background()) })
	return func() tea.Msg {
		return wakeLockMsg{op: op, err: run()}
	}
}

// opQueue runs functions in the order then was called, whichever goroutine
// ends up executing them
type opQueue struct {
	mu   sync.Mutex
	tail chan struct{}
}

func (q *opQueue) then(fn func() error) func() error {
	q.mu.Lock()
	prev := q.tail
	done := make(chan struct{})
	q.tail = done
	q.mu.Unlock()

	return func() error {
		defer close(done)
		if prev != nil {
			<-prev
		}
		return fn()
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	phase := m.ctrl.Phase()

	timer := fmt.Sprintf("%d", m.ctrl.SecondsRemaining())
	style := timerStyle
	if phase == domain.PhaseComplete {
		timer = "🎉"
	} else if m.beeping {
		style = beepingStyle
	}

	mute := "🔊 SOUND ON"
	if m.sound.Muted() {
		mute = "🔇 SOUND OFF"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		labelStyle.Render(phase.Label()),
		style.Render(timer),
		statusStyle.Render(phase.Status()),
		roundStyle.Render(fmt.Sprintf("ROUND %d/%d", m.ctrl.Round(), m.ctrl.Workout().TotalRounds)),
		"",
		m.bar.ViewAs(m.progress()),
		m.dots(),
		"",
		muteStyle.Render(mute),
		m.help.View(m.keys),
	)
	return screenStyle(phase, m.width, m.height).Render(content)
}

// progress returns the bar fill in [0,1]
func (m Model) progress() float64 {
	switch m.ctrl.Phase() {
	case domain.PhaseReady:
		return 1
	case domain.PhaseComplete:
		return 0
	}
	pct, err := m.ctrl.PercentRemaining()
	if err != nil {
		return 0
	}
	return pct / 100
}

func (m Model) dots() string {
	markers := domain.RoundMarkers(m.ctrl.Round(), m.ctrl.Workout().TotalRounds)
	return strings.Join(lo.Map(markers, func(mk domain.RoundMarker, _ int) string {
		switch mk {
		case domain.MarkerCompleted:
			return dotCompletedStyle.Render("●")
		case domain.MarkerActive:
			return dotActiveStyle.Render("◉")
		default:
			return dotPendingStyle.Render("○")
		}
	}), " ")
}
