package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/vburojevic/hiit/internal/domain"
	"github.com/vburojevic/hiit/internal/session"
)

const barWidth = 20

var markerGlyph = map[domain.RoundMarker]string{
	domain.MarkerPending:   "○",
	domain.MarkerActive:    "◉",
	domain.MarkerCompleted: "●",
}

// TextWriter renders session events as human-readable lines
type TextWriter struct {
	mu          sync.Mutex
	w           io.Writer
	totalRounds int
}

func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// Handle prints phase changes and countdown lines. Cues are left to the sound device.
func (t *TextWriter) Handle(ev domain.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e := ev.(type) {
	case domain.PhaseStarted:
		t.totalRounds = e.TotalRounds
		return t.phaseStarted(e)
	case domain.TimeUpdated:
		_, err := fmt.Fprintf(t.w, "  %3d  %s  %s\n", e.SecondsRemaining, Bar(e.Percent(), barWidth), Dots(e.Round, t.totalRounds))
		return err
	}
	return nil
}

func (t *TextWriter) phaseStarted(e domain.PhaseStarted) error {
	var line string
	switch e.Phase {
	case domain.PhaseReady:
		line = fmt.Sprintf("%s  %s", e.Phase.Status(), e.Phase.Label())
	case domain.PhaseComplete:
		line = fmt.Sprintf("🎉 %s  %s  %s", e.Phase.Label(), e.Phase.Status(), Dots(e.Round, e.TotalRounds))
	default:
		line = fmt.Sprintf("%s  ROUND %d/%d  %s  %s", e.Phase.Label(), e.Round, e.TotalRounds, e.Phase.Status(), Dots(e.Round, e.TotalRounds))
	}
	if _, err := fmt.Fprintln(t.w, line); err != nil {
		return err
	}
	if e.Phase.Active() {
		_, err := fmt.Fprintf(t.w, "  %3d  %s\n", e.SecondsRemaining, Bar(100, barWidth))
		return err
	}
	return nil
}

// Dots renders the per-round markers
func Dots(currentRound, totalRounds int) string {
	return strings.Join(lo.Map(domain.RoundMarkers(currentRound, totalRounds), func(m domain.RoundMarker, _ int) string {
		return markerGlyph[m]
	}), "")
}

// Bar renders a fixed-width progress bar
func Bar(percent float64, width int) string {
	filled := int(percent/100*float64(width) + 0.5)
	filled = lo.Clamp(filled, 0, width)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}

// WritePlanTable renders a plan as a table
func WritePlanTable(w io.Writer, plan session.Plan) error {
	table := tablewriter.NewWriter(w)
	table.Header("Round", "Phase", "Starts", "Length")
	for _, seg := range plan.Segments {
		length := "-"
		if seg.Seconds > 0 {
			length = fmt.Sprintf("%ds", seg.Seconds)
		}
		if err := table.Append([]string{
			fmt.Sprintf("%d/%d", seg.Round, plan.Workout.TotalRounds),
			seg.Phase.Label(),
			formatOffset(seg.Start()),
			length,
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", formatOffset(time.Duration(plan.TotalSeconds())*time.Second))
	return err
}

func formatOffset(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
