// Package sound turns cues into tones and plays them on a sink.
package sound

import (
	"time"

	"github.com/vburojevic/hiit/internal/domain"
)

// Tone is a single sine beep
type Tone struct {
	Frequency float64       // Hz
	Duration  time.Duration // how long the tone sounds
	Offset    time.Duration // delay from the cue
}

const (
	freqExerciseBegin = 660
	freqRestBegin     = 330
	freqCountdown     = 440
	freqCountdownLast = 880

	phaseBeginDuration = 300 * time.Millisecond
	countdownDuration  = 100 * time.Millisecond
	fanfareDuration    = 500 * time.Millisecond
	fanfareStep        = 200 * time.Millisecond
)

// fanfare is a C major triad: C5, E5, G5
var fanfare = []float64{523.25, 659.25, 783.99}

// Tones returns the tones a cue should sound as, in play order
func Tones(cue domain.Cue) []Tone {
	switch cue.Kind {
	case domain.CuePhaseBegin:
		switch cue.Phase {
		case domain.PhaseExercising:
			return []Tone{{Frequency: freqExerciseBegin, Duration: phaseBeginDuration}}
		case domain.PhaseResting:
			return []Tone{{Frequency: freqRestBegin, Duration: phaseBeginDuration}}
		}
	case domain.CueCountdown:
		freq := float64(freqCountdown)
		if cue.Final {
			freq = freqCountdownLast
		}
		return []Tone{{Frequency: freq, Duration: countdownDuration}}
	case domain.CueFanfare:
		tones := make([]Tone, len(fanfare))
		for i, f := range fanfare {
			tones[i] = Tone{Frequency: f, Duration: fanfareDuration, Offset: time.Duration(i) * fanfareStep}
		}
		return tones
	}
	return nil
}
