package sound

import (
	"io"
	"sync"
)

// BellSink rings the terminal bell once per tone. Terminals have no pitch
// control, so every tone sounds the same.
type BellSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBellSink(w io.Writer) *BellSink {
	return &BellSink{w: w}
}

func (b *BellSink) Play(Tone) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, "\a")
	return err
}
