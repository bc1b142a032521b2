package output

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/vburojevic/hiit/internal/domain"
	"github.com/vburojevic/hiit/internal/session"
)

// SchemaVersion is the version stamped on records written here
const SchemaVersion = domain.SchemaVersion

// ErrorOutput is the NDJSON error record
type ErrorOutput struct {
	Type          string `json:"type"` // "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// PlanSummary closes a plan listing
type PlanSummary struct {
	Type            string `json:"type"` // "plan_summary"
	SchemaVersion   int    `json:"schemaVersion"`
	Rounds          int    `json:"rounds"`
	ExerciseSeconds int    `json:"exercise_seconds"`
	RestSeconds     int    `json:"rest_seconds"`
	CueLeadSeconds  int    `json:"cue_lead_seconds"`
	TotalSeconds    int    `json:"total_seconds"`
}

// NDJSONWriter writes one JSON object per line
type NDJSONWriter struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{encoder: json.NewEncoder(w)}
}

func (w *NDJSONWriter) write(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.encoder.Encode(v)
}

// Handle writes a session event as-is
func (w *NDJSONWriter) Handle(ev domain.Event) error {
	return w.write(ev)
}

// WriteError writes an error record
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	out := ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		out.Hint = hint[0]
	}
	return w.write(out)
}

// WritePlan writes one segment record per phase followed by a summary
func (w *NDJSONWriter) WritePlan(plan session.Plan) error {
	for _, seg := range plan.Segments {
		if err := w.write(seg); err != nil {
			return err
		}
	}
	return w.write(PlanSummary{
		Type:            "plan_summary",
		SchemaVersion:   SchemaVersion,
		Rounds:          plan.Workout.TotalRounds,
		ExerciseSeconds: plan.Workout.ExerciseSeconds,
		RestSeconds:     plan.Workout.RestSeconds,
		CueLeadSeconds:  plan.Workout.CueLeadSeconds,
		TotalSeconds:    plan.TotalSeconds(),
	})
}
