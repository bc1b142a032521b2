package cli

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
)

// schemaTypes lists the NDJSON record types in output order
var schemaTypes = []string{"phase_started", "time_updated", "cue", "error", "segment", "plan_summary"}

var phaseEnum = []string{"ready", "exercising", "resting", "complete"}

// SchemaCmd outputs JSON Schema for hiit output types
type SchemaCmd struct {
	Type []string `short:"t" help:"Output types to include (phase_started,time_updated,cue,error,segment,plan_summary). Default: all"`
}

// Run executes the schema command
func (c *SchemaCmd) Run(globals *Globals) error {
	schemas := map[string]map[string]interface{}{
		"phase_started": phaseStartedSchema(),
		"time_updated":  timeUpdatedSchema(),
		"cue":           cueSchema(),
		"error":         errorSchema(),
		"segment":       segmentSchema(),
		"plan_summary":  planSummarySchema(),
	}

	requested := lo.Map(c.Type, func(t string, _ int) string {
		return strings.ToLower(strings.TrimSpace(t))
	})
	if len(requested) == 0 {
		requested = schemaTypes
	}

	defs := map[string]interface{}{}
	for _, t := range requested {
		if schema, ok := schemas[t]; ok {
			defs[t] = schema
		}
	}

	output := map[string]interface{}{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"title":       "hiit Output Schemas",
		"description": "JSON Schema definitions for all hiit NDJSON output types",
		"definitions": defs,
	}

	encoder := json.NewEncoder(globals.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func objectSchema(title, typ string, props map[string]interface{}, required ...string) map[string]interface{} {
	props["type"] = map[string]interface{}{"const": typ}
	props["schemaVersion"] = prop("integer", "Output schema version")
	return map[string]interface{}{
		"type":       "object",
		"title":      title,
		"properties": props,
		"required":   append([]string{"type", "schemaVersion"}, required...),
	}
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func enumProp(description string, values []string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "enum": values, "description": description}
}

func phaseStartedSchema() map[string]interface{} {
	return objectSchema("Phase Started", "phase_started", map[string]interface{}{
		"phase":             enumProp("Phase just entered", phaseEnum),
		"round":             prop("integer", "Current round, 1-based"),
		"total_rounds":      prop("integer", "Rounds in the workout"),
		"seconds_remaining": prop("integer", "Seconds left in the phase"),
		"phase_seconds":     prop("integer", "Configured phase length; absent for ready and complete"),
	}, "phase", "round", "total_rounds", "seconds_remaining")
}

func timeUpdatedSchema() map[string]interface{} {
	return objectSchema("Time Updated", "time_updated", map[string]interface{}{
		"phase":             enumProp("Active phase", phaseEnum[1:3]),
		"round":             prop("integer", "Current round, 1-based"),
		"seconds_remaining": prop("integer", "Seconds left in the phase, 0 shown once before the switch"),
		"phase_seconds":     prop("integer", "Configured phase length"),
	}, "phase", "round", "seconds_remaining", "phase_seconds")
}

func cueSchema() map[string]interface{} {
	return objectSchema("Cue", "cue", map[string]interface{}{
		"kind":              enumProp("Audio trigger", []string{"phase_begin", "countdown", "fanfare"}),
		"phase":             enumProp("Phase that began (phase_begin only)", phaseEnum[1:3]),
		"seconds_remaining": prop("integer", "Seconds left when the pip sounds (countdown only)"),
		"final":             prop("boolean", "Last pip before the phase switch"),
	}, "kind")
}

func errorSchema() map[string]interface{} {
	return objectSchema("Error", "error", map[string]interface{}{
		"code":    enumProp("Error code", []string{"INVALID_WORKOUT", "RUN_FAILED", "UI_FAILED"}),
		"message": prop("string", "Human-readable error message"),
		"hint":    prop("string", "Suggested fix"),
	}, "code", "message")
}

func segmentSchema() map[string]interface{} {
	return objectSchema("Segment", "segment", map[string]interface{}{
		"round":         prop("integer", "Round the segment belongs to"),
		"phase":         enumProp("Phase of the segment", phaseEnum[1:]),
		"start_seconds": prop("integer", "Offset from start in seconds"),
		"seconds":       prop("integer", "Ticks spent in the phase"),
	}, "round", "phase", "start_seconds", "seconds")
}

func planSummarySchema() map[string]interface{} {
	return objectSchema("Plan Summary", "plan_summary", map[string]interface{}{
		"rounds":           prop("integer", "Rounds in the workout"),
		"exercise_seconds": prop("integer", "Exercise phase length"),
		"rest_seconds":     prop("integer", "Rest phase length"),
		"cue_lead_seconds": prop("integer", "Countdown pips before each switch"),
		"total_seconds":    prop("integer", "Seconds from start until complete"),
	}, "rounds", "exercise_seconds", "rest_seconds", "cue_lead_seconds", "total_seconds")
}
