package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/hiit/internal/config"
	"github.com/vburojevic/hiit/internal/output"
)

// ConfigCmd groups configuration subcommands
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"1" help:"Show effective configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show the config file in use"`
	Generate ConfigGenerateCmd `cmd:"" help:"Print a sample config file"`
}

// ConfigShowCmd prints the effective configuration
type ConfigShowCmd struct{}

// configFile is the --config file, or the one the default search finds
func configFile(globals *Globals) string {
	if globals.ConfigPath != "" {
		return globals.ConfigPath
	}
	return config.ConfigFile()
}

// ConfigOutput is the NDJSON form of the effective configuration
type ConfigOutput struct {
	Type          string               `json:"type"` // "config"
	SchemaVersion int                  `json:"schemaVersion"`
	File          string               `json:"file,omitempty"`
	Format        string               `json:"format"`
	Quiet         bool                 `json:"quiet"`
	Verbose       bool                 `json:"verbose"`
	LogFile       string               `json:"log_file,omitempty"`
	Workout       config.WorkoutConfig `json:"workout"`
	Muted         bool                 `json:"muted"`
	WakeLock      bool                 `json:"wake_lock"`
}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	file := configFile(globals)

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(ConfigOutput{
			Type:          "config",
			SchemaVersion: output.SchemaVersion,
			File:          file,
			Format:        cfg.Format,
			Quiet:         cfg.Quiet,
			Verbose:       cfg.Verbose,
			LogFile:       cfg.LogFile,
			Workout:       cfg.Workout,
			Muted:         cfg.Sound.Muted,
			WakeLock:      cfg.WakeLock.Enabled,
		})
	}

	w := globals.Stdout
	fmt.Fprintln(w, "Current Configuration:")
	if file != "" {
		fmt.Fprintf(w, "  file: %s\n", file)
	}
	fmt.Fprintf(w, "  format: %s\n", cfg.Format)
	fmt.Fprintf(w, "  quiet: %t\n", cfg.Quiet)
	fmt.Fprintf(w, "  verbose: %t\n", cfg.Verbose)
	if cfg.LogFile != "" {
		fmt.Fprintf(w, "  log_file: %s\n", cfg.LogFile)
	}
	fmt.Fprintln(w, "\nWorkout:")
	fmt.Fprintf(w, "  exercise_seconds: %d\n", cfg.Workout.ExerciseSeconds)
	fmt.Fprintf(w, "  rest_seconds: %d\n", cfg.Workout.RestSeconds)
	fmt.Fprintf(w, "  rounds: %d\n", cfg.Workout.Rounds)
	fmt.Fprintf(w, "  cue_lead_seconds: %d\n", cfg.Workout.CueLeadSeconds)
	fmt.Fprintln(w, "\nSound:")
	fmt.Fprintf(w, "  muted: %t\n", cfg.Sound.Muted)
	fmt.Fprintln(w, "\nWake lock:")
	fmt.Fprintf(w, "  enabled: %t\n", cfg.WakeLock.Enabled)
	return nil
}

// ConfigPathCmd prints which config file was found
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	file := configFile(globals)

	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(map[string]interface{}{
			"type":          "config_path",
			"schemaVersion": output.SchemaVersion,
			"path":          file,
			"found":         file != "",
		})
	}

	if file == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "Searched: ./hiit.yaml, ~/.hiit/hiit.yaml, <user config dir>/hiit/hiit.yaml, /etc/hiit/hiit.yaml")
		return nil
	}
	fmt.Fprintf(globals.Stdout, "Config file: %s\n", file)
	return nil
}

// ConfigGenerateCmd prints a commented sample config
type ConfigGenerateCmd struct{}

const sampleConfig = `# hiit configuration file
# Place at ./hiit.yaml, ~/.hiit/hiit.yaml or /etc/hiit/hiit.yaml.
# Every key can also be set through the environment, e.g. HIIT_WORKOUT_ROUNDS=6.

# Output format: auto, text or ndjson
format: auto

# Print phase changes only
quiet: false

# Debug logging (the ui command needs log_file to show logs)
verbose: false
log_file: ""

workout:
  exercise_seconds: 40
  rest_seconds: 20
  rounds: 4
  # Countdown pips before each phase switch (0 disables them)
  cue_lead_seconds: 3

sound:
  muted: false

wake_lock:
  enabled: true
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}
