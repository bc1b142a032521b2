package cli

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/benbjohnson/clock"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"github.com/vburojevic/hiit/internal/config"
	"github.com/vburojevic/hiit/internal/domain"
)

// CLI is the root command tree
type CLI struct {
	Format  string `short:"f" default:"${config_format}" enum:"auto,text,ndjson" help:"Output format (auto: text on a terminal, ndjson otherwise)"`
	Quiet   bool   `short:"q" help:"Only print phase changes"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
	LogFile string `default:"${config_log_file}" help:"Write debug logs to this file (required for verbose ui)"`

	// Read before parsing by ConfigFlag; declared so kong accepts it
	ConfigFile string `name:"config" type:"path" help:"Use this config file instead of searching for hiit.yaml"`

	Run     RunCmd     `cmd:"" help:"Run a workout, printing every second"`
	UI      UICmd      `cmd:"" name:"ui" help:"Run a workout in a full-screen interactive timer"`
	Plan    PlanCmd    `cmd:"" help:"Show the timeline a workout produces"`
	Schema  SchemaCmd  `cmd:"" help:"Print JSON Schema for NDJSON output types"`
	Config  ConfigCmd  `cmd:"" help:"Inspect configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// WorkoutFlags are shared by every command that builds a workout
type WorkoutFlags struct {
	Exercise int `short:"e" default:"${config_exercise}" help:"Exercise phase length in seconds"`
	Rest     int `short:"r" default:"${config_rest}" help:"Rest phase length in seconds"`
	Rounds   int `short:"n" default:"${config_rounds}" help:"Number of exercise+rest rounds"`
	CueLead  int `default:"${config_cue_lead}" help:"Countdown pips before each phase switch"`
}

func (f WorkoutFlags) Workout() domain.Workout {
	return domain.Workout{
		ExerciseSeconds: f.Exercise,
		RestSeconds:     f.Rest,
		TotalRounds:     f.Rounds,
		CueLeadSeconds:  f.CueLead,
	}
}

// Globals carries resolved global flags and shared dependencies into commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	LogFile string

	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config

	// ConfigPath is the file passed with --config, if any
	ConfigPath string

	// Clock drives sessions; nil means the wall clock
	Clock clock.Clock
}

// Vars exposes config values as kong defaults so flags override config
func Vars(cfg *config.Config) kong.Vars {
	return kong.Vars{
		"config_format":    cfg.Format,
		"config_log_file":  cfg.LogFile,
		"config_exercise":  strconv.Itoa(cfg.Workout.ExerciseSeconds),
		"config_rest":      strconv.Itoa(cfg.Workout.RestSeconds),
		"config_rounds":    strconv.Itoa(cfg.Workout.Rounds),
		"config_cue_lead":  strconv.Itoa(cfg.Workout.CueLeadSeconds),
		"config_muted":     strconv.FormatBool(cfg.Sound.Muted),
		"config_wake_lock": strconv.FormatBool(cfg.WakeLock.Enabled),
	}
}

// NewGlobalsWithConfig creates globals from parsed flags with config fallbacks
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Globals{
		Format:  resolveFormat(c.Format, os.Stdout),
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		LogFile: lo.CoalesceOrEmpty(c.LogFile, cfg.LogFile),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,

		ConfigPath: c.ConfigFile,
	}
}

// ConfigFlag returns the --config value from raw arguments. Config has to be
// loaded before kong parses, because it supplies the flag defaults.
func ConfigFlag(args []string) string {
	for i, a := range args {
		switch {
		case a == "--":
			return ""
		case a == "--config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}

// LoadConfig loads path when given, otherwise searches the default locations
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// resolveFormat turns "auto" into text for terminals and ndjson for pipes
func resolveFormat(format string, out *os.File) string {
	if format != "" && format != "auto" {
		return format
	}
	if out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return "text"
	}
	return "ndjson"
}

func (g *Globals) clock() clock.Clock {
	if g.Clock != nil {
		return g.Clock
	}
	return clock.New()
}
