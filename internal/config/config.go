package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/vburojevic/hiit/internal/domain"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`
	LogFile string `mapstructure:"log_file"`

	Workout  WorkoutConfig  `mapstructure:"workout"`
	Sound    SoundConfig    `mapstructure:"sound"`
	WakeLock WakeLockConfig `mapstructure:"wake_lock"`
}

// WorkoutConfig holds the default workout parameters
type WorkoutConfig struct {
	ExerciseSeconds int `mapstructure:"exercise_seconds" json:"exercise_seconds"`
	RestSeconds     int `mapstructure:"rest_seconds" json:"rest_seconds"`
	Rounds          int `mapstructure:"rounds" json:"rounds"`
	CueLeadSeconds  int `mapstructure:"cue_lead_seconds" json:"cue_lead_seconds"`
}

// Workout converts the config section to a domain workout
func (w WorkoutConfig) Workout() domain.Workout {
	return domain.Workout{
		ExerciseSeconds: w.ExerciseSeconds,
		RestSeconds:     w.RestSeconds,
		TotalRounds:     w.Rounds,
		CueLeadSeconds:  w.CueLeadSeconds,
	}
}

type SoundConfig struct {
	Muted bool `mapstructure:"muted"`
}

type WakeLockConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default returns a Config with default values
func Default() *Config {
	w := domain.DefaultWorkout()
	return &Config{
		Format:  "auto",
		Quiet:   false,
		Verbose: false,
		Workout: WorkoutConfig{
			ExerciseSeconds: w.ExerciseSeconds,
			RestSeconds:     w.RestSeconds,
			Rounds:          w.TotalRounds,
			CueLeadSeconds:  w.CueLeadSeconds,
		},
		Sound:    SoundConfig{Muted: false},
		WakeLock: WakeLockConfig{Enabled: true},
	}
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("hiit")
	v.SetConfigType("yaml")

	// Search paths, first match wins
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".hiit"))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "hiit"))
	}
	v.AddConfigPath("/etc/hiit/")

	// Environment variables: HIIT_FORMAT, HIIT_WORKOUT_ROUNDS, ...
	v.SetEnvPrefix("HIIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	// Try to read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file, still honoring HIIT_ env overrides
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetEnvPrefix("HIIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file Load would use, or ""
func ConfigFile() string {
	v := viper.New()

	v.SetConfigName("hiit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".hiit"))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "hiit"))
	}
	v.AddConfigPath("/etc/hiit/")

	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}
	return ""
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("workout.exercise_seconds", cfg.Workout.ExerciseSeconds)
	v.SetDefault("workout.rest_seconds", cfg.Workout.RestSeconds)
	v.SetDefault("workout.rounds", cfg.Workout.Rounds)
	v.SetDefault("workout.cue_lead_seconds", cfg.Workout.CueLeadSeconds)
	v.SetDefault("sound.muted", cfg.Sound.Muted)
	v.SetDefault("wake_lock.enabled", cfg.WakeLock.Enabled)
}
