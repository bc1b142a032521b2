package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vburojevic/hiit/internal/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "auto", cfg.Format)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, 40, cfg.Workout.ExerciseSeconds)
	assert.Equal(t, 20, cfg.Workout.RestSeconds)
	assert.Equal(t, 4, cfg.Workout.Rounds)
	assert.Equal(t, 3, cfg.Workout.CueLeadSeconds)
	assert.False(t, cfg.Sound.Muted)
	assert.True(t, cfg.WakeLock.Enabled)
	assert.Equal(t, domain.DefaultWorkout(), cfg.Workout.Workout())
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		testChdir(t, t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, 4, cfg.Workout.Rounds)
	})

	t.Run("reads hiit.yaml from the working directory", func(t *testing.T) {
		dir := t.TempDir()
		testChdir(t, dir)
		t.Setenv("HOME", t.TempDir())

		content := `
format: text
workout:
  exercise_seconds: 30
  rounds: 8
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "hiit.yaml"), []byte(content), 0644))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.Format)
		assert.Equal(t, 30, cfg.Workout.ExerciseSeconds)
		assert.Equal(t, 8, cfg.Workout.Rounds)
		// untouched keys keep their defaults
		assert.Equal(t, 20, cfg.Workout.RestSeconds)
		assert.True(t, cfg.WakeLock.Enabled)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		testChdir(t, t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv("HIIT_WORKOUT_ROUNDS", "6")
		t.Setenv("HIIT_SOUND_MUTED", "true")
		t.Setenv("HIIT_FORMAT", "ndjson")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 6, cfg.Workout.Rounds)
		assert.True(t, cfg.Sound.Muted)
		assert.Equal(t, "ndjson", cfg.Format)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad.yaml")
		err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("parses all config fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configContent := `
format: ndjson
quiet: true
verbose: true
log_file: /tmp/hiit.log
workout:
  exercise_seconds: 45
  rest_seconds: 15
  rounds: 10
  cue_lead_seconds: 5
sound:
  muted: true
wake_lock:
  enabled: false
`
		configPath := filepath.Join(tmpDir, "hiit.yaml")
		err := os.WriteFile(configPath, []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "ndjson", cfg.Format)
		assert.True(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "/tmp/hiit.log", cfg.LogFile)
		assert.Equal(t, domain.Workout{ExerciseSeconds: 45, RestSeconds: 15, TotalRounds: 10, CueLeadSeconds: 5}, cfg.Workout.Workout())
		assert.True(t, cfg.Sound.Muted)
		assert.False(t, cfg.WakeLock.Enabled)
	})

	t.Run("keeps defaults and env overrides", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "partial.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("workout:\n  rounds: 6\n"), 0644))
		t.Setenv("HIIT_WORKOUT_REST_SECONDS", "25")

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, 6, cfg.Workout.Rounds)
		assert.Equal(t, 25, cfg.Workout.RestSeconds)
		assert.Equal(t, 40, cfg.Workout.ExerciseSeconds)
		assert.True(t, cfg.WakeLock.Enabled)
	})
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.Equal(t, "", ConfigFile())

	path := filepath.Join(dir, "hiit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: text\n"), 0644))
	assert.Equal(t, "hiit.yaml", filepath.Base(ConfigFile()))
}
