package cli

import "go.uber.org/zap"

// newLogger builds the debug logger for a command. Logging is off unless
// --verbose. Logs go to --log-file when set, otherwise to stderr if the
// command allows it (the TUI owns the terminal, so it does not).
func newLogger(globals *Globals, allowStderr bool) *zap.Logger {
	if globals == nil || !globals.Verbose {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.Encoding = "json"
	switch {
	case globals.LogFile != "":
		cfg.OutputPaths = []string{globals.LogFile}
		cfg.ErrorOutputPaths = []string{globals.LogFile}
	case !allowStderr:
		return zap.NewNop()
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
