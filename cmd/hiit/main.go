package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/hiit/internal/cli"
	"github.com/vburojevic/hiit/internal/config"
)

const quickStart = `hiit - interval workout timer

Quick start:
  hiit ui                               Interactive timer (40s work, 20s rest, 4 rounds)
  hiit run -e 30 -r 15 -n 8             Headless run, one line per second
  hiit plan                             Show when each phase starts

For help:
  hiit --help                           All commands and flags
  hiit schema                           JSON Schema for --format ndjson output
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	configPath := cli.ConfigFlag(os.Args[1:])
	cfg, err := cli.LoadConfig(configPath)
	if err != nil {
		if configPath != "" {
			fmt.Fprintf(os.Stderr, "Error: failed to load config %s: %v\n", configPath, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags win
	ctx := kong.Parse(&c,
		kong.Name("hiit"),
		kong.Description("hiit: exercise/rest interval timer with audio cues"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		cli.Vars(cfg),
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
