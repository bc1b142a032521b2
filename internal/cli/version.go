package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/hiit/internal/output"
)

// Set at build time with -ldflags
var (
	Version = "dev"
	Commit  = "none"
)

// VersionCmd shows version information
type VersionCmd struct{}

// VersionOutput is the NDJSON version record
type VersionOutput struct {
	Type          string `json:"type"` // "version"
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
}

// Run executes the version command
func (c *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(VersionOutput{
			Type:          "version",
			SchemaVersion: output.SchemaVersion,
			Version:       Version,
			Commit:        Commit,
		})
	}
	_, err := fmt.Fprintf(globals.Stdout, "hiit version %s (%s)\n", Version, Commit)
	return err
}
