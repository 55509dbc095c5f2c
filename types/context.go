package types

import (
	"io"
	"os"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context passed to commands.
// Stdout and Stdin default to the process streams when nil.
type AppContext struct {
	Version string
	Stdout  io.Writer
	Stdin   io.Reader
}

// Out returns the writer for user-facing output
func (c *AppContext) Out() io.Writer {
	if c == nil || c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// In returns the reader answers to prompts are read from
func (c *AppContext) In() io.Reader {
	if c == nil || c.Stdin == nil {
		return os.Stdin
	}
	return c.Stdin
}

// AppVersion returns the version, falling back to DefaultVersion
func (c *AppContext) AppVersion() string {
	if c == nil || c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}
