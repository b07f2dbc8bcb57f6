// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger for the behavior flags of the command.
// Debugging enables the instruction trace level. Quiet runs and listings only
// log errors so that a listing on stdout is not interleaved with run details.
func CreateLogger(flags options.Flags) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case flags.Debug:
		cfg.Level = log.DebugLevel
	case errorsOnly(flags):
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func errorsOnly(flags options.Flags) bool {
	return flags.Quiet || flags.Disasm
}
