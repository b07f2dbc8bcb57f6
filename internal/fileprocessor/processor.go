// Package fileprocessor handles processing of a program file for the command.
package fileprocessor

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile lists or runs the program file given in the options.
// Listings are written to writer.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, writer io.Writer) error {
	p := pipeline.New(logger)

	if _, err := p.Execute(ctx, opts, writer); err != nil {
		return fmt.Errorf("processing %s: %w", opts.Input, err)
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}
