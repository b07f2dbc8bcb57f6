// Package detector handles system detection of program files.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles system detection from file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Check returns whether the file could be a CHIP-8 program. Files with an
// extension of another system are reported with a warning, files with an
// unknown extension are accepted.
func (d *Detector) Check(filename string) bool {
	system := detectFromFile(filename)
	d.logger.Debug("Detected system",
		log.String("system", string(system)),
		log.String("file", filename))

	if system == "" || system == arch.CHIP8System {
		return true
	}

	d.logger.Warn("File extension indicates a program for a different system",
		log.String("system", string(system)),
		log.String("file", filename))
	return false
}

// detectFromFile determines the system type based on file extension.
func detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return arch.CHIP8System
	case ".nes":
		return arch.NES
	default:
		return ""
	}
}
