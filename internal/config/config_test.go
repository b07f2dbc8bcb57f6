package config

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name       string
		flags      options.Flags
		errorsOnly bool
	}{
		{"default", options.Flags{}, false},
		{"debug", options.Flags{Debug: true}, false},
		{"quiet", options.Flags{Quiet: true}, true},
		{"listing", options.Flags{Disasm: true}, true},
		{"debug listing", options.Flags{Debug: true, Disasm: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := CreateLogger(tt.flags)
			assert.NotNil(t, logger)
			assert.Equal(t, tt.errorsOnly, errorsOnly(tt.flags))
		})
	}
}
