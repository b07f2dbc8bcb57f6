// Package options contains the program options.
package options

// Default values of the run options.
const (
	DefaultSteps        = 10000
	DefaultTickInterval = 3 // 150 instructions per second at 60 Hz timers
)

// Parameters contains file path options.
type Parameters struct {
	Input string // program file to run
}

// Flags contains behavior options.
type Flags struct {
	Disasm bool // print an instruction listing instead of running
	Debug  bool // enable debug logging and the instruction trace
	Quiet  bool // only log errors
}

// Run contains options controlling a headless run of the machine.
type Run struct {
	Steps        uint64  // maximum number of instructions, 0 runs until cancelled
	TickInterval uint    // instructions executed per timer tick
	Keys         []uint8 // hexadecimal keys held pressed for the whole run
	Seed         uint64  // seed of the random source, 0 uses a random seed
}

// Program options of the virtual machine command.
type Program struct {
	Parameters
	Flags
	Run
}

// NewRun returns run options with default values.
func NewRun() Run {
	return Run{
		Steps:        DefaultSteps,
		TickInterval: DefaultTickInterval,
	}
}
