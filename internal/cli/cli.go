// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	opts := options.Program{Run: options.NewRun()}
	var keys string
	readOptionFlags(flags, &opts, &keys)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	if err := normalizeOptions(&opts, keys); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <program file>\n\n")
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions validates option values and parses the key list.
func normalizeOptions(opts *options.Program, keys string) error {
	if opts.TickInterval == 0 {
		return fmt.Errorf("invalid tick interval 0, at least 1 instruction per timer tick is required")
	}

	parsed, err := parseKeys(keys)
	if err != nil {
		return err
	}
	opts.Keys = parsed
	return nil
}

// parseKeys parses a comma separated list of hexadecimal key names like "1,a,F".
func parseKeys(s string) ([]uint8, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var keys []uint8
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		key, err := strconv.ParseUint(field, 16, 8)
		if err != nil || key >= vm.KeyCount {
			return nil, fmt.Errorf("invalid key '%s', keys are hexadecimal digits 0-F", field)
		}
		keys = append(keys, uint8(key))
	}
	return keys, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, keys *string) {
	flags.Uint64Var(&opts.Steps, "steps", options.DefaultSteps, "maximum number of instructions to execute, 0 runs until interrupted")
	flags.UintVar(&opts.TickInterval, "tick", options.DefaultTickInterval, "number of instructions executed per 60 Hz timer tick")
	flags.StringVar(keys, "keys", "", "comma separated hexadecimal keys held pressed during the run, for example 1,a,F")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a random seed")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print an instruction listing of the program instead of running it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
