// Package pipeline orchestrates loading a program and running or listing it.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Result describes a finished run of a program.
type Result struct {
	Machine *vm.VM
	Steps   uint64 // number of executed instructions
	Ticks   uint64 // number of timer ticks
	Stalled bool   // the program can not make any further progress
	Foreign bool   // the file extension belongs to a program of another system
}

// Pipeline orchestrates the complete workflow of the command.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the program file and either writes a listing of it to
// writer or runs it. The returned result is nil for listings.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) (*Result, error) {
	native := p.detector.Check(opts.Input)

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading program %s: %w", opts.Input, err)
	}

	result, err := p.ExecuteWithProgram(ctx, program, opts, writer)
	if result != nil {
		result.Foreign = !native
	}
	return result, err
}

// ExecuteWithProgram runs the pipeline with a program that is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program,
	writer io.Writer) (*Result, error) {

	if opts.Disasm {
		if err := disasm.List(writer, program); err != nil {
			return nil, fmt.Errorf("writing listing: %w", err)
		}
		return nil, nil
	}

	p.printInfo(opts, program)

	m := vm.New(p.machineOptions(opts)...)
	if err := m.Load(program); err != nil {
		return nil, fmt.Errorf("loading program into memory: %w", err)
	}
	for _, key := range opts.Keys {
		m.SetKey(key, true)
	}

	result := &Result{Machine: m}
	err := p.run(ctx, m, opts.Run, result)
	p.printSummary(result)
	return result, err
}

// run executes instructions until the step limit is reached, the context is
// cancelled, the machine stalls or a fatal error occurs. Timers are ticked
// after every TickInterval instructions.
func (p *Pipeline) run(ctx context.Context, m *vm.VM, opts options.Run, result *Result) error {
	interval := uint64(opts.TickInterval)
	if interval == 0 {
		interval = options.DefaultTickInterval
	}

	for opts.Steps == 0 || result.Steps < opts.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}

		pc, sp := m.PC(), m.SP()
		if err := m.Step(); err != nil {
			return fmt.Errorf("running program: %w", err)
		}
		result.Steps++

		if result.Steps%interval == 0 {
			m.TickTimers()
			result.Ticks++
		}

		// with constant key input a machine that does not move and did not
		// call itself will never leave this instruction
		if m.PC() == pc && m.SP() == sp {
			result.Stalled = true
			p.logStall(m, pc)
			return nil
		}
	}
	return nil
}

func (p *Pipeline) machineOptions(opts options.Program) []vm.Option {
	var machineOpts []vm.Option
	if opts.Debug {
		machineOpts = append(machineOpts, vm.WithLogger(p.logger))
	}
	if opts.Seed != 0 {
		machineOpts = append(machineOpts, vm.WithRandom(rand.NewPCG(opts.Seed, opts.Seed)))
	}
	return machineOpts
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, program []byte) {
	p.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.Int("steps", int(opts.Steps)),
		log.Int("tick_interval", int(opts.TickInterval)),
	)
}

func (p *Pipeline) logStall(m *vm.VM, address uint16) {
	b0, _ := m.Memory(address)
	b1, _ := m.Memory(address + 1)
	ins := vm.Decode(b0, b1)

	msg := "Program halted in an endless loop"
	if _, ok := ins.(vm.GetKey); ok {
		msg = "Program is waiting for a key press but no key is held"
	}
	p.logger.Info(msg,
		log.Hex("address", address),
		log.String("instruction", ins.String()))
}

// printSummary logs the executed instruction count and the register state.
func (p *Pipeline) printSummary(result *Result) {
	m := result.Machine
	p.logger.Info("Execution finished",
		log.Int("steps", int(result.Steps)),
		log.Int("timer_ticks", int(result.Ticks)),
		log.Hex("pc", m.PC()),
	)
	p.logger.Info("Registers",
		log.String("v", formatRegisters(m.Registers())),
		log.Hex("i", m.Index()),
		log.Int("sp", m.SP()),
		log.Uint8("delay_timer", m.DelayTimer()),
		log.Uint8("sound_timer", m.SoundTimer()),
	)
}

// formatRegisters returns the registers as "V0=$00 V1=$00 ...".
func formatRegisters(registers [vm.RegisterCount]uint8) string {
	var sb strings.Builder
	for i, value := range registers {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "V%X=$%02X", i, value)
	}
	return sb.String()
}
