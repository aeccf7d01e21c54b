package vm

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Engine runs the fetch, decode, execute and pace loop of one emulation
// session. It is not safe for concurrent use.
type Engine struct {
	logger   *log.Logger
	settings Settings

	machine *machine
	pacer   *pacer

	executed uint64        // number of executed steps
	elapsed  time.Duration // emulated time consumed by executed steps
	paced    time.Duration // emulated time handed to the pacer, never less than elapsed
}

// New returns a new engine with zero initialized machine state and PC set
// to ProgramStart.
func New(logger *log.Logger, settings Settings, peripherals Peripherals) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	peripherals = peripherals.withDefaults()
	e := &Engine{
		logger:   logger,
		settings: settings,
		machine:  newMachine(settings.Quirks, peripherals),
		pacer:    newPacer(settings.TimerPeriod, peripherals.Timer, peripherals.Sound),
	}

	logger.Debug("Engine created",
		log.Stringer("dialect", settings.Dialect),
		log.String("instruction_duration", settings.InstructionDuration.String()),
		log.String("quirks", fmt.Sprintf("%+v", settings.Quirks)))
	return e, nil
}

// Settings returns the settings of the engine.
func (e *Engine) Settings() Settings {
	return e.settings
}

// LoadData copies data into memory starting at offset. Data beyond the end
// of memory is ignored.
func (e *Engine) LoadData(data []byte, offset uint16) {
	if int(offset) >= MemorySize {
		return
	}
	copy(e.machine.memory[offset:], data)
}

// LoadFont loads the built-in font at FontOffset.
func (e *Engine) LoadFont() {
	e.LoadData(Font[:], FontOffset)
}

// LoadProgram loads the program at ProgramStart.
// Returns an error if the program exceeds the available memory.
func (e *Engine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: size %d exceeds %d bytes", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	e.LoadData(program, ProgramStart)

	e.logger.Debug("Loaded program",
		log.Int("size", len(program)),
		log.Hex("address", uint16(ProgramStart)))
	return nil
}

// Step executes a single instruction and advances the emulated clock by one
// instruction duration. A suspended key wait consumes a step without
// advancing PC. Any returned error is fatal for the session.
func (e *Engine) Step() error {
	m := e.machine
	op := m.fetch()

	ins, ok := Decode(op)
	if !ok {
		return e.executionError("unknown", op, ErrUnknownOpcode)
	}

	if e.settings.Trace {
		e.logger.Debug("Executing instruction",
			log.Hex("pc", m.PC),
			log.String("opcode", op.String()),
			log.String("instruction", ins.Name),
			log.String("mnemonic", mnemonic(op)))
	}

	if err := ins.execute(m, op); err != nil {
		return e.executionError(ins.Name, op, err)
	}

	e.executed++
	e.elapsed += e.settings.InstructionDuration
	var pending time.Duration
	if e.elapsed > e.paced {
		pending = e.elapsed - e.paced
		e.paced = e.elapsed
	}
	e.pacer.advance(&m.state, pending)
	return nil
}

// RunInstructions executes up to count steps. It stops early when the
// context is done or an instruction fails.
func (e *Engine) RunInstructions(ctx context.Context, count uint64) error {
	for range count {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunDuration executes steps covering the given emulated duration. The part
// of the duration that is shorter than one instruction still advances the
// timers. A non-positive duration runs until the context is done or an
// instruction fails.
func (e *Engine) RunDuration(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return e.run(ctx)
	}

	target := e.paced + duration
	for e.elapsed+e.settings.InstructionDuration <= target {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(); err != nil {
			return err
		}
	}

	if target > e.paced {
		e.pacer.advance(&e.machine.state, target-e.paced)
		e.paced = target
	}
	return nil
}

func (e *Engine) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
}

// Registers returns a snapshot of the register file.
func (e *Engine) Registers() Registers {
	return e.machine.registers()
}

// Frame returns a copy of the framebuffer.
func (e *Engine) Frame() Frame {
	return e.machine.frame
}

// ReadMemory returns the byte at the given address, wrapping at the end of
// memory.
func (e *Engine) ReadMemory(address uint16) byte {
	return e.machine.memory[address%MemorySize]
}

// Waiting returns whether execution is suspended waiting for a key press.
func (e *Engine) Waiting() bool {
	return e.machine.waiting
}

// Executed returns the number of executed steps.
func (e *Engine) Executed() uint64 {
	return e.executed
}

// Elapsed returns the emulated time covered so far.
func (e *Engine) Elapsed() time.Duration {
	return e.paced
}

func (e *Engine) executionError(name string, op Opcode, err error) error {
	return &ExecutionError{
		Instruction: name,
		Opcode:      op,
		Registers:   e.machine.registers(),
		Err:         err,
	}
}
