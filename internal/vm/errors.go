package vm

import (
	"errors"
	"fmt"
)

// Fatal execution errors. They are returned wrapped in an *ExecutionError.
var (
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrMemoryBounds    = errors.New("memory access out of bounds")
	ErrProgramTooLarge = errors.New("program does not fit into memory")
)

// Registers is a snapshot of the register file.
type Registers struct {
	V  [RegisterCount]uint8
	I  uint16
	PC uint16
	SP uint8
	DT uint8
	ST uint8
}

func (r Registers) String() string {
	return fmt.Sprintf("pc=0x%04X sp=%d i=0x%04X dt=%d st=%d v=[% X]",
		r.PC, r.SP, r.I, r.DT, r.ST, r.V[:])
}

// ExecutionError is returned when an instruction can not be executed. It
// aborts the emulation session and carries the machine state at the moment
// of the failure.
type ExecutionError struct {
	Instruction string
	Opcode      Opcode
	Registers   Registers
	Err         error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing %s (opcode %s): %v [%s]",
		e.Instruction, e.Opcode, e.Err, e.Registers)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
