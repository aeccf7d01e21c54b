package vm

// state is the mutable machine state, exclusively owned by one Engine.
type state struct {
	V  [RegisterCount]uint8
	I  uint16
	PC uint16
	SP uint8 // number of used stack entries
	DT uint8 // delay timer
	ST uint8 // sound timer

	stack  [StackSize]uint16
	memory [MemorySize]byte
	frame  Frame
}

// machine is the state together with the collaborators and quirks that the
// instructions use.
type machine struct {
	state

	quirks   Quirks
	keyboard Keyboard
	random   Random
	video    Video

	// waiting is set while a key wait instruction is suspended.
	waiting bool
}

func newMachine(quirks Quirks, peripherals Peripherals) *machine {
	m := &machine{
		quirks:   quirks,
		keyboard: peripherals.Keyboard,
		random:   peripherals.Random,
		video:    peripherals.Video,
	}
	m.PC = ProgramStart
	return m
}

// fetch reads the big endian opcode at PC.
func (m *machine) fetch() Opcode {
	hi := m.memory[m.PC%MemorySize]
	lo := m.memory[(m.PC+1)%MemorySize]
	return Opcode(uint16(hi)<<8 | uint16(lo))
}

// next advances PC to the following instruction.
func (m *machine) next() {
	m.PC = (m.PC + 2) % MemorySize
}

func (m *machine) push(address uint16) error {
	if int(m.SP) >= StackSize {
		return ErrStackOverflow
	}
	m.stack[m.SP] = address
	m.SP++
	return nil
}

func (m *machine) pop() (uint16, error) {
	if m.SP == 0 {
		return 0, ErrStackUnderflow
	}
	m.SP--
	return m.stack[m.SP], nil
}

// checkRange verifies that the size bytes starting at address are inside
// memory.
func (m *machine) checkRange(address uint16, size int) error {
	if int(address)+size > MemorySize {
		return ErrMemoryBounds
	}
	return nil
}

func (m *machine) render() {
	m.video.Render(m.frame)
}

func (m *machine) registers() Registers {
	return Registers{
		V:  m.V,
		I:  m.I,
		PC: m.PC,
		SP: m.SP,
		DT: m.DT,
		ST: m.ST,
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
