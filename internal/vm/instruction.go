package vm

// Instruction describes one entry of the instruction table.
type Instruction struct {
	// Name identifies the instruction variant, for example "LD Vx, byte".
	Name string

	execute func(m *machine, op Opcode) error
}

// Instruction table. Every instruction except jumps, calls and returns
// advances PC by 2, conditional skips advance it once more when the
// condition holds.
var (
	Cls = &Instruction{Name: "CLS", execute: func(m *machine, _ Opcode) error {
		m.frame.Clear()
		m.render()
		m.next()
		return nil
	}}

	Ret = &Instruction{Name: "RET", execute: func(m *machine, _ Opcode) error {
		address, err := m.pop()
		if err != nil {
			return err
		}
		m.PC = address
		m.next()
		return nil
	}}

	JpAddr = &Instruction{Name: "JP addr", execute: func(m *machine, op Opcode) error {
		m.PC = op.NNN()
		return nil
	}}

	CallAddr = &Instruction{Name: "CALL addr", execute: func(m *machine, op Opcode) error {
		if err := m.push(m.PC); err != nil {
			return err
		}
		m.PC = op.NNN()
		return nil
	}}

	SeVxByte = &Instruction{Name: "SE Vx, byte", execute: func(m *machine, op Opcode) error {
		m.skipIf(m.V[op.X()] == op.KK())
		return nil
	}}

	SneVxByte = &Instruction{Name: "SNE Vx, byte", execute: func(m *machine, op Opcode) error {
		m.skipIf(m.V[op.X()] != op.KK())
		return nil
	}}

	SeVxVy = &Instruction{Name: "SE Vx, Vy", execute: func(m *machine, op Opcode) error {
		m.skipIf(m.V[op.X()] == m.V[op.Y()])
		return nil
	}}

	LdVxByte = &Instruction{Name: "LD Vx, byte", execute: func(m *machine, op Opcode) error {
		m.V[op.X()] = op.KK()
		m.next()
		return nil
	}}

	AddVxByte = &Instruction{Name: "ADD Vx, byte", execute: func(m *machine, op Opcode) error {
		m.V[op.X()] += op.KK()
		m.next()
		return nil
	}}

	LdVxVy = &Instruction{Name: "LD Vx, Vy", execute: func(m *machine, op Opcode) error {
		m.V[op.X()] = m.V[op.Y()]
		m.next()
		return nil
	}}

	OrVxVy = &Instruction{Name: "OR Vx, Vy", execute: func(m *machine, op Opcode) error {
		m.V[op.X()] |= m.V[op.Y()]
		m.logicDone()
		return nil
	}}

	AndVxVy = &Instruction{Name: "AND Vx, Vy", execute: func(m *machine, op Opcode) error {
		m.V[op.X()] &= m.V[op.Y()]
		m.logicDone()
		return nil
	}}

	XorVxVy = &Instruction{Name: "XOR Vx, Vy", execute: func(m *machine, op Opcode) error {
		m.V[op.X()] ^= m.V[op.Y()]
		m.logicDone()
		return nil
	}}

	AddVxVy = &Instruction{Name: "ADD Vx, Vy", execute: func(m *machine, op Opcode) error {
		sum := uint16(m.V[op.X()]) + uint16(m.V[op.Y()])
		m.V[op.X()] = uint8(sum)
		m.V[flagRegister] = boolToFlag(sum > 0xFF)
		m.next()
		return nil
	}}

	SubVxVy = &Instruction{Name: "SUB Vx, Vy", execute: func(m *machine, op Opcode) error {
		m.subtract(op.X(), m.V[op.X()], m.V[op.Y()])
		return nil
	}}

	ShrVxVy = &Instruction{Name: "SHR Vx, Vy", execute: func(m *machine, op Opcode) error {
		value := m.shiftSource(op)
		m.V[op.X()] = value >> 1
		m.V[flagRegister] = value & 0x01
		m.next()
		return nil
	}}

	SubnVxVy = &Instruction{Name: "SUBN Vx, Vy", execute: func(m *machine, op Opcode) error {
		m.subtract(op.X(), m.V[op.Y()], m.V[op.X()])
		return nil
	}}

	ShlVxVy = &Instruction{Name: "SHL Vx, Vy", execute: func(m *machine, op Opcode) error {
		value := m.shiftSource(op)
		m.V[op.X()] = value << 1
		m.V[flagRegister] = value >> 7
		m.next()
		return nil
	}}

	SneVxVy = &Instruction{Name: "SNE Vx, Vy", execute: func(m *machine, op Opcode) error {
		m.skipIf(m.V[op.X()] != m.V[op.Y()])
		return nil
	}}

	LdIAddr = &Instruction{Name: "LD I, addr", execute: func(m *machine, op Opcode) error {
		m.I = op.NNN()
		m.next()
		return nil
	}}

	JpV0Addr = &Instruction{Name: "JP V0, addr", execute: func(m *machine, op Opcode) error {
		offset := m.V[0]
		if m.quirks.JumpAddsVX {
			offset = m.V[op.X()]
		}
		m.PC = (op.NNN() + uint16(offset)) % MemorySize
		return nil
	}}

	RndVxByte = &Instruction{Name: "RND Vx, byte", execute: func(m *machine, op Opcode) error {
		m.V[op.X()] = m.random.RandomByte() & op.KK()
		m.next()
		return nil
	}}

	DrwVxVyN = &Instruction{Name: "DRW Vx, Vy, nibble", execute: func(m *machine, op Opcode) error {
		rows := int(op.N())
		if err := m.checkRange(m.I, rows); err != nil {
			return err
		}

		sprite := m.memory[m.I : int(m.I)+rows]
		collision := m.frame.DrawSprite(m.V[op.X()], m.V[op.Y()], sprite)
		m.V[flagRegister] = boolToFlag(collision)
		m.render()
		m.next()
		return nil
	}}

	SkpVx = &Instruction{Name: "SKP Vx", execute: func(m *machine, op Opcode) error {
		m.skipIf(m.keyboard.IsPressed(m.V[op.X()] & 0x0F))
		return nil
	}}

	SknpVx = &Instruction{Name: "SKNP Vx", execute: func(m *machine, op Opcode) error {
		m.skipIf(!m.keyboard.IsPressed(m.V[op.X()] & 0x0F))
		return nil
	}}

	LdVxDT = &Instruction{Name: "LD Vx, DT", execute: func(m *machine, op Opcode) error {
		m.V[op.X()] = m.DT
		m.next()
		return nil
	}}

	// LdVxK suspends execution without advancing PC until a key is pressed.
	LdVxK = &Instruction{Name: "LD Vx, K", execute: func(m *machine, op Opcode) error {
		key, ok := m.keyboard.PressedKey()
		if !ok {
			m.waiting = true
			return nil
		}
		m.waiting = false
		m.V[op.X()] = key & 0x0F
		m.next()
		return nil
	}}

	LdDTVx = &Instruction{Name: "LD DT, Vx", execute: func(m *machine, op Opcode) error {
		m.DT = m.V[op.X()]
		m.next()
		return nil
	}}

	LdSTVx = &Instruction{Name: "LD ST, Vx", execute: func(m *machine, op Opcode) error {
		m.ST = m.V[op.X()]
		m.next()
		return nil
	}}

	AddIVx = &Instruction{Name: "ADD I, Vx", execute: func(m *machine, op Opcode) error {
		m.I += uint16(m.V[op.X()])
		m.next()
		return nil
	}}

	LdFVx = &Instruction{Name: "LD F, Vx", execute: func(m *machine, op Opcode) error {
		m.I = FontOffset + uint16(m.V[op.X()])*FontGlyphSize
		m.next()
		return nil
	}}

	LdBVx = &Instruction{Name: "LD B, Vx", execute: func(m *machine, op Opcode) error {
		if err := m.checkRange(m.I, 3); err != nil {
			return err
		}
		value := m.V[op.X()]
		m.memory[m.I] = value / 100
		m.memory[m.I+1] = value / 10 % 10
		m.memory[m.I+2] = value % 10
		m.next()
		return nil
	}}

	LdIVx = &Instruction{Name: "LD [I], Vx", execute: func(m *machine, op Opcode) error {
		count := int(op.X()) + 1
		if err := m.checkRange(m.I, count); err != nil {
			return err
		}
		copy(m.memory[m.I:int(m.I)+count], m.V[:count])
		m.blockDone(count)
		return nil
	}}

	LdVxI = &Instruction{Name: "LD Vx, [I]", execute: func(m *machine, op Opcode) error {
		count := int(op.X()) + 1
		if err := m.checkRange(m.I, count); err != nil {
			return err
		}
		copy(m.V[:count], m.memory[m.I:int(m.I)+count])
		m.blockDone(count)
		return nil
	}}
)

func (m *machine) skipIf(condition bool) {
	if condition {
		m.next()
	}
	m.next()
}

func (m *machine) logicDone() {
	if m.quirks.ResetFlagOnLogic {
		m.V[flagRegister] = 0
	}
	m.next()
}

// subtract stores minuend - subtrahend in Vx and sets VF when the difference
// is not negative.
func (m *machine) subtract(x, minuend, subtrahend uint8) {
	difference := int16(minuend) - int16(subtrahend)
	m.V[x] = uint8(difference)
	m.V[flagRegister] = boolToFlag(difference >= 0)
	m.next()
}

func (m *machine) shiftSource(op Opcode) uint8 {
	if m.quirks.ShiftReadsVY {
		return m.V[op.Y()]
	}
	return m.V[op.X()]
}

func (m *machine) blockDone(count int) {
	if m.quirks.IncrementIndexOnBlock {
		m.I += uint16(count)
	}
	m.next()
}
