package vm

// Decode returns the instruction matching the opcode. It returns false for
// opcodes outside of the supported instruction set.
// The first nibble selects the instruction family, families 0x0, 0x8, 0xE
// and 0xF are further selected by their lowest byte or nibble.
func Decode(op Opcode) (*Instruction, bool) {
	var ins *Instruction

	switch op.Nibble(3) {
	case 0x0:
		switch uint16(op) {
		case 0x00E0:
			ins = Cls
		case 0x00EE:
			ins = Ret
		}
	case 0x1:
		ins = JpAddr
	case 0x2:
		ins = CallAddr
	case 0x3:
		ins = SeVxByte
	case 0x4:
		ins = SneVxByte
	case 0x5:
		if op.N() == 0 {
			ins = SeVxVy
		}
	case 0x6:
		ins = LdVxByte
	case 0x7:
		ins = AddVxByte
	case 0x8:
		ins = decodeArithmetic(op)
	case 0x9:
		if op.N() == 0 {
			ins = SneVxVy
		}
	case 0xA:
		ins = LdIAddr
	case 0xB:
		ins = JpV0Addr
	case 0xC:
		ins = RndVxByte
	case 0xD:
		ins = DrwVxVyN
	case 0xE:
		switch op.KK() {
		case 0x9E:
			ins = SkpVx
		case 0xA1:
			ins = SknpVx
		}
	case 0xF:
		ins = decodeMisc(op)
	}

	return ins, ins != nil
}

func decodeArithmetic(op Opcode) *Instruction {
	switch op.N() {
	case 0x0:
		return LdVxVy
	case 0x1:
		return OrVxVy
	case 0x2:
		return AndVxVy
	case 0x3:
		return XorVxVy
	case 0x4:
		return AddVxVy
	case 0x5:
		return SubVxVy
	case 0x6:
		return ShrVxVy
	case 0x7:
		return SubnVxVy
	case 0xE:
		return ShlVxVy
	default:
		return nil
	}
}

func decodeMisc(op Opcode) *Instruction {
	switch op.KK() {
	case 0x07:
		return LdVxDT
	case 0x0A:
		return LdVxK
	case 0x15:
		return LdDTVx
	case 0x18:
		return LdSTVx
	case 0x1E:
		return AddIVx
	case 0x29:
		return LdFVx
	case 0x33:
		return LdBVx
	case 0x55:
		return LdIVx
	case 0x65:
		return LdVxI
	default:
		return nil
	}
}
