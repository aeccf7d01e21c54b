package vm

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// mnemonic returns the assembler mnemonic of the opcode as defined by the
// retrogolib CHIP-8 opcode table, or an empty string for unknown opcodes.
func mnemonic(op Opcode) string {
	w := uint16(op)
	for _, candidate := range chip8.Opcodes[int(op.Nibble(3))] {
		if candidate.Instruction != nil && candidate.Info.Mask&w == candidate.Info.Value {
			return candidate.Instruction.Name
		}
	}
	return ""
}
