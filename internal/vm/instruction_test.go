package vm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestAddVxVy_AllValues(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine

	for a := range 256 {
		for b := range 256 {
			m.V[1] = uint8(a)
			m.V[2] = uint8(b)
			assert.NoError(t, exec(t, env, 0x8124))

			assert.Equal(t, uint8((a+b)%256), m.V[1])
			assert.Equal(t, boolToFlag(a+b > 255), m.V[flagRegister])
		}
	}
}

func TestSubVxVy_AllValues(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine

	for a := range 256 {
		for b := range 256 {
			m.V[1] = uint8(a)
			m.V[2] = uint8(b)
			assert.NoError(t, exec(t, env, 0x8125))

			assert.Equal(t, uint8((a-b+256)%256), m.V[1])
			assert.Equal(t, boolToFlag(a >= b), m.V[flagRegister])
		}
	}
}

func TestSubnVxVy_AllValues(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine

	for a := range 256 {
		for b := range 256 {
			m.V[1] = uint8(a)
			m.V[2] = uint8(b)
			assert.NoError(t, exec(t, env, 0x8127))

			assert.Equal(t, uint8((b-a+256)%256), m.V[1])
			assert.Equal(t, boolToFlag(b >= a), m.V[flagRegister])
		}
	}
}

func TestSubVxVy_ZeroDifferenceSetsFlag(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	m.V[3] = 42
	m.V[4] = 42

	assert.NoError(t, exec(t, env, 0x8345))
	assert.Equal(t, uint8(0), m.V[3])
	assert.Equal(t, uint8(1), m.V[flagRegister])
}

func TestShift_AllValues(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		quirks  Quirks
		source  int // register holding the shifted value
		shifted func(v uint8) uint8
		flag    func(v uint8) uint8
	}{
		{
			name:    "SHR in place",
			opcode:  0x8126,
			source:  1,
			shifted: func(v uint8) uint8 { return v >> 1 },
			flag:    func(v uint8) uint8 { return v & 1 },
		},
		{
			name:    "SHR reading VY",
			opcode:  0x8126,
			quirks:  Quirks{ShiftReadsVY: true},
			source:  2,
			shifted: func(v uint8) uint8 { return v >> 1 },
			flag:    func(v uint8) uint8 { return v & 1 },
		},
		{
			name:    "SHL in place",
			opcode:  0x812E,
			source:  1,
			shifted: func(v uint8) uint8 { return v << 1 },
			flag:    func(v uint8) uint8 { return v >> 7 },
		},
		{
			name:    "SHL reading VY",
			opcode:  0x812E,
			quirks:  Quirks{ShiftReadsVY: true},
			source:  2,
			shifted: func(v uint8) uint8 { return v << 1 },
			flag:    func(v uint8) uint8 { return v >> 7 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings(SuperChip)
			settings.Quirks = tt.quirks
			env := newTestEnv(t, settings)
			m := env.engine.machine

			for v := range 256 {
				m.V[1] = 0x5A
				m.V[2] = 0xA5
				m.V[tt.source] = uint8(v)
				assert.NoError(t, exec(t, env, tt.opcode))

				assert.Equal(t, tt.shifted(uint8(v)), m.V[1])
				assert.Equal(t, tt.flag(uint8(v)), m.V[flagRegister])
			}
		})
	}
}

func TestLogic_FlagResetQuirk(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected uint8
	}{
		{"OR", 0x8121, 0b1110},
		{"AND", 0x8122, 0b1000},
		{"XOR", 0x8123, 0b0110},
	}

	for _, tt := range tests {
		for _, reset := range []bool{true, false} {
			t.Run(fmt.Sprintf("%s reset %t", tt.name, reset), func(t *testing.T) {
				settings := DefaultSettings(Classic)
				settings.Quirks.ResetFlagOnLogic = reset
				env := newTestEnv(t, settings)
				m := env.engine.machine
				m.V[1] = 0b1100
				m.V[2] = 0b1010
				m.V[flagRegister] = 7

				assert.NoError(t, exec(t, env, tt.opcode))
				assert.Equal(t, tt.expected, m.V[1])
				if reset {
					assert.Equal(t, uint8(0), m.V[flagRegister])
				} else {
					assert.Equal(t, uint8(7), m.V[flagRegister])
				}
			})
		}
	}
}

func TestAddVxByte_NoFlag(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	m.V[5] = 0xFF

	assert.NoError(t, exec(t, env, 0x7502))
	assert.Equal(t, uint8(0x01), m.V[5])
	assert.Equal(t, uint8(0), m.V[flagRegister])
}

func TestSkipInstructions(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		skip   bool
	}{
		{"SE byte equal", 0x3112, 0x12, 0, true},
		{"SE byte different", 0x3112, 0x13, 0, false},
		{"SNE byte equal", 0x4112, 0x12, 0, false},
		{"SNE byte different", 0x4112, 0x13, 0, true},
		{"SE registers equal", 0x5120, 7, 7, true},
		{"SE registers different", 0x5120, 7, 8, false},
		{"SNE registers equal", 0x9120, 7, 7, false},
		{"SNE registers different", 0x9120, 7, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, DefaultSettings(Classic))
			m := env.engine.machine
			m.V[1] = tt.vx
			m.V[2] = tt.vy

			assert.NoError(t, exec(t, env, tt.opcode))
			if tt.skip {
				assert.Equal(t, uint16(ProgramStart+4), m.PC)
			} else {
				assert.Equal(t, uint16(ProgramStart+2), m.PC)
			}
		})
	}
}

func TestKeySkipInstructions(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		pressed bool
		skip    bool
	}{
		{"SKP pressed", 0xE19E, true, true},
		{"SKP released", 0xE19E, false, false},
		{"SKNP pressed", 0xE1A1, true, false},
		{"SKNP released", 0xE1A1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, DefaultSettings(Classic))
			m := env.engine.machine
			m.V[1] = 0xB
			env.keyboard.pressed[0xB] = tt.pressed

			assert.NoError(t, exec(t, env, tt.opcode))
			if tt.skip {
				assert.Equal(t, uint16(ProgramStart+4), m.PC)
			} else {
				assert.Equal(t, uint16(ProgramStart+2), m.PC)
			}
		})
	}
}

func TestJumpWithOffset(t *testing.T) {
	tests := []struct {
		name     string
		vx       bool
		expected uint16
	}{
		{"adds V0", false, 0x310 + 0x04},
		{"adds VX", true, 0x310 + 0x30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings(Classic)
			settings.Quirks.JumpAddsVX = tt.vx
			env := newTestEnv(t, settings)
			m := env.engine.machine
			m.V[0] = 0x04
			m.V[3] = 0x30

			assert.NoError(t, exec(t, env, 0xB310))
			assert.Equal(t, tt.expected, m.PC)
		})
	}
}

func TestJumpWithOffset_WrapsMemory(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	m.V[0] = 0x10

	assert.NoError(t, exec(t, env, 0xBFF8))
	assert.Equal(t, uint16(0x008), m.PC)
}

func TestCallAndReturn(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine

	assert.NoError(t, exec(t, env, 0x2400))
	assert.Equal(t, uint16(0x400), m.PC)
	assert.Equal(t, uint8(1), m.SP)

	assert.NoError(t, exec(t, env, 0x00EE))
	assert.Equal(t, uint16(ProgramStart+2), m.PC)
	assert.Equal(t, uint8(0), m.SP)
}

func TestCall_StackOverflow(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine

	for range StackSize {
		assert.NoError(t, exec(t, env, 0x2400))
	}
	assert.Equal(t, uint8(StackSize), m.SP)

	err := exec(t, env, 0x2400)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint8(StackSize), m.SP)
}

func TestReturn_StackUnderflow(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))

	err := exec(t, env, 0x00EE)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(ProgramStart), env.engine.machine.PC)
}

func TestRandom(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	env.random.value = 0xAB

	assert.NoError(t, exec(t, env, 0xC10F))
	assert.Equal(t, uint8(0x0B), env.engine.machine.V[1])
}

func TestTimerRegisters(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	m.V[1] = 33
	m.V[2] = 44

	assert.NoError(t, exec(t, env, 0xF115))
	assert.NoError(t, exec(t, env, 0xF218))
	assert.Equal(t, uint8(33), m.DT)
	assert.Equal(t, uint8(44), m.ST)

	assert.NoError(t, exec(t, env, 0xF307))
	assert.Equal(t, uint8(33), m.V[3])
}

func TestIndexInstructions(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine

	assert.NoError(t, exec(t, env, 0xA123))
	assert.Equal(t, uint16(0x123), m.I)

	m.V[4] = 0x10
	assert.NoError(t, exec(t, env, 0xF41E))
	assert.Equal(t, uint16(0x133), m.I)

	m.V[4] = 0xF
	assert.NoError(t, exec(t, env, 0xF429))
	assert.Equal(t, uint16(0xF*FontGlyphSize), m.I)
}

func TestBCD(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	m.I = 0x300
	m.V[7] = 254

	assert.NoError(t, exec(t, env, 0xF733))
	assert.Equal(t, byte(2), m.memory[0x300])
	assert.Equal(t, byte(5), m.memory[0x301])
	assert.Equal(t, byte(4), m.memory[0x302])
}

func TestBCD_OutOfBounds(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	m.I = MemorySize - 2

	err := exec(t, env, 0xF733)
	assert.True(t, errors.Is(err, ErrMemoryBounds))
}

func TestRegisterBlock(t *testing.T) {
	tests := []struct {
		name      string
		increment bool
		expectedI uint16
	}{
		{"index unchanged", false, 0x300},
		{"index incremented", true, 0x304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings(Classic)
			settings.Quirks.IncrementIndexOnBlock = tt.increment
			env := newTestEnv(t, settings)
			m := env.engine.machine
			m.V = [RegisterCount]uint8{1, 2, 3, 4, 5}
			m.I = 0x300

			assert.NoError(t, exec(t, env, 0xF355))
			assert.Equal(t, []byte{1, 2, 3, 4, 0}, m.memory[0x300:0x305])
			assert.Equal(t, tt.expectedI, m.I)

			m.V = [RegisterCount]uint8{}
			m.I = 0x300
			assert.NoError(t, exec(t, env, 0xF265))
			assert.Equal(t, [RegisterCount]uint8{1, 2, 3}, m.V)
			if tt.increment {
				assert.Equal(t, uint16(0x303), m.I)
			} else {
				assert.Equal(t, uint16(0x300), m.I)
			}
		})
	}
}

func TestRegisterBlock_OutOfBounds(t *testing.T) {
	for _, op := range []uint16{0xF355, 0xF365} {
		env := newTestEnv(t, DefaultSettings(Classic))
		m := env.engine.machine
		m.I = MemorySize - 3

		err := exec(t, env, op)
		assert.True(t, errors.Is(err, ErrMemoryBounds))
		assert.Equal(t, uint16(MemorySize-3), m.I)
		assert.Equal(t, uint16(ProgramStart), m.PC)
	}
}

func TestWaitForKey(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine

	assert.NoError(t, exec(t, env, 0xF50A))
	assert.True(t, m.waiting)
	assert.Equal(t, uint16(ProgramStart), m.PC)

	env.keyboard.presses = []uint8{0xC}
	assert.NoError(t, exec(t, env, 0xF50A))
	assert.False(t, m.waiting)
	assert.Equal(t, uint8(0xC), m.V[5])
	assert.Equal(t, uint16(ProgramStart+2), m.PC)
}

func TestClearScreen(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	for row := range m.frame {
		for col := range m.frame[row] {
			m.frame[row][col] = true
		}
	}

	assert.NoError(t, exec(t, env, 0x00E0))
	for row := range Height {
		for col := range Width {
			assert.False(t, m.frame.Pixel(col, row))
		}
	}
	assert.Equal(t, 1, env.video.renders)
	assert.Equal(t, Frame{}, env.video.last)
}

func TestDraw(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	m.I = 0x300
	m.memory[0x300] = 0b11000000
	m.memory[0x301] = 0b10000000
	m.V[1] = 10
	m.V[2] = 5

	assert.NoError(t, exec(t, env, 0xD122))
	assert.Equal(t, uint8(0), m.V[flagRegister])
	assert.True(t, m.frame.Pixel(10, 5))
	assert.True(t, m.frame.Pixel(11, 5))
	assert.True(t, m.frame.Pixel(10, 6))
	assert.False(t, m.frame.Pixel(11, 6))
	assert.Equal(t, 1, env.video.renders)
	assert.Equal(t, m.frame, env.video.last)

	assert.NoError(t, exec(t, env, 0xD122))
	assert.Equal(t, uint8(1), m.V[flagRegister])
	assert.Equal(t, Frame{}, m.frame)
	assert.Equal(t, 2, env.video.renders)
}

func TestDraw_StartCoordinatesWrap(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	m.I = 0x300
	m.memory[0x300] = 0b10000000
	m.V[1] = Width + 3
	m.V[2] = Height + 4

	assert.NoError(t, exec(t, env, 0xD121))
	assert.True(t, m.frame.Pixel(3, 4))
}

func TestDraw_SpriteOutOfBounds(t *testing.T) {
	env := newTestEnv(t, DefaultSettings(Classic))
	m := env.engine.machine
	m.I = MemorySize - 4

	err := exec(t, env, 0xD125)
	assert.True(t, errors.Is(err, ErrMemoryBounds))
	assert.Equal(t, 0, env.video.renders)

	m.I = MemorySize - 5
	assert.NoError(t, exec(t, env, 0xD125))
}
