package vm

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type mockKeyboard struct {
	pressed [KeyCount]bool
	presses []uint8
}

func (m *mockKeyboard) IsPressed(key uint8) bool {
	return m.pressed[key]
}

func (m *mockKeyboard) PressedKey() (uint8, bool) {
	if len(m.presses) == 0 {
		return 0, false
	}
	key := m.presses[0]
	m.presses = m.presses[1:]
	return key, true
}

type mockRandom struct {
	value uint8
}

func (m *mockRandom) RandomByte() uint8 {
	return m.value
}

type mockTimer struct {
	ticks  int
	period time.Duration
	onTick func()
}

func (m *mockTimer) Tick(period time.Duration) {
	m.ticks++
	m.period = period
	if m.onTick != nil {
		m.onTick()
	}
}

type mockSound struct {
	calls int
	total time.Duration
}

func (m *mockSound) PlaySound(duration time.Duration) {
	m.calls++
	m.total += duration
}

type mockVideo struct {
	renders int
	last    Frame
}

func (m *mockVideo) Render(frame Frame) {
	m.renders++
	m.last = frame
}

type testEnv struct {
	engine   *Engine
	keyboard *mockKeyboard
	random   *mockRandom
	timer    *mockTimer
	sound    *mockSound
	video    *mockVideo
}

func newTestEnv(t *testing.T, settings Settings, program ...uint16) *testEnv {
	t.Helper()

	env := &testEnv{
		keyboard: &mockKeyboard{},
		random:   &mockRandom{},
		timer:    &mockTimer{},
		sound:    &mockSound{},
		video:    &mockVideo{},
	}

	engine, err := New(log.NewTestLogger(t), settings, Peripherals{
		Keyboard: env.keyboard,
		Random:   env.random,
		Timer:    env.timer,
		Sound:    env.sound,
		Video:    env.video,
	})
	assert.NoError(t, err)
	engine.LoadFont()
	assert.NoError(t, engine.LoadProgram(assemble(program...)))

	env.engine = engine
	return env
}

// assemble converts opcodes into big endian program bytes.
func assemble(opcodes ...uint16) []byte {
	data := make([]byte, 0, 2*len(opcodes))
	for _, op := range opcodes {
		data = append(data, byte(op>>8), byte(op))
	}
	return data
}

// exec executes a single opcode against the machine of the engine, without
// pacing.
func exec(t *testing.T, env *testEnv, op uint16) error {
	t.Helper()

	ins, ok := Decode(Opcode(op))
	assert.True(t, ok, "opcode %04X not decoded", op)
	return ins.execute(env.engine.machine, Opcode(op))
}
