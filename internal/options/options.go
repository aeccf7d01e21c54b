// Package options contains the program options.
package options

import (
	"fmt"
	"strconv"
)

// Frontends that can present a running program.
const (
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Config string `flag:"c" usage:"TOML settings file"`
	Expect string `flag:"expect" usage:"expected ASCII frame file to verify the final frame against"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	System   string `flag:"s" usage:"dialect: chip8, schip, xochip (default: auto-detect)"`
	Frontend string `flag:"frontend" usage:"frontend: terminal, headless" default:"terminal"`
	Rate     int    `flag:"rate" usage:"instructions per second (default: 500)"`
	Duration string `flag:"duration" usage:"emulated run time, e.g. 10s (default: until interrupted)"`
	Steps    uint64 `flag:"steps" usage:"number of instructions to execute, overrides duration"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction"`
	Mute     bool   `flag:"mute" usage:"disable sound"`
}

// QuirkFlags contains the quirk overrides. Unset flags keep the defaults of
// the dialect.
type QuirkFlags struct {
	ResetFlagOnLogic      OptionalBool `flag:"quirk-vf-reset" usage:"OR, AND and XOR reset VF"`
	ShiftReadsVY          OptionalBool `flag:"quirk-shift-vy" usage:"shifts read VY instead of shifting VX in place"`
	JumpAddsVX            OptionalBool `flag:"quirk-jump-vx" usage:"BNNN jumps to NNN plus VX instead of V0"`
	IncrementIndexOnBlock OptionalBool `flag:"quirk-index-inc" usage:"FX55 and FX65 increment I"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	QuirkFlags
}

// OptionalBool is a boolean flag value that tracks whether it was set.
type OptionalBool struct {
	value bool
	set   bool
}

// NewOptionalBool returns a set optional boolean.
func NewOptionalBool(value bool) OptionalBool {
	return OptionalBool{value: value, set: true}
}

// Get returns the value and whether it was set.
func (b OptionalBool) Get() (bool, bool) {
	return b.value, b.set
}

// Apply overwrites the target with the value if it was set.
func (b OptionalBool) Apply(target *bool) {
	if b.set {
		*target = b.value
	}
}

func (b *OptionalBool) String() string {
	if b == nil || !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

// Set implements the flag.Value interface.
func (b *OptionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("parsing boolean '%s': %w", s, err)
	}
	b.value = v
	b.set = true
	return nil
}

// IsBoolFlag allows the flag to be passed without a value.
func (b *OptionalBool) IsBoolFlag() bool {
	return true
}
