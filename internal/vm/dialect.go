package vm

import (
	"fmt"
	"strings"
)

// Dialect is a supported variant of the instruction set.
type Dialect int

// Supported dialects.
const (
	Classic Dialect = iota
	SuperChip
	XoChip
)

var dialectNames = map[Dialect]string{
	Classic:   "chip8",
	SuperChip: "schip",
	XoChip:    "xochip",
}

var dialectAliases = map[string]Dialect{
	"chip8":     Classic,
	"chip-8":    Classic,
	"ch8":       Classic,
	"classic":   Classic,
	"schip":     SuperChip,
	"sch":       SuperChip,
	"superchip": SuperChip,
	"xochip":    XoChip,
	"xo-chip":   XoChip,
	"xoch":      XoChip,
}

func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// ParseDialect returns the dialect matching the given name or one of its
// aliases, case insensitive.
func ParseDialect(name string) (Dialect, error) {
	d, ok := dialectAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Classic, fmt.Errorf("unsupported dialect '%s'", name)
	}
	return d, nil
}

// Quirks configures the instructions whose behavior differs between dialects.
type Quirks struct {
	// ResetFlagOnLogic makes OR, AND and XOR clear VF.
	ResetFlagOnLogic bool
	// ShiftReadsVY makes SHR and SHL shift VY into VX instead of shifting VX
	// in place.
	ShiftReadsVY bool
	// JumpAddsVX makes JP V0,addr add VX, X being the highest nibble of the
	// address, instead of V0.
	JumpAddsVX bool
	// IncrementIndexOnBlock makes the register block store and load advance
	// I past the last accessed address.
	IncrementIndexOnBlock bool
}

// DefaultQuirks returns the quirks of the given dialect.
func DefaultQuirks(d Dialect) Quirks {
	if d == Classic {
		return Quirks{
			ResetFlagOnLogic:      true,
			ShiftReadsVY:          true,
			IncrementIndexOnBlock: true,
		}
	}
	return Quirks{
		JumpAddsVX: true,
	}
}
