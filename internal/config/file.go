package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/retrochip8/internal/vm"
)

// File is the content of a TOML settings file. Every entry is optional,
// missing entries keep the defaults of the dialect.
type File struct {
	Dialect string         `toml:"dialect"`
	Rate    int            `toml:"rate"`
	Quirks  QuirkOverrides `toml:"quirks"`
}

// QuirkOverrides overrides single quirks of a dialect.
type QuirkOverrides struct {
	ResetFlagOnLogic      *bool `toml:"vf_reset"`
	ShiftReadsVY          *bool `toml:"shift_vy"`
	JumpAddsVX            *bool `toml:"jump_vx"`
	IncrementIndexOnBlock *bool `toml:"index_increment"`
}

// LoadFile parses the TOML settings file at the given path.
// Unknown keys are reported as error.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("unknown keys in settings file %s: %s", path, strings.Join(keys, ", "))
	}

	if f.Dialect != "" {
		if _, err := vm.ParseDialect(f.Dialect); err != nil {
			return nil, fmt.Errorf("settings file %s: %w", path, err)
		}
	}
	if f.Rate < 0 {
		return nil, fmt.Errorf("settings file %s: invalid instruction rate %d", path, f.Rate)
	}
	return &f, nil
}

// Apply overwrites the quirks that are set in the overrides.
func (o QuirkOverrides) Apply(quirks *vm.Quirks) {
	apply(o.ResetFlagOnLogic, &quirks.ResetFlagOnLogic)
	apply(o.ShiftReadsVY, &quirks.ShiftReadsVY)
	apply(o.JumpAddsVX, &quirks.JumpAddsVX)
	apply(o.IncrementIndexOnBlock, &quirks.IncrementIndexOnBlock)
}

func apply(value, target *bool) {
	if value != nil {
		*target = *value
	}
}
