package app

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestQuirksString(t *testing.T) {
	assert.Equal(t, "vf-reset=true shift-vy=true jump-vx=false index-inc=true",
		QuirksString(vm.DefaultQuirks(vm.Classic)))
	assert.Equal(t, "vf-reset=false shift-vy=false jump-vx=true index-inc=false",
		QuirksString(vm.DefaultQuirks(vm.XoChip)))
}

func TestPrintInfo(t *testing.T) {
	logger := log.NewTestLogger(t)
	settings := vm.DefaultSettings(vm.SuperChip)
	settings.Trace = true

	PrintInfo(logger, options.Program{Parameters: options.Parameters{Input: "game.sc8"}}, settings, 256)
	PrintInfo(logger, options.Program{Flags: options.Flags{Quiet: true}}, settings, 256)
}
