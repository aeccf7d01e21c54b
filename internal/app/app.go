// Package app provides the main application helper for the interpreter.
package app

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// PrintInfo prints the information about the input file and the settings
// that it is run with.
func PrintInfo(logger *log.Logger, opts options.Program, settings vm.Settings, romSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running ROM",
		log.String("file", opts.Input),
		log.Int("size", romSize),
		log.Stringer("dialect", settings.Dialect),
		log.String("frontend", opts.Frontend),
	)
	logger.Debug("Engine settings",
		log.String("instruction_duration", settings.InstructionDuration.String()),
		log.String("timer_period", settings.TimerPeriod.String()),
		log.String("quirks", QuirksString(settings.Quirks)),
	)

	if settings.Trace && !opts.Debug {
		logger.Warn("Instruction tracing requires debug logging to be enabled")
	}
}

// QuirksString returns a compact description of the enabled quirks.
func QuirksString(q vm.Quirks) string {
	return fmt.Sprintf("vf-reset=%t shift-vy=%t jump-vx=%t index-inc=%t",
		q.ResetFlagOnLogic, q.ShiftReadsVY, q.JumpAddsVX, q.IncrementIndexOnBlock)
}
