// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ParseFlags parses the command line flags of the named program and returns
// the program options.
func ParseFlags(program string) (options.Program, error) {
	flags := flag.NewFlagSet(program, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil {
		return opts, &UsageError{flags: flags, program: program, msg: err.Error()}
	}
	if len(args) == 0 && opts.Input == "" && opts.Batch == "" {
		return opts, &UsageError{flags: flags, program: program}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags   *flag.FlagSet
	program string
	msg     string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: %s [options] <ROM file>\n\n", e.program)
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(strings.TrimSpace(opts.System))
	if opts.System != "" {
		if _, err := vm.ParseDialect(opts.System); err != nil {
			return err
		}
	}

	opts.Frontend = strings.ToLower(opts.Frontend)
	validFrontends := []string{options.FrontendTerminal, options.FrontendHeadless}
	if !slices.Contains(validFrontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends, ", "))
	}

	if opts.Rate < 0 {
		return fmt.Errorf("invalid instruction rate %d", opts.Rate)
	}

	if opts.Duration != "" {
		d, err := time.ParseDuration(opts.Duration)
		if err != nil {
			return fmt.Errorf("parsing duration: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("invalid negative duration %s", opts.Duration)
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Config, "c", "", "name of the TOML settings file to load")
	flags.StringVar(&opts.Expect, "expect", "", "name of an ASCII frame file that the final frame has to match")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, for example *.ch8")
	flags.StringVar(&opts.System, "s", "", "dialect to emulate (chip8, schip, xochip) - if not auto-detected from file extension")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendTerminal, "frontend to use (terminal, headless)")
	flags.IntVar(&opts.Rate, "rate", 0, "instructions per second, 500 if not set")
	flags.StringVar(&opts.Duration, "duration", "", "emulated time to run, for example 5s - runs until interrupted if not set")
	flags.Uint64Var(&opts.Steps, "steps", 0, "number of instructions to execute, takes precedence over -duration")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound output")

	flags.Var(&opts.ResetFlagOnLogic, "quirk-vf-reset", "OR, AND and XOR reset VF (default: dialect specific)")
	flags.Var(&opts.ShiftReadsVY, "quirk-shift-vy", "SHR and SHL shift VY into VX (default: dialect specific)")
	flags.Var(&opts.JumpAddsVX, "quirk-jump-vx", "BNNN adds VX instead of V0 (default: dialect specific)")
	flags.Var(&opts.IncrementIndexOnBlock, "quirk-index-inc", "FX55 and FX65 increment I (default: dialect specific)")
}
