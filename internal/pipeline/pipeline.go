// Package pipeline orchestrates the stages of an interpreter session.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/platform/random"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete interpreter session.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new interpreter pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the ROM of the input file and runs it. The engine is
// returned also when running failed, to allow inspecting the final state.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, peripherals vm.Peripherals) (*vm.Engine, error) {
	settings, err := p.Settings(opts)
	if err != nil {
		return nil, fmt.Errorf("resolving settings: %w", err)
	}

	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	return p.ExecuteWithROM(ctx, rom, opts, settings, peripherals)
}

// ExecuteWithROM runs the pipeline with a ROM that is already in memory.
func (p *Pipeline) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program,
	settings vm.Settings, peripherals vm.Peripherals) (*vm.Engine, error) {

	duration, err := runDuration(opts)
	if err != nil {
		return nil, err
	}

	if peripherals.Random == nil {
		peripherals.Random = random.NewTimeSeeded()
	}

	engine, err := vm.New(p.logger, settings, peripherals)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	engine.LoadFont()
	if err := engine.LoadProgram(rom); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	app.PrintInfo(p.logger, opts, settings, len(rom))

	if opts.Steps > 0 {
		err = engine.RunInstructions(ctx, opts.Steps)
	} else {
		err = engine.RunDuration(ctx, duration)
	}

	p.logger.Debug("Execution stopped",
		log.String("instructions", strconv.FormatUint(engine.Executed(), 10)),
		log.String("emulated_time", engine.Elapsed().String()))
	if err != nil {
		return engine, fmt.Errorf("running program: %w", err)
	}
	return engine, nil
}

// Settings resolves the engine settings. Dialect defaults are overridden
// by the settings file, which is overridden by command line flags.
func (p *Pipeline) Settings(opts options.Program) (vm.Settings, error) {
	file := &config.File{}
	if opts.Config != "" {
		var err error
		file, err = config.LoadFile(opts.Config)
		if err != nil {
			return vm.Settings{}, fmt.Errorf("loading settings file: %w", err)
		}
	}

	dialect, err := p.detector.Detect(opts, file.Dialect)
	if err != nil {
		return vm.Settings{}, fmt.Errorf("detecting dialect: %w", err)
	}

	settings := vm.DefaultSettings(dialect)
	file.Quirks.Apply(&settings.Quirks)
	opts.ResetFlagOnLogic.Apply(&settings.Quirks.ResetFlagOnLogic)
	opts.ShiftReadsVY.Apply(&settings.Quirks.ShiftReadsVY)
	opts.JumpAddsVX.Apply(&settings.Quirks.JumpAddsVX)
	opts.IncrementIndexOnBlock.Apply(&settings.Quirks.IncrementIndexOnBlock)

	rate := file.Rate
	if opts.Rate > 0 {
		rate = opts.Rate
	}
	settings.InstructionDuration = vm.RateDuration(rate)
	settings.Trace = opts.Trace

	if err := settings.Validate(); err != nil {
		return vm.Settings{}, fmt.Errorf("validating settings: %w", err)
	}
	return settings, nil
}

// runDuration returns the emulated time to run, 0 for running until the
// context is canceled.
func runDuration(opts options.Program) (time.Duration, error) {
	if opts.Duration == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(opts.Duration)
	if err != nil {
		return 0, fmt.Errorf("parsing duration: %w", err)
	}
	return d, nil
}
