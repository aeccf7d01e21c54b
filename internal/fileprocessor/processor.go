// Package fileprocessor handles running ROM files with the selected frontend.
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrochip8/internal/platform/audio"
	"github.com/retroenv/retrochip8/internal/platform/headless"
	"github.com/retroenv/retrochip8/internal/platform/random"
	"github.com/retroenv/retrochip8/internal/platform/terminal"
	"github.com/retroenv/retrochip8/internal/platform/timing"
	"github.com/retroenv/retrochip8/internal/verification"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// HeadlessSeed seeds the random source of headless runs, which keeps
// their frames reproducible.
const HeadlessSeed = 0xC8

// ProcessFile runs the input file of the options with the selected frontend.
// Headless runs write the final frame to the writer and verify it if an
// expected frame file is set.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, writer io.Writer) error {
	if opts.Frontend == options.FrontendHeadless {
		return processHeadless(ctx, logger, opts, writer)
	}
	return processTerminal(ctx, logger, opts)
}

func processHeadless(ctx context.Context, logger *log.Logger, opts options.Program, writer io.Writer) error {
	if opts.Steps == 0 && opts.Duration == "" {
		return errors.New("headless runs require -steps or -duration")
	}

	video := headless.NewVideo()
	peripherals := vm.Peripherals{
		Keyboard: headless.NewKeyboard(),
		Random:   random.New(HeadlessSeed),
		Timer:    &timing.Instant{},
		Sound:    audio.Silent{},
		Video:    video,
	}

	p := pipeline.New(logger)
	if _, err := p.Execute(ctx, opts, peripherals); err != nil {
		return err
	}

	frame := video.Frame()
	if _, err := io.WriteString(writer, frame.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}

	if opts.Expect != "" {
		if err := verification.VerifyFile(logger, opts.Expect, frame); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}
	return nil
}

func processTerminal(ctx context.Context, logger *log.Logger, opts options.Program) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := terminal.New(logger, cancel)
	if err := term.Start(); err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}
	defer term.Stop()

	var sound vm.Sound = audio.Silent{}
	if !opts.Mute {
		beeper, err := audio.NewBeeper(audio.DefaultSampleRate)
		if err != nil {
			logger.Warn("Audio not available, sound disabled", log.Err(err))
		} else {
			defer func() { _ = beeper.Close() }()
			sound = beeper
		}
	}

	peripherals := vm.Peripherals{
		Keyboard: term,
		Random:   random.NewTimeSeeded(),
		Timer:    timing.NewRealtime(),
		Sound:    sound,
		Video:    term,
	}

	p := pipeline.New(logger)
	_, err := p.Execute(ctx, opts, peripherals)
	return err
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, name, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Debug("Build", log.String("date", date))
	}
}
