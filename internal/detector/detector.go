// Package detector handles dialect detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles dialect detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new dialect detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the dialect from the options or the input filename.
// An explicitly specified dialect takes precedence over the fallback
// dialect, which takes precedence over auto-detection from the input
// filename extension.
func (d *Detector) Detect(opts options.Program, fallback string) (vm.Dialect, error) {
	name := opts.System
	if name == "" {
		name = fallback
	}
	if name != "" {
		dialect, err := vm.ParseDialect(name)
		if err != nil {
			return vm.Classic, err
		}
		return dialect, nil
	}

	dialect := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected dialect",
		log.Stringer("dialect", dialect),
		log.String("file", opts.Input))
	return dialect, nil
}

// detectFromFile determines the dialect based on file extension.
func (d *Detector) detectFromFile(filename string) vm.Dialect {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sc8", ".schip":
		return vm.SuperChip
	case ".xo8", ".xochip":
		return vm.XoChip
	default:
		// .ch8, .rom and unknown extensions
		return vm.Classic
	}
}
