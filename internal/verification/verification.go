// Package verification verifies that a rendered frame matches an expected
// ASCII frame.
package verification

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

const maxLoggedMismatches = 10

// VerifyFile verifies the frame against the ASCII frame stored in the file.
func VerifyFile(logger *log.Logger, filename string, frame vm.Frame) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("opening expected frame file %s: %w", filename, err)
	}
	defer func() { _ = file.Close() }()

	expected, err := ParseFrame(file)
	if err != nil {
		return fmt.Errorf("parsing expected frame file %s: %w", filename, err)
	}
	return VerifyFrame(logger, expected, frame)
}

// ParseFrame parses an ASCII frame as written by vm.Frame.String. Set
// pixels are '#', cleared pixels '.' or a space. Trailing empty lines are
// ignored.
func ParseFrame(reader io.Reader) (vm.Frame, error) {
	var frame vm.Frame

	scanner := bufio.NewScanner(reader)
	row := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if row >= vm.Height {
			return frame, fmt.Errorf("frame has more than %d rows", vm.Height)
		}
		if len(line) != vm.Width {
			return frame, fmt.Errorf("row %d has %d columns instead of %d", row, len(line), vm.Width)
		}

		for col := range vm.Width {
			switch line[col] {
			case '#':
				frame[row][col] = true
			case '.', ' ':
			default:
				return frame, fmt.Errorf("invalid pixel '%c' at row %d column %d", line[col], row, col)
			}
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return frame, fmt.Errorf("reading frame: %w", err)
	}

	if row != vm.Height {
		return frame, fmt.Errorf("frame has %d rows instead of %d", row, vm.Height)
	}
	return frame, nil
}

// VerifyFrame compares the frames pixel by pixel and logs the first
// mismatches.
func VerifyFrame(logger *log.Logger, expected, got vm.Frame) error {
	var diffs uint64
	for row := range vm.Height {
		for col := range vm.Width {
			if expected[row][col] == got[row][col] {
				continue
			}

			diffs++
			if diffs <= maxLoggedMismatches {
				logger.Error("Pixel mismatch",
					log.Int("row", row),
					log.Int("column", col),
					log.String("expected", pixelName(expected[row][col])),
					log.String("got", pixelName(got[row][col])))
			}
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d pixel mismatches", diffs)
}

func pixelName(set bool) string {
	if set {
		return "set"
	}
	return "clear"
}
