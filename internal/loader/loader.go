// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

// ErrEmptyROM is returned for ROM files without content.
var ErrEmptyROM = errors.New("ROM is empty")

// SizeError is returned for ROMs that do not fit into the program memory.
type SizeError struct {
	Size  int
	Limit int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("ROM size %d exceeds the limit of %d bytes", e.Size, e.Limit)
}

// Loader handles loading ROM files from disk.
type Loader struct {
	limit int
}

// New creates a new ROM loader for programs that fit into the program
// memory of the interpreter.
func New() *Loader {
	return &Loader{
		limit: vm.MaxProgramSize,
	}
}

// Load reads the ROM file with the given name.
func (l *Loader) Load(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", filename, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", filename, err)
	}
	return data, nil
}

// Read reads a ROM from the reader. It reads at most one byte more than
// the limit to detect oversized ROMs.
func (l *Loader) Read(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, int64(l.limit)+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > l.limit:
		size := len(data)
		if n, err := io.Copy(io.Discard, reader); err == nil {
			size += int(n)
		}
		return nil, &SizeError{Size: size, Limit: l.limit}
	}
	return data, nil
}
