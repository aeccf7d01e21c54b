// Package vm implements the CHIP-8 execution engine.
//
// # Machine Overview
//
// The engine executes 2-byte instructions against a 4KB memory image, 16
// general purpose 8-bit registers V0-VF, a 16-bit index register I, a 16 entry
// call stack, two 60 Hz countdown timers and a 64x32 monochrome framebuffer.
//
// # Memory Layout
//
//	0x000-0x04F: built-in font sprites (see Font)
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program and data area (ProgramStart)
//
// # Dialects
//
// Three dialects are supported: the COSMAC VIP CHIP-8 (Classic) and the
// stricter SUPER-CHIP and XO-CHIP variants. They differ only in the quirks
// modeled by the Quirks type, every quirk can be configured independently of
// the dialect that selects its default.
//
// # Timing
//
// Every executed instruction advances an emulated clock by
// Settings.InstructionDuration. Whenever a full Settings.TimerPeriod has
// accumulated, the delay and sound timers are decremented and the Timer
// collaborator is notified, independently of the instruction rate.
//
// # Usage Example
//
//	engine, err := vm.New(logger, vm.DefaultSettings(vm.Classic), vm.Peripherals{
//		Video:    video,
//		Keyboard: keyboard,
//	})
//	if err != nil {
//		return err
//	}
//	engine.LoadFont()
//	if err := engine.LoadProgram(rom); err != nil {
//		return err
//	}
//	err = engine.RunDuration(ctx, time.Second)
package vm

// CHIP-8 machine dimensions.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where programs are loaded and where
	// execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// FontOffset is the memory address of the built-in font.
	FontOffset = 0x000

	// StackSize is the maximum call depth.
	StackSize = 16

	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16

	// Width and Height of the framebuffer in pixels.
	Width  = 64
	Height = 32
)

// flagRegister is the index of VF, used as carry, borrow and collision flag.
const flagRegister = 0xF
