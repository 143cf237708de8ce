// Package chip8 emulates the CHIP-8 virtual machine: 4K of memory,
// sixteen 8-bit registers, a 16-deep call stack, a 64x32 monochrome
// framebuffer, a hex keypad and two 60 Hz countdown timers.
//
// The package is the engine only. A host constructs a Machine, copies a
// ROM in with LoadROM, then drives the fetch/decode/execute loop one
// instruction at a time through a Run handle, pacing steps and timer
// ticks itself. The machine is a single sequentially-mutated value with
// no internal concurrency: all host access (keys, display snapshots,
// register reads) must happen between steps.
package chip8

import (
	"fmt"
	"math/rand"
)

const (
	// MemorySize is the full addressable space, 0x000-0xFFF.
	MemorySize = 0x1000

	// ProgramStart is where ROMs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxROMSize is the memory left for a program above ProgramStart.
	MaxROMSize = MemorySize - ProgramStart

	// lastCodeAddress is the highest address an instruction can be
	// fetched from; an opcode is two bytes.
	lastCodeAddress = MemorySize - 2

	// stackDepth is the maximum number of nested subroutine calls.
	stackDepth = 16

	// fontStart is where the built-in hex glyphs live; each glyph is
	// five bytes.
	fontStart     = 0x000
	fontGlyphSize = 5
)

// fontSet holds the sprites for the hex digits 0-F, five rows each.
var fontSet = [...]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Machine is one CHIP-8 instance. All state is owned by the machine and
// mutated only by Step (through a Run handle), LoadROM before execution
// starts, and the key methods the host calls between steps.
//
// A machine is never reset piecemeal: to reload a game the host discards
// the instance and constructs a fresh one.
type Machine struct {
	memory [MemorySize]byte
	v      [16]byte
	i      uint16
	pc     uint16
	stack  [stackDepth]uint16
	sp     uint8

	display Display
	keypad  Keypad
	timers  Timers

	quirks Quirks
	rand   func() byte

	// halt is the terminal fault, once one occurs.
	halt error

	// gen invalidates previously issued Run handles.
	gen uint32
}

// New constructs a machine with zeroed memory, the font sprites
// preloaded in the reserved low region and the program counter at 0x200.
func New(quirks Quirks) *Machine {
	m := &Machine{
		pc:     ProgramStart,
		quirks: quirks,
		rand:   randByte,
	}

	copy(m.memory[fontStart:], fontSet[:])

	return m
}

// randByte is the default random source for the RND instruction.
func randByte() byte {
	return byte(rand.Intn(256))
}

// SetRandSource replaces the random byte source used by the RND
// instruction. Tests use this to make 0xC opcodes deterministic.
func (m *Machine) SetRandSource(f func() byte) {
	m.rand = f
}

// LoadROM copies a program into memory at 0x200. The host must load the
// ROM before issuing the first step; loading after execution has begun
// is not supported, and a reload requires a fresh machine.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("ROM is %d bytes, exceeds the %d available", len(rom), MaxROMSize)
	}

	copy(m.memory[ProgramStart:], rom)

	return nil
}

// Start issues a Run handle bound to this machine. Any handle issued
// earlier becomes stale: its Step and TickTimers turn into no-ops, so a
// driver loop left suspended across a reload cannot keep mutating a
// machine it no longer owns.
func (m *Machine) Start() *Run {
	m.gen++

	return &Run{m: m, gen: m.gen}
}

// Run is a runnable handle over a machine, bound to the generation that
// issued it.
type Run struct {
	m   *Machine
	gen uint32
}

// Valid reports whether this handle still belongs to the machine's
// current generation.
func (r *Run) Valid() bool {
	return r.gen == r.m.gen
}

// Step executes one fetch/decode/execute cycle and reports how the
// driver should continue. A stale handle reports Halted without touching
// the machine.
func (r *Run) Step() Status {
	if !r.Valid() {
		return Halted
	}

	return r.m.step()
}

// TickTimers decrements the nonzero timers by one. The driver calls it
// at 60 Hz, decoupled from the instruction rate. Stale handles are
// ignored.
func (r *Run) TickTimers() {
	if !r.Valid() {
		return
	}

	r.m.timers.Tick()
}

// Machine returns the machine this handle was issued for.
func (r *Run) Machine() *Machine {
	return r.m
}

// step fetches, decodes and executes a single instruction.
func (m *Machine) step() Status {
	if m.halt != nil {
		return Halted
	}

	if m.pc < ProgramStart || m.pc > lastCodeAddress {
		return m.fault(AddressRangeError{Address: m.pc})
	}

	op := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += 2

	return m.exec(op)
}

// fault records a terminal error. Every later step reports Halted with
// the same cause.
func (m *Machine) fault(err error) Status {
	m.halt = err

	return Halted
}

// HaltCause returns the fault that stopped the machine, or nil while it
// is still runnable.
func (m *Machine) HaltCause() error {
	return m.halt
}

// SetKey records a host key-down or key-up event for keypad key 0x0-0xF.
// It must only be called between steps.
func (m *Machine) SetKey(code uint8, pressed bool) {
	m.keypad.set(code, pressed)
}

// KeyPressed reports whether a keypad key is currently down.
func (m *Machine) KeyPressed(code uint8) bool {
	return m.keypad.pressed(code)
}

// Display returns the framebuffer. The host treats it as read-only,
// rendering from Snapshot or Pixel between steps.
func (m *Machine) Display() *Display {
	return &m.display
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.timers.Delay()
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.timers.Sound()
}

// Register returns the value of V0-VF.
func (m *Machine) Register(x uint8) uint8 {
	return m.v[x&0x0F]
}

// Index returns the address register I.
func (m *Machine) Index() uint16 {
	return m.i
}

// ProgramCounter returns the current program counter.
func (m *Machine) ProgramCounter() uint16 {
	return m.pc
}

// StackDepth returns how many return addresses are on the call stack.
func (m *Machine) StackDepth() int {
	return int(m.sp)
}

// ReadMemory returns the byte at the given address, for hosts that show
// memory in a debugger view.
func (m *Machine) ReadMemory(addr uint16) byte {
	return m.memory[addr&(MemorySize-1)]
}
