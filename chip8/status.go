package chip8

import (
	"errors"
	"fmt"
)

// Status is the continuation state reported by a single emulation step.
type Status uint8

const (
	// Continue means the instruction completed and the next one can run.
	Continue Status = iota

	// AwaitingKey means the machine is blocked on a key-wait instruction.
	// The program counter has not advanced; the driver should keep
	// stepping until a key press has been latched.
	AwaitingKey

	// Halted means the machine hit a terminal fault. The cause is
	// available from HaltCause and the machine will never resume.
	Halted
)

// String returns a readable name for the status.
func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}

	return fmt.Sprintf("status(%d)", uint8(s))
}

// Halt causes. None of these are recoverable: a faulted machine is meant
// to be discarded and rebuilt by the host.
var (
	// ErrStackOverflow is reported when a CALL would nest deeper than
	// the 16 return addresses the stack can hold.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is reported when RET executes with no return
	// address on the stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// UnsupportedInstructionError reports an opcode the machine cannot decode.
type UnsupportedInstructionError struct {
	Opcode uint16
}

func (e UnsupportedInstructionError) Error() string {
	return fmt.Sprintf("unsupported instruction %04X", e.Opcode)
}

// AddressRangeError reports a computed address outside addressable memory,
// or a program counter that escaped the code region.
type AddressRangeError struct {
	Address uint16
}

func (e AddressRangeError) Error() string {
	return fmt.Sprintf("address %04X out of range", e.Address)
}
