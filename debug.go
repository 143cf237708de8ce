package main

import (
	"fmt"
	"os"
)

// DumpRegisters prints the machine state and the instructions around
// the program counter to stderr. Used when pausing, single stepping
// and after a halt.
func DumpRegisters() {
	w := os.Stderr

	for i := uint8(0); i < 16; i += 4 {
		fmt.Fprintf(w, "V%X - #%02X   V%X - #%02X   V%X - #%02X   V%X - #%02X\n",
			i, VM.Register(i),
			i+1, VM.Register(i+1),
			i+2, VM.Register(i+2),
			i+3, VM.Register(i+3))
	}

	fmt.Fprintf(w, "PC - #%04X  I  - #%04X  SP - #%02X\n",
		VM.ProgramCounter(), VM.Index(), VM.StackDepth())
	fmt.Fprintf(w, "DT - #%02X    ST - #%02X\n",
		VM.DelayTimer(), VM.SoundTimer())

	DumpAssembly()
}

// DumpAssembly prints a short disassembly window around the program
// counter, marking the next instruction to execute.
func DumpAssembly() {
	w := os.Stderr

	pc := VM.ProgramCounter()

	start := int(pc) - 4
	if start < 0x200 {
		start = 0x200
	}

	for addr := start; addr <= int(pc)+8 && addr < 0xFFE; addr += 2 {
		cursor := "  "
		if addr == int(pc) {
			cursor = "> "
		}

		fmt.Fprintf(w, "%s%s\n", cursor, VM.Disassemble(uint16(addr)))
	}
}
