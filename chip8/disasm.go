package chip8

import (
	"fmt"
	"strings"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble renders the instruction at an address as one line of
// assembly, "ADDR - MNEMONIC OPERANDS". Mnemonics come from the
// retrogolib CHIP-8 instruction tables; words that match no instruction
// disassemble as data.
func (m *Machine) Disassemble(addr uint16) string {
	if addr >= MemorySize-1 {
		return fmt.Sprintf("%04X -", addr)
	}

	op := uint16(m.memory[addr])<<8 | uint16(m.memory[addr+1])

	// end of program memory
	if op == 0 {
		return fmt.Sprintf("%04X -", addr)
	}

	ins := lookupInstruction(op)
	if ins == nil {
		return fmt.Sprintf("%04X - .word #%04X", addr, op)
	}

	name := strings.ToUpper(ins.Name)
	if params := operands(op); params != "" {
		return fmt.Sprintf("%04X - %-6s %s", addr, name, params)
	}

	return fmt.Sprintf("%04X - %s", addr, name)
}

// lookupInstruction finds the instruction for an opcode word in the
// retrogolib tables, which index candidate opcodes by first nibble and
// match on mask/value pairs.
func lookupInstruction(op uint16) *cpu.Instruction {
	first := int(op >> 12)

	for _, candidate := range cpu.Opcodes[first] {
		if candidate.Info.Mask&op == candidate.Info.Value {
			return candidate.Instruction
		}
	}

	return nil
}

// operands formats the operand fields of an instruction word.
func operands(op uint16) string {
	nnn := op & 0x0FFF
	nn := byte(op)
	n := byte(op & 0x0F)
	x := op >> 8 & 0x0F
	y := op >> 4 & 0x0F

	switch op & 0xF000 {
	case 0x0000:
		return "" // CLS, RET
	case 0x1000, 0x2000:
		return fmt.Sprintf("#%04X", nnn)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, #%02X", x, nn)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8000:
		switch n {
		case 0x6, 0xE:
			return fmt.Sprintf("V%X", x)
		default:
			return fmt.Sprintf("V%X, V%X", x, y)
		}
	case 0xA000:
		return fmt.Sprintf("I, #%04X", nnn)
	case 0xB000:
		return fmt.Sprintf("V0, #%04X", nnn)
	case 0xD000:
		return fmt.Sprintf("V%X, V%X, %d", x, y, n)
	case 0xE000:
		return fmt.Sprintf("V%X", x)
	case 0xF000:
		switch nn {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x1E:
			return fmt.Sprintf("I, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}

	return ""
}
