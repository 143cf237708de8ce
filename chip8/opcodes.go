package chip8

// exec decodes one instruction word and runs its handler. The first
// nibble selects the major class; the remaining nibbles parametrize
// registers (x, y), immediates (n, nn) or a 12-bit address (nnn).
//
// The program counter has already been advanced past the instruction, so
// handlers that transfer control simply overwrite it and skip handlers
// advance it once more.
func (m *Machine) exec(op uint16) Status {
	nnn := op & 0x0FFF
	nn := byte(op)
	n := byte(op & 0x0F)
	x := byte(op >> 8 & 0x0F)
	y := byte(op >> 4 & 0x0F)

	switch op & 0xF000 {
	case 0x0000:
		switch op {
		case 0x00E0:
			m.cls()
		case 0x00EE:
			return m.ret()
		default:
			// 0NNN machine-code calls are not emulated.
			return m.fault(UnsupportedInstructionError{Opcode: op})
		}
	case 0x1000:
		m.jump(nnn)
	case 0x2000:
		return m.call(nnn)
	case 0x3000:
		m.skipIf(x, nn)
	case 0x4000:
		m.skipIfNot(x, nn)
	case 0x5000:
		if n != 0 {
			return m.fault(UnsupportedInstructionError{Opcode: op})
		}
		m.skipIfXY(x, y)
	case 0x6000:
		m.loadX(x, nn)
	case 0x7000:
		m.addX(x, nn)
	case 0x8000:
		switch n {
		case 0x0:
			m.loadXY(x, y)
		case 0x1:
			m.or(x, y)
		case 0x2:
			m.and(x, y)
		case 0x3:
			m.xor(x, y)
		case 0x4:
			m.addXY(x, y)
		case 0x5:
			m.subXY(x, y)
		case 0x6:
			m.shr(x, y)
		case 0x7:
			m.subYX(x, y)
		case 0xE:
			m.shl(x, y)
		default:
			return m.fault(UnsupportedInstructionError{Opcode: op})
		}
	case 0x9000:
		if n != 0 {
			return m.fault(UnsupportedInstructionError{Opcode: op})
		}
		m.skipIfNotXY(x, y)
	case 0xA000:
		m.loadI(nnn)
	case 0xB000:
		m.jumpV0(nnn, x)
	case 0xC000:
		m.rnd(x, nn)
	case 0xD000:
		return m.drw(x, y, n)
	case 0xE000:
		switch nn {
		case 0x9E:
			m.skipIfPressed(x)
		case 0xA1:
			m.skipIfNotPressed(x)
		default:
			return m.fault(UnsupportedInstructionError{Opcode: op})
		}
	case 0xF000:
		switch nn {
		case 0x07:
			m.loadXDT(x)
		case 0x0A:
			return m.loadXK(x)
		case 0x15:
			m.loadDTX(x)
		case 0x18:
			m.loadSTX(x)
		case 0x1E:
			m.addIX(x)
		case 0x29:
			m.loadF(x)
		case 0x33:
			return m.loadB(x)
		case 0x55:
			return m.saveRegs(x)
		case 0x65:
			return m.loadRegs(x)
		default:
			return m.fault(UnsupportedInstructionError{Opcode: op})
		}
	}

	return Continue
}

// span validates a memory range before an instruction indexes it,
// returning the first out-of-range address on failure.
func (m *Machine) span(start, length uint16) (uint16, bool) {
	if end := uint32(start) + uint32(length); end > MemorySize {
		if start >= MemorySize {
			return start, false
		}

		return MemorySize, false
	}

	return 0, true
}

// cls clears the display (00E0).
func (m *Machine) cls() {
	m.display.clear()
}

// ret returns from a subroutine by popping the stack into PC (00EE).
func (m *Machine) ret() Status {
	if m.sp == 0 {
		return m.fault(ErrStackUnderflow)
	}

	m.sp--
	m.pc = m.stack[m.sp]

	return Continue
}

// jump transfers control to an address (1NNN).
func (m *Machine) jump(nnn uint16) {
	m.pc = nnn
}

// call pushes the return address and jumps to a subroutine (2NNN).
func (m *Machine) call(nnn uint16) Status {
	if int(m.sp) >= len(m.stack) {
		return m.fault(ErrStackOverflow)
	}

	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = nnn

	return Continue
}

// skipIf skips the next instruction if VX == NN (3XNN).
func (m *Machine) skipIf(x, nn byte) {
	if m.v[x] == nn {
		m.pc += 2
	}
}

// skipIfNot skips the next instruction if VX != NN (4XNN).
func (m *Machine) skipIfNot(x, nn byte) {
	if m.v[x] != nn {
		m.pc += 2
	}
}

// skipIfXY skips the next instruction if VX == VY (5XY0).
func (m *Machine) skipIfXY(x, y byte) {
	if m.v[x] == m.v[y] {
		m.pc += 2
	}
}

// skipIfNotXY skips the next instruction if VX != VY (9XY0).
func (m *Machine) skipIfNotXY(x, y byte) {
	if m.v[x] != m.v[y] {
		m.pc += 2
	}
}

// loadX loads an immediate into VX (6XNN).
func (m *Machine) loadX(x, nn byte) {
	m.v[x] = nn
}

// addX adds an immediate to VX without touching the carry flag (7XNN).
func (m *Machine) addX(x, nn byte) {
	m.v[x] += nn
}

// loadXY copies VY into VX (8XY0).
func (m *Machine) loadXY(x, y byte) {
	m.v[x] = m.v[y]
}

// or sets VX to VX | VY (8XY1).
func (m *Machine) or(x, y byte) {
	m.v[x] |= m.v[y]
}

// and sets VX to VX & VY (8XY2).
func (m *Machine) and(x, y byte) {
	m.v[x] &= m.v[y]
}

// xor sets VX to VX ^ VY (8XY3).
func (m *Machine) xor(x, y byte) {
	m.v[x] ^= m.v[y]
}

// addXY adds VY to VX, VF = 1 on carry out of 8 bits (8XY4). Both
// operands are read up front so the flag write cannot corrupt them.
func (m *Machine) addXY(x, y byte) {
	vx, vy := m.v[x], m.v[y]
	sum := uint16(vx) + uint16(vy)

	m.v[x] = byte(sum)

	if sum > 0xFF {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}
}

// subXY subtracts VY from VX, VF = 1 if no borrow (8XY5).
func (m *Machine) subXY(x, y byte) {
	vx, vy := m.v[x], m.v[y]

	m.v[x] = vx - vy

	if vx >= vy {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}
}

// subYX sets VX to VY - VX, VF = 1 if no borrow (8XY7).
func (m *Machine) subYX(x, y byte) {
	vx, vy := m.v[x], m.v[y]

	m.v[x] = vy - vx

	if vy >= vx {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}
}

// shr shifts right one bit, VF = the bit shifted out (8XY6). The source
// is VX in place, or VY under the ShiftSourceY quirk.
func (m *Machine) shr(x, y byte) {
	src := m.v[x]
	if m.quirks.ShiftSourceY {
		src = m.v[y]
	}

	m.v[x] = src >> 1
	m.v[0xF] = src & 0x01
}

// shl shifts left one bit, VF = the bit shifted out (8XYE). The source
// is VX in place, or VY under the ShiftSourceY quirk.
func (m *Machine) shl(x, y byte) {
	src := m.v[x]
	if m.quirks.ShiftSourceY {
		src = m.v[y]
	}

	m.v[x] = src << 1
	m.v[0xF] = src >> 7
}

// loadI loads a 12-bit address into I (ANNN).
func (m *Machine) loadI(nnn uint16) {
	m.i = nnn
}

// jumpV0 jumps to NNN + V0 (BNNN), or XNN + VX under the JumpOffsetVX
// quirk.
func (m *Machine) jumpV0(nnn uint16, x byte) {
	if m.quirks.JumpOffsetVX {
		m.pc = nnn + uint16(m.v[x])
	} else {
		m.pc = nnn + uint16(m.v[0])
	}
}

// rnd loads a random byte masked by NN into VX (CXNN).
func (m *Machine) rnd(x, nn byte) {
	m.v[x] = m.rand() & nn
}

// drw XORs an 8xN sprite stored at I onto the display at (VX, VY),
// setting VF to the collision flag (DXYN).
func (m *Machine) drw(x, y, n byte) Status {
	if addr, ok := m.span(m.i, uint16(n)); !ok {
		return m.fault(AddressRangeError{Address: addr})
	}

	sprite := m.memory[m.i : m.i+uint16(n)]

	if m.display.blit(sprite, m.v[x], m.v[y]) {
		m.v[0xF] = 1
	} else {
		m.v[0xF] = 0
	}

	return Continue
}

// skipIfPressed skips the next instruction if key VX is down (EX9E).
func (m *Machine) skipIfPressed(x byte) {
	if m.keypad.pressed(m.v[x]) {
		m.pc += 2
	}
}

// skipIfNotPressed skips the next instruction if key VX is up (EXA1).
func (m *Machine) skipIfNotPressed(x byte) {
	if !m.keypad.pressed(m.v[x]) {
		m.pc += 2
	}
}

// loadXDT loads the delay timer into VX (FX07).
func (m *Machine) loadXDT(x byte) {
	m.v[x] = m.timers.Delay()
}

// loadXK blocks until a key press is latched, then stores the key in VX
// (FX0A). While no press is latched the program counter is rewound so
// the instruction replays, and the step reports AwaitingKey for the
// driver to poll on. The latch is consumed once observed.
func (m *Machine) loadXK(x byte) Status {
	key, ok := m.keypad.latched()
	if !ok {
		m.pc -= 2
		return AwaitingKey
	}

	m.v[x] = key
	m.keypad.consume()

	return Continue
}

// loadDTX loads VX into the delay timer (FX15).
func (m *Machine) loadDTX(x byte) {
	m.timers.setDelay(m.v[x])
}

// loadSTX loads VX into the sound timer (FX18).
func (m *Machine) loadSTX(x byte) {
	m.timers.setSound(m.v[x])
}

// addIX adds VX to I (FX1E). A resulting I past the end of memory only
// faults once an instruction indexes memory through it.
func (m *Machine) addIX(x byte) {
	m.i += uint16(m.v[x])
}

// loadF points I at the built-in glyph for the low nibble of VX (FX29).
func (m *Machine) loadF(x byte) {
	digit := uint16(m.v[x] & 0x0F)
	m.i = fontStart + digit*fontGlyphSize
}

// loadB stores the BCD digits of VX at I, I+1 and I+2 (FX33), using the
// double-dabble conversion: shift the value in bit by bit, adding 3 to
// any BCD nibble at 5 or more before each shift so decimal carries
// propagate.
func (m *Machine) loadB(x byte) Status {
	if addr, ok := m.span(m.i, 3); !ok {
		return m.fault(AddressRangeError{Address: addr})
	}

	n := uint16(m.v[x])
	b := uint16(0)

	for i := 0; i < 8; i++ {
		if (b>>0)&0xF >= 5 {
			b += 3
		}
		if (b>>4)&0xF >= 5 {
			b += 3 << 4
		}
		if (b>>8)&0xF >= 5 {
			b += 3 << 8
		}

		b = b<<1 | (n >> (7 - i) & 1)
	}

	m.memory[m.i+0] = byte(b>>8) & 0xF
	m.memory[m.i+1] = byte(b>>4) & 0xF
	m.memory[m.i+2] = byte(b>>0) & 0xF

	return Continue
}

// saveRegs dumps V0..VX into memory at I (FX55). Under the
// IndexIncrement quirk I is left pointing past the last byte written.
func (m *Machine) saveRegs(x byte) Status {
	count := uint16(x) + 1

	if addr, ok := m.span(m.i, count); !ok {
		return m.fault(AddressRangeError{Address: addr})
	}

	copy(m.memory[m.i:], m.v[:count])

	if m.quirks.IndexIncrement {
		m.i += count
	}

	return Continue
}

// loadRegs loads V0..VX from memory at I (FX65). Under the
// IndexIncrement quirk I is left pointing past the last byte read.
func (m *Machine) loadRegs(x byte) Status {
	count := uint16(x) + 1

	if addr, ok := m.span(m.i, count); !ok {
		return m.fault(AddressRangeError{Address: addr})
	}

	copy(m.v[:count], m.memory[m.i:m.i+count])

	if m.quirks.IndexIncrement {
		m.i += count
	}

	return Continue
}
