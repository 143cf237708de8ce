package chip8

// KeyCount is the number of keys on the CHIP-8 hex keypad, 0x0-0xF.
const KeyCount = 16

// noKey marks an empty key latch. Latched key codes are stored offset
// by one so the zero value of a Keypad means "nothing pressed" while
// key 0 stays distinguishable from an empty latch.
const noKey = 0

// Keypad tracks the 16 key states plus a latch holding the most recent
// key press. The key state answers the EX9E/EXA1 skip instructions; the
// latch feeds the blocking FX0A key wait, which consumes it.
//
// The host updates key state between steps only; the machine itself
// never runs concurrently with its driver.
type Keypad struct {
	keys [KeyCount]bool

	// last is the latched key code plus one, or noKey.
	last uint8
}

// set records a key going down or up. A key press is latched until a key
// wait consumes it; releasing the latched key clears the latch.
func (k *Keypad) set(code uint8, pressed bool) {
	code &= 0x0F
	k.keys[code] = pressed

	if pressed {
		k.last = code + 1
	} else if k.last == code+1 {
		k.last = noKey
	}
}

// pressed reports whether the given key is currently down.
func (k *Keypad) pressed(code uint8) bool {
	return k.keys[code&0x0F]
}

// latched returns the most recent key press, if one is waiting.
func (k *Keypad) latched() (uint8, bool) {
	if k.last == noKey {
		return 0, false
	}

	return k.last - 1, true
}

// consume empties the key latch after a key wait has observed it.
func (k *Keypad) consume() {
	k.last = noKey
}
