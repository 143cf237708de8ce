package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

// KeyMap lays the hex keypad over the left side of a modern keyboard:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   ->   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var KeyMap = map[sdl.Scancode]uint8{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

// ProcessEvents drains the SDL event queue, forwarding mapped keys to
// the machine keypad and handling host keys itself. It returns false
// when the user quits.
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			switch ev.Type {
			case sdl.KEYDOWN:
				if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
					VM.SetKey(key, true)
					break
				}

				if !hostKey(ev.Keysym.Scancode) {
					return false
				}
			case sdl.KEYUP:
				if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
					VM.SetKey(key, false)
				}
			}
		}
	}

	return true
}

// hostKey handles keys that drive the host instead of the machine. It
// returns false when the key quits the emulator.
func hostKey(code sdl.Scancode) bool {
	switch code {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		Paused = !Paused

		if Paused {
			DumpRegisters()
		}
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if Paused {
			stepOnce()
			DumpRegisters()
		}
	case sdl.SCANCODE_BACKSPACE:
		logger.Info("Rebooting")
		boot()
	case sdl.SCANCODE_F3:
		reloadDialog()
	case sdl.SCANCODE_LEFTBRACKET:
		SetSpeed(ClockRate * 2)
	case sdl.SCANCODE_RIGHTBRACKET:
		SetSpeed(ClockRate / 2)
	}

	return true
}
