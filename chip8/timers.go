package chip8

// Timers is the pair of 8-bit countdown counters: the delay timer read
// and written by FX07/FX15, and the sound timer written by FX18. Both
// count down toward zero at 60 Hz, paced by the driver through Tick
// independently of the instruction rate.
//
// The sound timer is a visible counter only; this machine produces no
// audio.
type Timers struct {
	delay uint8
	sound uint8
}

// Tick decrements each nonzero counter by one. The driver calls it at
// 60 Hz against wall-clock time.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}

	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the current delay timer value.
func (t *Timers) Delay() uint8 {
	return t.delay
}

// Sound returns the current sound timer value.
func (t *Timers) Sound() uint8 {
	return t.sound
}

func (t *Timers) setDelay(v uint8) {
	t.delay = v
}

func (t *Timers) setSound(v uint8) {
	t.sound = v
}
