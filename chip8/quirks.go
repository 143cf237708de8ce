package chip8

// Quirks selects between historically ambiguous opcode behaviors. The
// original COSMAC VIP interpreter, SUPER-CHIP and the many emulators
// written since disagree on a handful of instructions; ROMs exist that
// depend on either convention, so the choice is made at construction
// time instead of being baked in.
//
// The zero value matches the behavior most ROMs written for modern
// interpreters expect: shifts operate on VX in place, I is left alone
// by the register dump/load instructions, and BNNN adds V0.
type Quirks struct {
	// ShiftSourceY makes 8XY6/8XYE shift VY into VX (COSMAC VIP
	// behavior) instead of shifting VX in place.
	ShiftSourceY bool

	// IndexIncrement makes FX55/FX65 leave I pointing one past the
	// last register transferred (COSMAC VIP behavior) instead of
	// leaving it untouched.
	IndexIncrement bool

	// JumpOffsetVX reinterprets BNNN as BXNN (SUPER-CHIP behavior):
	// jump to XNN plus VX rather than NNN plus V0.
	JumpOffsetVX bool
}
