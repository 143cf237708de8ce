// A desktop host for the CHIP-8 emulation engine. It owns everything the
// engine treats as external: reading ROM files, translating keyboard
// events, rendering the framebuffer and pacing the step/timer loop.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/awons/chip8/chip8"
)

const (
	windowWidth  = 640
	windowHeight = 320

	// timerRate is the fixed 60 Hz cadence of the hardware timers,
	// independent of the instruction rate.
	timerRate = time.Second / 60

	// defaultClockRate approximates the instruction throughput of the
	// historical interpreters; the bracket keys adjust it at runtime.
	defaultClockRate = time.Second / 700
)

var (
	// VM is the current machine instance, replaced wholesale on reload.
	VM *chip8.Machine

	// Running is the run handle for the current instance. Reloading
	// issues a fresh handle and invalidates this one.
	Running *chip8.Run

	// ROM holds the pristine cartridge bytes a reboot restores from.
	ROM []byte

	// Window and Renderer are the SDL output surface.
	Window   *sdl.Window
	Renderer *sdl.Renderer

	// Paused stops instruction stepping (timers and video keep going).
	Paused bool

	// Clock paces instruction steps; ClockRate is its current period.
	Clock     *time.Ticker
	ClockRate = defaultClockRate

	quirks     chip8.Quirks
	logger     *log.Logger
	haltLogged bool
)

func init() {
	runtime.LockOSThread()
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	quiet := flag.Bool("quiet", false, "only log errors")
	pause := flag.Bool("pause", false, "start paused in the debugger")
	disassemble := flag.Bool("disassemble", false, "disassemble the ROM to stdout and exit")
	flag.BoolVar(&quirks.ShiftSourceY, "shift-vy", false, "8XY6/8XYE shift VY instead of VX in place")
	flag.BoolVar(&quirks.IndexIncrement, "index-inc", false, "FX55/FX65 increment I past the last register")
	flag.BoolVar(&quirks.JumpOffsetVX, "jump-vx", false, "BNNN jumps with VX instead of V0")
	flag.Parse()

	logger = newLogger(*debug, *quiet)

	rom, name, err := loadROM(flag.Arg(0))
	if err != nil {
		logger.Fatal("Loading ROM failed", log.Err(err))
	}
	ROM = rom

	logger.Info("Loaded ROM",
		log.String("file", name),
		log.Int("bytes", len(ROM)))

	if *disassemble {
		dumpDisassembly()
		return
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		logger.Fatal("SDL init failed", log.Err(err))
	}
	defer sdl.Quit()

	flags := sdl.WINDOW_OPENGL | sdl.WINDOWPOS_CENTERED
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(windowWidth, windowHeight, uint32(flags)); err != nil {
		logger.Fatal("Creating window failed", log.Err(err))
	}
	Window.SetTitle("CHIP-8 - " + name)

	InitScreen()

	Paused = *pause
	boot()

	Clock = time.NewTicker(ClockRate)
	timers := time.NewTicker(timerRate)
	video := time.NewTicker(time.Second / 60)
	defer Clock.Stop()
	defer timers.Stop()
	defer video.Stop()

	for ProcessEvents() {
		select {
		case <-video.C:
			Refresh()
		case <-timers.C:
			Running.TickTimers()
		case <-Clock.C:
			if !Paused {
				stepOnce()
			}
		}
	}
}

// boot constructs a fresh machine from the pristine ROM bytes and issues
// a new run handle, invalidating any loop still holding the old one.
func boot() {
	VM = chip8.New(quirks)

	if err := VM.LoadROM(ROM); err != nil {
		logger.Fatal("Loading ROM into machine failed", log.Err(err))
	}

	Running = VM.Start()
	haltLogged = false
}

// stepOnce executes a single instruction and reacts to its status. A
// halt is terminal for the instance: emulation pauses and the user can
// inspect state or reboot.
func stepOnce() {
	switch Running.Step() {
	case chip8.Continue:
	case chip8.AwaitingKey:
		// keep polling; a latched key press resumes the machine
	case chip8.Halted:
		if !haltLogged {
			logger.Error("Emulation halted", log.Err(VM.HaltCause()))
			DumpRegisters()
			haltLogged = true
		}
		Paused = true
	}
}

// SetSpeed clamps and applies a new instruction pacing rate.
func SetSpeed(d time.Duration) {
	if d < time.Second/2000 {
		d = time.Second / 2000
	}
	if d > time.Second/60 {
		d = time.Second / 60
	}

	ClockRate = d
	Clock.Reset(d)

	logger.Info("Clock rate changed",
		log.Int("hz", int(time.Second/ClockRate)))
}

// dumpDisassembly prints the loaded program as assembly to stdout.
func dumpDisassembly() {
	m := chip8.New(quirks)
	if err := m.LoadROM(ROM); err != nil {
		logger.Fatal("Loading ROM into machine failed", log.Err(err))
	}

	end := chip8.ProgramStart + len(ROM)
	for addr := chip8.ProgramStart; addr < end; addr += 2 {
		fmt.Fprintln(os.Stdout, m.Disassemble(uint16(addr)))
	}
}
