package main

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/awons/chip8/chip8"
)

var (
	// Screen is the render target the machine framebuffer is drawn to
	// before being stretched onto the window.
	Screen *sdl.Texture
)

// InitScreen creates the render target for the machine framebuffer.
func InitScreen() {
	var err error

	Screen, err = Renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB888,
		sdl.TEXTUREACCESS_TARGET,
		chip8.DisplayWidth,
		chip8.DisplayHeight,
	)
	if err != nil {
		logger.Fatal("Creating screen texture failed", log.Err(err))
	}
}

// Refresh redraws the window from the current framebuffer.
func Refresh() {
	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	RefreshScreen()
	CopyScreen()

	Renderer.Present()
}

// RefreshScreen renders the framebuffer pixels onto the screen texture.
// The snapshot is taken between steps; the engine never runs while the
// host is in here.
func RefreshScreen() {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		logger.Fatal("Setting render target failed", log.Err(err))
	}

	// background
	Renderer.SetDrawColor(143, 145, 133, 255)
	Renderer.Clear()

	// pixel color
	Renderer.SetDrawColor(17, 29, 43, 255)

	for i, p := range VM.Display().Snapshot() {
		if p != 0 {
			Renderer.DrawPoint(int32(i%chip8.DisplayWidth), int32(i/chip8.DisplayWidth))
		}
	}

	Renderer.SetRenderTarget(nil)
}

// CopyScreen stretches the screen texture to fill the window.
func CopyScreen() {
	src := sdl.Rect{
		W: chip8.DisplayWidth,
		H: chip8.DisplayHeight,
	}
	dst := sdl.Rect{
		W: windowWidth,
		H: windowHeight,
	}

	Renderer.Copy(Screen, &src, &dst)
}
