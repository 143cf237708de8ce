package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

// loadROM reads cartridge bytes from path. With no path it opens a
// native file dialog instead.
func loadROM(path string) ([]byte, string, error) {
	if path == "" {
		var err error

		path, err = pickROM()
		if err != nil {
			return nil, "", err
		}
	}

	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	return rom, filepath.Base(path), nil
}

// pickROM asks the user for a ROM file.
func pickROM() (string, error) {
	return dialog.File().
		Title("Load ROM").
		Filter("CHIP-8 ROMs", "ch8", "c8", "rom").
		Filter("All files", "*").
		Load()
}

// reloadDialog swaps in a new cartridge without restarting the host.
// Cancelling the dialog keeps the current one running.
func reloadDialog() {
	path, err := pickROM()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			logger.Error("ROM dialog failed", log.Err(err))
		}
		return
	}

	rom, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Loading ROM failed", log.Err(err))
		return
	}

	ROM = rom
	Window.SetTitle("CHIP-8 - " + filepath.Base(path))

	logger.Info("Loaded ROM",
		log.String("file", filepath.Base(path)),
		log.Int("bytes", len(ROM)))

	boot()
}
