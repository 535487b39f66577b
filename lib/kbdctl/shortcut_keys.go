package kbdctl

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupShortcutKeys makes Ctrl+Shift+Q close the window.
func SetupShortcutKeys(w *glfw.Window, logger *slog.Logger) {
	w.SetKeyCallback(keyCallback(logger))
}

// ProcessInput requests close while Escape is held. It is polled once per
// frame rather than hooked to the key callback.
func ProcessInput(w *glfw.Window) {
	if w.GetKey(glfw.KeyEscape) == glfw.Press {
		w.SetShouldClose(true)
	}
}

func Poll() {
	glfw.PollEvents()
}

func isQuitChord(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) bool {
	return action == glfw.Release &&
		key == glfw.KeyQ &&
		mods&glfw.ModControl != 0 &&
		mods&glfw.ModShift != 0
}

func keyCallback(logger *slog.Logger) func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if isQuitChord(key, action, mods) {
			logger.Info("told to quit, exiting")
			w.SetShouldClose(true)
		}
	}
}
