package window

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/fosdem/glbootstrap/lib/config"
	"github.com/fosdem/glbootstrap/lib/kbdctl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var ErrCreateWindow = errors.New("could not create GLFW window")

// Window owns the GLFW window and its context. All methods must be called
// from the thread that created it.
type Window struct {
	Window *glfw.Window
	log    *slog.Logger
}

func New(cfg *config.WindowCfg, logger *slog.Logger) (*Window, error) {
	logger.Debug("Initializing window")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateWindow, err)
	}

	glfw.WindowHint(glfw.Resizable, boolHint(!cfg.FixedSize))
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", ErrCreateWindow, err)
	}

	window.MakeContextCurrent()
	kbdctl.SetupShortcutKeys(window, logger)

	return &Window{Window: window, log: logger}, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// OnResize registers fn for framebuffer size changes. Sizes are in pixels,
// which on high-DPI displays is larger than the window size.
func (w *Window) OnResize(fn func(width int, height int)) {
	w.Window.SetFramebufferSizeCallback(func(_ *glfw.Window, width int, height int) {
		fn(width, height)
	})
}

func (w *Window) FramebufferSize() (int, int) {
	return w.Window.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.Window.ShouldClose()
}

func (w *Window) RequestClose() {
	w.Window.SetShouldClose(true)
}

func (w *Window) ProcessInput() {
	kbdctl.ProcessInput(w.Window)
}

func (w *Window) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *Window) PollEvents() {
	kbdctl.Poll()
}

// Terminate destroys the window and shuts GLFW down.
func (w *Window) Terminate() {
	w.log.Debug("Terminating window")
	w.Window.Destroy()
	glfw.Terminate()
}
