package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fosdem/glbootstrap/lib/config"
	"github.com/fosdem/glbootstrap/lib/geometry"
	"github.com/fosdem/glbootstrap/lib/log"
	"github.com/fosdem/glbootstrap/lib/metrics"
	"github.com/fosdem/glbootstrap/lib/rendering"
	"github.com/fosdem/glbootstrap/lib/rendering/glapi"
	"github.com/fosdem/glbootstrap/lib/rendering/shaders"
	"github.com/fosdem/glbootstrap/lib/stats"
	"github.com/fosdem/glbootstrap/lib/utils"
)

// Display is the window the bootstrap renders into. window.Window is the
// GLFW implementation.
type Display interface {
	ShouldClose() bool
	RequestClose()
	ProcessInput()
	SwapBuffers()
	PollEvents()
	FramebufferSize() (int, int)
	OnResize(fn func(width int, height int))
	Terminate()
}

// Bootstrap owns every GPU resource of the program and drives the frame
// loop. Everything except RequestClose, Snapshot and Info must run on the
// thread that owns the GL context.
type Bootstrap struct {
	api     glapi.API
	display Display
	log     *slog.Logger

	background utils.Colour
	info       Info

	Program  *shaders.Program
	Geometry *rendering.GeometryBuffers
	Viewport *rendering.Viewport
	Stats    *stats.Stats

	closeRequested atomic.Bool
	shutdown       sync.Once
	warnedUnusable bool
}

// Info is the static description of what is being drawn.
type Info struct {
	Title         string `json:"title"`
	GLVersion     string `json:"gl_version"`
	GLSLVersion   string `json:"glsl_version"`
	VertexCount   int32  `json:"vertex_count"`
	ProgramStatus string `json:"program_status"`
	ProgramLog    string `json:"program_log,omitempty"`
}

// New compiles the shaders, uploads the geometry and hooks the viewport to
// the display. Shader failures are reported on diag and do not make New
// fail; only unusable configuration does.
func New(cfg *config.Config, api glapi.API, display Display, diag io.Writer, logger *slog.Logger) (*Bootstrap, error) {
	b := &Bootstrap{
		api:        api,
		display:    display,
		log:        log.Module(logger, "bootstrap"),
		background: cfg.Background(),
		Stats:      stats.New(),
	}

	shaderer, err := shaders.NewShaderer()
	if err != nil {
		return nil, fmt.Errorf("could not get shaders: %w", err)
	}
	if cfg.Shaders.Vertex != "" {
		if err := shaderer.Override(shaders.VertexTemplate, string(cfg.Shaders.Vertex)); err != nil {
			return nil, err
		}
	}
	if cfg.Shaders.Fragment != "" {
		if err := shaderer.Override(shaders.FragmentTemplate, string(cfg.Shaders.Fragment)); err != nil {
			return nil, err
		}
	}

	compiler := shaders.NewCompiler(api, diag, log.Module(logger, "shaders"))
	b.Program, err = shaders.BuildProgram(compiler, shaderer, &shaders.ShaderData{
		GLSLVersion: cfg.GLSLVersion(),
		Layout:      geometry.Interleaved,
	})
	if err != nil {
		return nil, fmt.Errorf("could not build GL program: %w", err)
	}

	vertices, err := cfg.Vertices()
	if err != nil {
		b.Program.Release(api)
		return nil, fmt.Errorf("could not load geometry: %w", err)
	}
	b.Geometry, err = rendering.UploadGeometry(api, geometry.Interleaved, vertices)
	if err != nil {
		b.Program.Release(api)
		return nil, err
	}

	width, height := display.FramebufferSize()
	b.Viewport = rendering.NewViewport(api, log.Module(logger, "viewport"), width, height)
	display.OnResize(b.Viewport.Resize)

	b.applyRenderState(&cfg.Render)

	b.info = Info{
		Title:         cfg.Window.Title,
		GLVersion:     api.Version(),
		GLSLVersion:   cfg.GLSLVersion(),
		VertexCount:   b.Geometry.VertexCount,
		ProgramStatus: b.Program.Status.String(),
		ProgramLog:    b.Program.Log,
	}

	return b, nil
}

func (b *Bootstrap) applyRenderState(cfg *config.RenderCfg) {
	if cfg.Wireframe {
		b.api.PolygonMode(glapi.FrontAndBack, glapi.Line)
	}
	if cfg.LineWidth > 0 {
		b.api.LineWidth(cfg.LineWidth)
	}
	if cfg.PointSize > 0 {
		b.api.PointSize(cfg.PointSize)
	}
}

// RequestClose asks the loop to stop after the current frame. It is safe
// to call from any goroutine.
func (b *Bootstrap) RequestClose() {
	b.closeRequested.Store(true)
}

// Frame runs one iteration of the render loop.
func (b *Bootstrap) Frame() {
	b.display.ProcessInput()
	if b.closeRequested.Load() {
		b.display.RequestClose()
	}

	bg := b.background
	b.api.ClearColor(bg.R, bg.G, bg.B, bg.A)
	b.api.Clear(glapi.ColorBufferBit)

	if b.Program.Usable() {
		b.api.UseProgram(b.Program.Handle)
		b.Geometry.Draw(b.api)
	} else if !b.warnedUnusable {
		b.warnedUnusable = true
		b.log.Warn(fmt.Sprintf("not drawing: shader program is %s", b.Program.Status))
	}

	b.display.SwapBuffers()
	b.display.PollEvents()

	metrics.FramesPresented.Inc()
	width, height := b.Viewport.Size()
	b.Stats.Update(stats.Frame{
		VertexCount:    b.Geometry.VertexCount,
		ViewportWidth:  width,
		ViewportHeight: height,
		ProgramStatus:  b.Program.Status.String(),
	})
}

// Run draws frames until the display is flagged to close, then shuts down.
func (b *Bootstrap) Run() {
	b.log.Info("entering render loop")
	for !b.display.ShouldClose() {
		b.Frame()
	}
	b.Shutdown()
}

// Shutdown releases the vertex array, the buffer and the program, then
// tears the display down. Only the first call does anything.
func (b *Bootstrap) Shutdown() {
	b.shutdown.Do(func() {
		b.log.Info("shutting down")
		b.Geometry.Release(b.api)
		b.Program.Release(b.api)
		b.display.Terminate()
	})
}

func (b *Bootstrap) Snapshot() stats.Snapshot {
	return b.Stats.Snapshot()
}

func (b *Bootstrap) SetWsClients(n int) {
	b.Stats.SetWsClients(n)
}

func (b *Bootstrap) Info() Info {
	return b.info
}
