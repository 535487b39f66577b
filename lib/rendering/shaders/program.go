package shaders

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fosdem/glbootstrap/lib/metrics"
	"github.com/fosdem/glbootstrap/lib/rendering/glapi"
)

// InfoLogSize bounds every compile and link log read back from the driver.
const InfoLogSize = 512

type Kind int

const (
	Vertex Kind = iota
	Fragment
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) glEnum() uint32 {
	if k == Fragment {
		return glapi.FragmentShader
	}
	return glapi.VertexShader
}

type Status int

const (
	Uncompiled Status = iota
	Compiled
	CompileFailed
	Linked
	LinkFailed
)

func (s Status) String() string {
	switch s {
	case Uncompiled:
		return "UNCOMPILED"
	case Compiled:
		return "COMPILED"
	case CompileFailed:
		return "COMPILE_FAILED"
	case Linked:
		return "LINKED"
	case LinkFailed:
		return "LINK_FAILED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type CompileError struct {
	Kind Kind
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader failed to compile: %s", e.Kind, e.Log)
}

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program failed to link: %s", e.Log)
}

// Stage is one compiled shader unit. Its handle is only valid until the
// program it was linked into has been built.
type Stage struct {
	Kind     Kind
	Handle   uint32
	Status   Status
	Log      string
	Released bool
}

func (s *Stage) Err() error {
	if s.Status == CompileFailed {
		return &CompileError{Kind: s.Kind, Log: s.Log}
	}
	return nil
}

type Program struct {
	Handle   uint32
	Status   Status
	Log      string
	Released bool
}

// Usable reports whether the program linked and still exists. Drawing with
// anything else produces garbage or nothing.
func (p *Program) Usable() bool {
	return p != nil && p.Status == Linked && !p.Released
}

func (p *Program) Err() error {
	if p.Status == LinkFailed {
		return &LinkError{Log: p.Log}
	}
	return nil
}

func (p *Program) Release(api glapi.API) {
	if p == nil || p.Released || p.Handle == 0 {
		return
	}
	api.DeleteProgram(p.Handle)
	p.Released = true
}

// Compiler builds stages and programs. Failures never abort: they are
// written to diag with the ERROR::SHADER tags and carried in the result.
type Compiler struct {
	api  glapi.API
	diag io.Writer
	log  *slog.Logger
}

func NewCompiler(api glapi.API, diag io.Writer, logger *slog.Logger) *Compiler {
	return &Compiler{api: api, diag: diag, log: logger}
}

func (c *Compiler) CompileStage(kind Kind, source string) *Stage {
	shader := c.api.CreateShader(kind.glEnum())
	c.api.ShaderSource(shader, source)
	c.api.CompileShader(shader)

	s := &Stage{Kind: kind, Handle: shader, Status: Compiled}
	if c.api.GetShaderiv(shader, glapi.CompileStatus) == glapi.False {
		s.Status = CompileFailed
		s.Log = c.api.GetShaderInfoLog(shader, InfoLogSize)
		c.report(fmt.Sprintf("ERROR::SHADER::%s::COMPILATION_FAILED", kind), s.Log)
		metrics.ShaderFailures.WithLabelValues(kind.String()).Inc()
		return s
	}

	c.log.Debug("shader compiled", slog.String("stage", kind.String()), slog.Int("handle", int(shader)))
	return s
}

// LinkProgram links vs and fs even if either failed to compile, then
// deletes both stages whatever the outcome.
func (c *Compiler) LinkProgram(vs *Stage, fs *Stage) *Program {
	program := c.api.CreateProgram()
	c.api.AttachShader(program, vs.Handle)
	c.api.AttachShader(program, fs.Handle)
	c.api.LinkProgram(program)

	p := &Program{Handle: program, Status: Linked}
	if c.api.GetProgramiv(program, glapi.LinkStatus) == glapi.False {
		p.Status = LinkFailed
		p.Log = c.api.GetProgramInfoLog(program, InfoLogSize)
		c.report("ERROR::SHADER::PROGRAM::LINKING_FAILED", p.Log)
		metrics.ShaderFailures.WithLabelValues("PROGRAM").Inc()
	} else {
		c.log.Debug("program linked", slog.Int("handle", int(program)))
	}

	// the driver keeps what the program needs; deletion only marks them
	for _, s := range []*Stage{vs, fs} {
		c.api.DeleteShader(s.Handle)
		s.Released = true
	}

	return p
}

func (c *Compiler) report(tag string, log string) {
	if len(log) > InfoLogSize {
		log = log[:InfoLogSize]
	}
	_, err := fmt.Fprintf(c.diag, "%s\n%s\n", tag, log)
	if err != nil {
		c.log.Error("could not write shader diagnostic", slog.String("tag", tag), slog.Any("err", err))
	}
}

// BuildProgram renders both templates, compiles them and links the result.
// Only template errors are returned; compile and link failures are in the
// returned program's status.
func BuildProgram(c *Compiler, s *Shaderer, data *ShaderData) (*Program, error) {
	vertexSource, err := s.GetShaderSource(VertexTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragmentSource, err := s.GetShaderSource(FragmentTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("could not get fragment shader: %w", err)
	}

	vs := c.CompileStage(Vertex, vertexSource)
	fs := c.CompileStage(Fragment, fragmentSource)
	return c.LinkProgram(vs, fs), nil
}
