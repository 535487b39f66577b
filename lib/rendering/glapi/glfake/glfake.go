// Package glfake is an in-memory glapi.API that records what the renderer
// asks of the driver. Shaders "compile" when they contain a main function,
// and programs "link" when every fragment input is written by the vertex
// stage, which is enough to drive the failure paths without a GPU.
package glfake

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fosdem/glbootstrap/lib/rendering/glapi"
)

type Shader struct {
	Kind     uint32
	Source   string
	Compiled bool
	Log      string
	Deleted  bool
}

type Program struct {
	Attached []uint32
	Linked   bool
	Log      string
	Deleted  bool
}

type Buffer struct {
	Data    []byte
	Usage   uint32
	Deleted bool
}

type Attrib struct {
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
	Buffer     uint32
	Enabled    bool
}

type VertexArray struct {
	Attribs map[uint32]*Attrib
	Deleted bool
}

type Draw struct {
	Mode    uint32
	First   int32
	Count   int32
	Program uint32
	VAO     uint32
}

type GL struct {
	// InitErr is returned by Init.
	InitErr error
	// CompileCheck decides whether a shader compiles. Nil uses the
	// built-in check.
	CompileCheck func(kind uint32, source string) (log string, ok bool)
	// LinkCheck decides whether a program links. Nil uses the built-in
	// interface check.
	LinkCheck func(shaders []*Shader) (log string, ok bool)

	Shaders      map[uint32]*Shader
	Programs     map[uint32]*Program
	Buffers      map[uint32]*Buffer
	VertexArrays map[uint32]*VertexArray

	BoundBuffer    uint32
	BoundVAO       uint32
	CurrentProgram uint32

	ClearColour  [4]float32
	Clears       int
	Draws        []Draw
	ViewportRect [4]int32
	PolygonModes map[uint32]uint32
	LineWidthSet float32
	PointSizeSet float32

	// Calls lists every API method invoked, in order.
	Calls []string

	nextID uint32
}

var _ glapi.API = (*GL)(nil)

func New() *GL {
	return &GL{
		Shaders:      make(map[uint32]*Shader),
		Programs:     make(map[uint32]*Program),
		Buffers:      make(map[uint32]*Buffer),
		VertexArrays: make(map[uint32]*VertexArray),
		PolygonModes: make(map[uint32]uint32),
		LineWidthSet: 1,
		PointSizeSet: 1,
	}
}

func (g *GL) id() uint32 {
	g.nextID++
	return g.nextID
}

func (g *GL) call(name string, args ...any) {
	if len(args) == 0 {
		g.Calls = append(g.Calls, name)
		return
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	g.Calls = append(g.Calls, name+"("+strings.Join(parts, ",")+")")
}

// CallCount counts calls whose recorded form starts with prefix.
func (g *GL) CallCount(prefix string) int {
	n := 0
	for _, c := range g.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (g *GL) Init() error {
	g.call("Init")
	return g.InitErr
}

func (g *GL) Version() string {
	return "glfake / 3.3"
}

func (g *GL) CreateShader(kind uint32) uint32 {
	id := g.id()
	g.Shaders[id] = &Shader{Kind: kind}
	g.call("CreateShader", kind)
	return id
}

func (g *GL) ShaderSource(shader uint32, source string) {
	g.call("ShaderSource", shader)
	if s, ok := g.Shaders[shader]; ok {
		s.Source = source
	}
}

func (g *GL) CompileShader(shader uint32) {
	g.call("CompileShader", shader)
	s, ok := g.Shaders[shader]
	if !ok {
		return
	}
	check := g.CompileCheck
	if check == nil {
		check = defaultCompileCheck
	}
	s.Log, s.Compiled = check(s.Kind, s.Source)
}

func (g *GL) GetShaderiv(shader uint32, pname uint32) int32 {
	s, ok := g.Shaders[shader]
	if !ok {
		return 0
	}
	switch pname {
	case glapi.CompileStatus:
		if s.Compiled {
			return glapi.True
		}
		return glapi.False
	case glapi.InfoLogLength:
		if s.Log == "" {
			return 0
		}
		return int32(len(s.Log) + 1)
	}
	return 0
}

func (g *GL) GetShaderInfoLog(shader uint32, bufSize int32) string {
	s, ok := g.Shaders[shader]
	if !ok {
		return ""
	}
	return clip(s.Log, bufSize)
}

func (g *GL) DeleteShader(shader uint32) {
	g.call("DeleteShader", shader)
	if s, ok := g.Shaders[shader]; ok {
		s.Deleted = true
	}
}

func (g *GL) CreateProgram() uint32 {
	id := g.id()
	g.Programs[id] = &Program{}
	g.call("CreateProgram")
	return id
}

func (g *GL) AttachShader(program uint32, shader uint32) {
	g.call("AttachShader", program, shader)
	if p, ok := g.Programs[program]; ok {
		p.Attached = append(p.Attached, shader)
	}
}

func (g *GL) LinkProgram(program uint32) {
	g.call("LinkProgram", program)
	p, ok := g.Programs[program]
	if !ok {
		return
	}
	var attached []*Shader
	for _, id := range p.Attached {
		if s, ok := g.Shaders[id]; ok {
			attached = append(attached, s)
		}
	}
	check := g.LinkCheck
	if check == nil {
		check = defaultLinkCheck
	}
	p.Log, p.Linked = check(attached)
}

func (g *GL) GetProgramiv(program uint32, pname uint32) int32 {
	p, ok := g.Programs[program]
	if !ok {
		return 0
	}
	switch pname {
	case glapi.LinkStatus:
		if p.Linked {
			return glapi.True
		}
		return glapi.False
	case glapi.InfoLogLength:
		if p.Log == "" {
			return 0
		}
		return int32(len(p.Log) + 1)
	}
	return 0
}

func (g *GL) GetProgramInfoLog(program uint32, bufSize int32) string {
	p, ok := g.Programs[program]
	if !ok {
		return ""
	}
	return clip(p.Log, bufSize)
}

func (g *GL) UseProgram(program uint32) {
	g.call("UseProgram", program)
	g.CurrentProgram = program
}

func (g *GL) DeleteProgram(program uint32) {
	g.call("DeleteProgram", program)
	if p, ok := g.Programs[program]; ok {
		p.Deleted = true
	}
}

func (g *GL) GenBuffer() uint32 {
	id := g.id()
	g.Buffers[id] = &Buffer{}
	g.call("GenBuffer")
	return id
}

func (g *GL) BindBuffer(target uint32, buffer uint32) {
	g.call("BindBuffer", target, buffer)
	if target == glapi.ArrayBuffer {
		g.BoundBuffer = buffer
	}
}

func (g *GL) BufferData(target uint32, data []byte, usage uint32) {
	g.call("BufferData", target, len(data), usage)
	if target != glapi.ArrayBuffer {
		return
	}
	if b, ok := g.Buffers[g.BoundBuffer]; ok {
		b.Data = append([]byte(nil), data...)
		b.Usage = usage
	}
}

func (g *GL) DeleteBuffer(buffer uint32) {
	g.call("DeleteBuffer", buffer)
	if b, ok := g.Buffers[buffer]; ok {
		b.Deleted = true
	}
}

func (g *GL) GenVertexArray() uint32 {
	id := g.id()
	g.VertexArrays[id] = &VertexArray{Attribs: make(map[uint32]*Attrib)}
	g.call("GenVertexArray")
	return id
}

func (g *GL) BindVertexArray(vao uint32) {
	g.call("BindVertexArray", vao)
	g.BoundVAO = vao
}

func (g *GL) attrib(index uint32) *Attrib {
	vao, ok := g.VertexArrays[g.BoundVAO]
	if !ok {
		return nil
	}
	a, ok := vao.Attribs[index]
	if !ok {
		a = &Attrib{}
		vao.Attribs[index] = a
	}
	return a
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	g.call("VertexAttribPointer", index, size, stride, offset)
	a := g.attrib(index)
	if a == nil {
		return
	}
	a.Size = size
	a.Type = xtype
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	a.Buffer = g.BoundBuffer
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.call("EnableVertexAttribArray", index)
	if a := g.attrib(index); a != nil {
		a.Enabled = true
	}
}

func (g *GL) DeleteVertexArray(vao uint32) {
	g.call("DeleteVertexArray", vao)
	if v, ok := g.VertexArrays[vao]; ok {
		v.Deleted = true
	}
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.ClearColour = [4]float32{r, gr, b, a}
}

func (g *GL) Clear(mask uint32) {
	g.call("Clear", mask)
	g.Clears++
}

func (g *GL) DrawArrays(mode uint32, first int32, count int32) {
	g.call("DrawArrays", mode, first, count)
	g.Draws = append(g.Draws, Draw{
		Mode:    mode,
		First:   first,
		Count:   count,
		Program: g.CurrentProgram,
		VAO:     g.BoundVAO,
	})
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.call("Viewport", x, y, width, height)
	g.ViewportRect = [4]int32{x, y, width, height}
}

func (g *GL) PolygonMode(face uint32, mode uint32) {
	g.call("PolygonMode", face, mode)
	g.PolygonModes[face] = mode
}

func (g *GL) LineWidth(width float32) {
	g.LineWidthSet = width
}

func (g *GL) PointSize(size float32) {
	g.PointSizeSet = size
}

// clip mimics the driver: the log is NUL-terminated inside bufSize bytes.
func clip(log string, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	if int32(len(log)) > bufSize-1 {
		return log[:bufSize-1]
	}
	return log
}

var mainPattern = regexp.MustCompile(`void\s+main\s*\(\s*\)`)

func defaultCompileCheck(kind uint32, source string) (string, bool) {
	if !strings.HasPrefix(strings.TrimSpace(source), "#version") {
		return "0:1(1): error: missing #version directive", false
	}
	if !mainPattern.MatchString(source) {
		return "0:1(1): error: no function with name 'main'", false
	}
	return "", true
}

var (
	outPattern = regexp.MustCompile(`(?m)^\s*out\s+(\w+)\s+(\w+)\s*;`)
	inPattern  = regexp.MustCompile(`(?m)^\s*in\s+(\w+)\s+(\w+)\s*;`)
)

func defaultLinkCheck(shaders []*Shader) (string, bool) {
	var vertex, fragment *Shader
	for _, s := range shaders {
		if !s.Compiled {
			return "error: linking with uncompiled/unspecialized shader", false
		}
		switch s.Kind {
		case glapi.VertexShader:
			vertex = s
		case glapi.FragmentShader:
			fragment = s
		}
	}
	if vertex == nil || fragment == nil {
		return "error: program needs a vertex and a fragment stage", false
	}

	outputs := make(map[string]string)
	for _, m := range outPattern.FindAllStringSubmatch(vertex.Source, -1) {
		outputs[m[2]] = m[1]
	}
	for _, m := range inPattern.FindAllStringSubmatch(fragment.Source, -1) {
		typ, ok := outputs[m[2]]
		if !ok {
			return fmt.Sprintf("error: fragment shader input `%s' has no matching output in the previous stage", m[2]), false
		}
		if typ != m[1] {
			return fmt.Sprintf("error: `%s' declared as type `%s' but outputted from previous stage as type `%s'", m[2], m[1], typ), false
		}
	}
	return "", true
}
