// Package glapi is the slice of OpenGL the renderer needs. The gogl
// subpackage forwards it to go-gl; glfake records it for tests that have
// no GPU.
package glapi

// Enum values from the OpenGL 3.3 core registry.
const (
	False = 0
	True  = 1

	VertexShader   = 0x8B31
	FragmentShader = 0x8B30
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	InfoLogLength  = 0x8B84

	ArrayBuffer = 0x8892
	StaticDraw  = 0x88E4
	Float       = 0x1406

	ColorBufferBit = 0x00004000
	Triangles      = 0x0004

	FrontAndBack = 0x0408
	Line         = 0x1B01
	Fill         = 0x1B02
)

type API interface {
	// Init resolves the driver entry points for the current context.
	Init() error
	Version() string

	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32) int32
	// GetShaderInfoLog returns at most bufSize-1 bytes of the log.
	GetShaderInfoLog(shader uint32, bufSize int32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program uint32, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	GetProgramInfoLog(program uint32, bufSize int32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenBuffer() uint32
	BindBuffer(target uint32, buffer uint32)
	BufferData(target uint32, data []byte, usage uint32)
	DeleteBuffer(buffer uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)
	DeleteVertexArray(vao uint32)

	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawArrays(mode uint32, first int32, count int32)
	Viewport(x, y, width, height int32)
	PolygonMode(face uint32, mode uint32)
	LineWidth(width float32)
	PointSize(size float32)
}
