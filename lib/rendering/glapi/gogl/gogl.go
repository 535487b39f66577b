package gogl

import (
	"github.com/fosdem/glbootstrap/lib/rendering/glapi"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// API calls straight into go-gl. It must only be used from the thread that
// owns the current context.
type API struct{}

var _ glapi.API = (*API)(nil)

func New() *API {
	return &API{}
}

func (*API) Init() error {
	return gl.Init()
}

func (*API) Version() string {
	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	return vendor + " / " + renderer + " / " + version
}

func (*API) CreateShader(kind uint32) uint32 {
	return gl.CreateShader(kind)
}

func (*API) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
}

func (*API) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (*API) GetShaderiv(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (*API) GetShaderInfoLog(shader uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]uint8, bufSize)
	var n int32
	gl.GetShaderInfoLog(shader, bufSize, &n, &buf[0])
	return string(buf[:n])
}

func (*API) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (*API) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (*API) AttachShader(program uint32, shader uint32) {
	gl.AttachShader(program, shader)
}

func (*API) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (*API) GetProgramiv(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (*API) GetProgramInfoLog(program uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	buf := make([]uint8, bufSize)
	var n int32
	gl.GetProgramInfoLog(program, bufSize, &n, &buf[0])
	return string(buf[:n])
}

func (*API) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*API) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*API) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (*API) BindBuffer(target uint32, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (*API) BufferData(target uint32, data []byte, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data), gl.Ptr(&data[0]), usage)
}

func (*API) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (*API) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (*API) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (*API) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (*API) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (*API) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (*API) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*API) Clear(mask uint32) {
	gl.Clear(mask)
}

func (*API) DrawArrays(mode uint32, first int32, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (*API) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (*API) PolygonMode(face uint32, mode uint32) {
	gl.PolygonMode(face, mode)
}

func (*API) LineWidth(width float32) {
	gl.LineWidth(width)
}

func (*API) PointSize(size float32) {
	gl.PointSize(size)
}
