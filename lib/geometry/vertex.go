package geometry

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const f32 = 4

type Vertex struct {
	Position mgl32.Vec3
	Colour   mgl32.Vec3
}

// Attribute is one input slot of the vertex stage.
type Attribute struct {
	Name     string
	Location uint32
	Size     int32
	Offset   int
}

// Layout describes how vertices are interleaved in the buffer. The same
// value feeds the VAO setup and the shader templates, so the two cannot
// drift apart.
type Layout struct {
	Stride   int32
	Position Attribute
	Colour   Attribute
}

// Interleaved is position followed by colour, 6 floats per vertex.
var Interleaved = Layout{
	Stride:   6 * f32,
	Position: Attribute{Name: "aPos", Location: 0, Size: 3, Offset: 0},
	Colour:   Attribute{Name: "aColor", Location: 1, Size: 3, Offset: 3 * f32},
}

func (l Layout) Attributes() []Attribute {
	return []Attribute{l.Position, l.Colour}
}

// Pack flattens vertices into the float sequence the GPU reads.
func Pack(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*6)
	for _, v := range vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Colour[:]...)
	}
	return out
}

// Encode returns the packed vertices in native byte order.
func Encode(vertices []Vertex) []byte {
	floats := Pack(vertices)
	buf := make([]byte, len(floats)*f32)
	for i, f := range floats {
		binary.NativeEndian.PutUint32(buf[i*f32:], math.Float32bits(f))
	}
	return buf
}

// ReadAttribute decodes attribute a of vertex index from an encoded buffer.
func (l Layout) ReadAttribute(buf []byte, a Attribute, index int) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if a.Size > int32(len(v)) {
		return v, fmt.Errorf("attribute %s has %d components, at most %d supported", a.Name, a.Size, len(v))
	}
	start := index*int(l.Stride) + a.Offset
	end := start + int(a.Size)*f32
	if index < 0 || end > len(buf) {
		return v, fmt.Errorf("vertex %d attribute %s reads bytes [%d,%d) past buffer of %d", index, a.Name, start, end, len(buf))
	}
	for i := range int(a.Size) {
		v[i] = math.Float32frombits(binary.NativeEndian.Uint32(buf[start+i*f32:]))
	}
	return v, nil
}

// ByteRange is the half-open byte interval attribute a occupies for vertex index.
func (l Layout) ByteRange(a Attribute, index int) (start, end int) {
	start = index*int(l.Stride) + a.Offset
	return start, start + int(a.Size)*f32
}

// Validate checks that vertices form a flat triangle list with colours in [0,1].
func Validate(vertices []Vertex) error {
	if len(vertices) == 0 {
		return fmt.Errorf("no vertices")
	}
	if len(vertices)%3 != 0 {
		return fmt.Errorf("%d vertices do not form a triangle list", len(vertices))
	}
	for i, v := range vertices {
		for _, c := range v.Colour {
			if !(c >= 0 && c <= 1) {
				return fmt.Errorf("vertex %d colour %v out of range [0,1]", i, v.Colour)
			}
		}
	}
	return nil
}
