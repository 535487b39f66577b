package rendering

import (
	"fmt"

	"github.com/fosdem/glbootstrap/lib/geometry"
	"github.com/fosdem/glbootstrap/lib/metrics"
	"github.com/fosdem/glbootstrap/lib/rendering/glapi"
)

// GeometryBuffers is the one vertex buffer and the vertex array describing
// it. It is drawn as a flat triangle list; there is no index buffer.
type GeometryBuffers struct {
	VAO         uint32
	VBO         uint32
	VertexCount int32
	Layout      geometry.Layout

	released bool
}

func UploadGeometry(api glapi.API, layout geometry.Layout, vertices []geometry.Vertex) (*GeometryBuffers, error) {
	err := geometry.Validate(vertices)
	if err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}

	g := &GeometryBuffers{
		VertexCount: int32(len(vertices)),
		Layout:      layout,
	}

	g.VAO = api.GenVertexArray()
	g.VBO = api.GenBuffer()

	// the VAO must be bound first so it records the attribute setup
	api.BindVertexArray(g.VAO)
	api.BindBuffer(glapi.ArrayBuffer, g.VBO)
	api.BufferData(glapi.ArrayBuffer, geometry.Encode(vertices), glapi.StaticDraw)

	for _, a := range layout.Attributes() {
		api.VertexAttribPointer(a.Location, a.Size, glapi.Float, false, layout.Stride, uintptr(a.Offset))
		api.EnableVertexAttribArray(a.Location)
	}

	return g, nil
}

// Draw issues one non-indexed draw over every uploaded vertex.
func (g *GeometryBuffers) Draw(api glapi.API) {
	api.BindVertexArray(g.VAO)
	api.DrawArrays(glapi.Triangles, 0, g.VertexCount)
	metrics.VerticesDrawn.Add(float64(g.VertexCount))
}

func (g *GeometryBuffers) Release(api glapi.API) {
	if g == nil || g.released {
		return
	}
	api.DeleteVertexArray(g.VAO)
	api.DeleteBuffer(g.VBO)
	g.released = true
}
