package geometry

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	yaml "github.com/goccy/go-yaml"
)

type vertexEntry struct {
	Position []float32
	Colour   []float32
}

type vertexFile struct {
	Vertices []vertexEntry
}

// Load reads a YAML vertex list:
//
//	vertices:
//	  - position: [0.25, -0.35, 0.0]
//	    colour: [0.878, 0.639, 0.827]
func Load(filename string) ([]Vertex, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", filename, err)
	}
	return Parse(b)
}

func Parse(b []byte) ([]Vertex, error) {
	var f vertexFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	vertices := make([]Vertex, len(f.Vertices))
	for i, e := range f.Vertices {
		if len(e.Position) != 3 {
			return nil, fmt.Errorf("vertex %d: position needs 3 components, got %d", i, len(e.Position))
		}
		if len(e.Colour) != 3 {
			return nil, fmt.Errorf("vertex %d: colour needs 3 components, got %d", i, len(e.Colour))
		}
		vertices[i] = Vertex{
			Position: mgl32.Vec3{e.Position[0], e.Position[1], e.Position[2]},
			Colour:   mgl32.Vec3{e.Colour[0], e.Colour[1], e.Colour[2]},
		}
	}

	if err := Validate(vertices); err != nil {
		return nil, err
	}
	return vertices, nil
}
