package geometry

import "github.com/go-gl/mathgl/mgl32"

func tri(colour mgl32.Vec3, a, b, c mgl32.Vec3) []Vertex {
	return []Vertex{{a, colour}, {b, colour}, {c, colour}}
}

// DefaultVertices is the built-in decorative shape: 9 flat-coloured triangles.
func DefaultVertices() []Vertex {
	var v []Vertex
	v = append(v, tri(mgl32.Vec3{0.878, 0.639, 0.827},
		mgl32.Vec3{0.25, -0.35, 0}, mgl32.Vec3{0.45, -0.35, 0}, mgl32.Vec3{0.25, -0.55, 0})...)
	v = append(v, tri(mgl32.Vec3{0.878, 0.639, 0.827},
		mgl32.Vec3{0.25, -0.35, 0}, mgl32.Vec3{0.25, -0.55, 0}, mgl32.Vec3{0.05, -0.55, 0})...)
	v = append(v, tri(mgl32.Vec3{0.529, 0.066, 0.815},
		mgl32.Vec3{0.05, -0.15, 0}, mgl32.Vec3{0.05, -0.55, 0}, mgl32.Vec3{-0.35, -0.55, 0})...)
	v = append(v, tri(mgl32.Vec3{0.956, 0.462, 0.788},
		mgl32.Vec3{-0.25, 0.10, 0}, mgl32.Vec3{0.05, -0.15, 0}, mgl32.Vec3{-0.25, -0.45, 0})...)
	v = append(v, tri(mgl32.Vec3{0.576, 0.494, 0.925},
		mgl32.Vec3{-0.25, 0.10, 0}, mgl32.Vec3{-0.25, -0.30, 0}, mgl32.Vec3{-0.45, -0.10, 0})...)
	v = append(v, tri(mgl32.Vec3{0.831, 0.768, 0.870},
		mgl32.Vec3{-0.25, 0.40, 0}, mgl32.Vec3{-0.10, 0.25, 0}, mgl32.Vec3{-0.25, 0.10, 0})...)
	v = append(v, tri(mgl32.Vec3{0.831, 0.768, 0.870},
		mgl32.Vec3{-0.25, 0.40, 0}, mgl32.Vec3{-0.25, 0.10, 0}, mgl32.Vec3{-0.40, 0.25, 0})...)
	v = append(v, tri(mgl32.Vec3{0.780, 0.262, 0.643},
		mgl32.Vec3{-0.10, 0.55, 0}, mgl32.Vec3{-0.10, 0.25, 0}, mgl32.Vec3{-0.25, 0.40, 0})...)
	v = append(v, tri(mgl32.Vec3{0.564, 0.329, 0.870},
		mgl32.Vec3{-0.40, 0.55, 0}, mgl32.Vec3{-0.25, 0.40, 0}, mgl32.Vec3{-0.40, 0.25, 0})...)
	return v
}
