// Package primitive generates simple CPU-side meshes: the UV sphere used for
// the sun disc and the environment-mapped ball, and the full-screen quad the
// post-process pass draws.
package primitive

import (
	"errors"
	gomath "math"

	"github.com/Faultbox/timejump/pkg/math"
)

// ErrInvalidSegments is returned for spheres with too few segments.
var ErrInvalidSegments = errors.New("sphere needs at least 2 latitude and 3 longitude segments")

// Mesh holds indexed triangle geometry with per-vertex normals.
type Mesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Interleave packs vertices as pos(3) normal(3).
func (m *Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Positions)*6)
	for i, p := range m.Positions {
		n := m.Normals[i]
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
	}
	return out
}

// UVSphere builds a latitude/longitude sphere centred on the origin.
// Rows run from the north pole (+Y) to the south pole; each row has
// longSegments+1 vertices so the seam has its own column.
func UVSphere(latSegments, longSegments int, radius float32) (*Mesh, error) {
	if latSegments < 2 || longSegments < 3 {
		return nil, ErrInvalidSegments
	}

	cols := longSegments + 1
	n := (latSegments + 1) * cols
	m := &Mesh{
		Positions: make([]math.Vec3, 0, n),
		Normals:   make([]math.Vec3, 0, n),
		Indices:   make([]uint32, 0, latSegments*longSegments*6),
	}

	for y := 0; y <= latSegments; y++ {
		theta := float64(y) / float64(latSegments) * gomath.Pi
		sinTheta, cosTheta := gomath.Sincos(theta)

		for x := 0; x <= longSegments; x++ {
			phi := float64(x) / float64(longSegments) * 2 * gomath.Pi
			sinPhi, cosPhi := gomath.Sincos(phi)

			n := math.Vec3{
				X: float32(sinTheta * cosPhi),
				Y: float32(cosTheta),
				Z: float32(sinTheta * sinPhi),
			}
			m.Positions = append(m.Positions, n.Scale(radius))
			m.Normals = append(m.Normals, n)
		}
	}

	for y := 0; y < latSegments; y++ {
		for x := 0; x < longSegments; x++ {
			a := uint32(y*cols + x)
			b := a + uint32(cols)
			m.Indices = append(m.Indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}
	return m, nil
}

// QuadVertex is a screen-space vertex: clip-space XY plus texture UV.
type QuadVertex struct {
	Pos math.Vec2
	UV  math.Vec2
}

// ScreenQuad returns the full-screen quad covering clip space [-1, 1]²,
// with UV (0,0) at the bottom-left.
func ScreenQuad() ([]QuadVertex, []uint32) {
	verts := []QuadVertex{
		{Pos: math.Vec2{X: -1, Y: 1}, UV: math.Vec2{X: 0, Y: 1}},
		{Pos: math.Vec2{X: -1, Y: -1}, UV: math.Vec2{X: 0, Y: 0}},
		{Pos: math.Vec2{X: 1, Y: -1}, UV: math.Vec2{X: 1, Y: 0}},
		{Pos: math.Vec2{X: 1, Y: 1}, UV: math.Vec2{X: 1, Y: 1}},
	}
	return verts, []uint32{0, 1, 2, 0, 2, 3}
}
