// Package terrain builds renderable terrain from a grayscale heightmap and
// answers height queries used by scenery placement and camera following.
package terrain

import "github.com/Faultbox/timejump/pkg/math"

// UVTiling is how many times the albedo texture repeats across the terrain.
const UVTiling float32 = 10.0

// FloatsPerVertex is the stride of Interleave: pos(3) normal(3) uv(2).
const FloatsPerVertex = 8

// MeshGeometry holds the triangulated grid ready for GPU upload.
// Positions, Normals and UVs share one index space; Indices is a triangle
// list with counter-clockwise front faces.
type MeshGeometry struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	UVs       []math.Vec2
	Indices   []uint32
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// VertexCount returns the number of vertices.
func (m *MeshGeometry) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m *MeshGeometry) TriangleCount() int { return len(m.Indices) / 3 }

// Interleave packs vertices as pos(3) normal(3) uv(2) floats.
func (m *MeshGeometry) Interleave() []float32 {
	out := make([]float32, 0, len(m.Positions)*FloatsPerVertex)
	for i, p := range m.Positions {
		n := m.Normals[i]
		uv := m.UVs[i]
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z, uv.X, uv.Y)
	}
	return out
}

func (b *Bounds) extend(p math.Vec3) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Min.Z = min(b.Min.Z, p.Z)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	b.Max.Z = max(b.Max.Z, p.Z)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
