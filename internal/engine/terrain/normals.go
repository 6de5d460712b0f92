package terrain

import "github.com/Faultbox/timejump/pkg/math"

// degenerateEpsilon is the accumulated normal length below which a vertex is
// treated as having no contributing faces.
const degenerateEpsilon float32 = 1e-12

// ComputeNormals returns smooth per-vertex normals for an indexed triangle
// list. Each triangle (a,b,c) adds its unnormalized face normal
// cross(B-A, C-A) to all three corners, so larger faces weigh more; the sums
// are then normalized.
//
// Vertices referenced by no triangle, or whose contributions cancel out,
// resolve to +Y. Triangles with an out-of-range index and a trailing partial
// triangle are ignored.
func ComputeNormals(positions []math.Vec3, indices []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))
	n := uint32(len(positions))

	for t := 0; t+2 < len(indices); t += 3 {
		ia, ib, ic := indices[t], indices[t+1], indices[t+2]
		if ia >= n || ib >= n || ic >= n {
			continue
		}
		a, b, c := positions[ia], positions[ib], positions[ic]
		face := b.Sub(a).Cross(c.Sub(a))

		normals[ia] = normals[ia].Add(face)
		normals[ib] = normals[ib].Add(face)
		normals[ic] = normals[ic].Add(face)
	}

	for i := range normals {
		normals[i] = normals[i].NormalizeOr(math.Up, degenerateEpsilon)
	}
	return normals
}
