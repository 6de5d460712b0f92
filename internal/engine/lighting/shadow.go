package lighting

import "github.com/Faultbox/timejump/pkg/math"

// SunMatrix computes the light-space view-projection for a shadow map cast
// by a directional light. dir points toward the light; lo and hi bound the
// scene that must fit in the map.
func SunMatrix(dir, lo, hi math.Vec3) math.Mat4 {
	center := lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Scale(0.5).Length()
	if radius == 0 {
		radius = 1
	}

	// Place the light far enough back to see the whole scene.
	lightDistance := radius * 2
	lightPos := center.Add(dir.Scale(lightDistance))

	up := math.Up
	if dir.Y > 0.99 || dir.Y < -0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(lightPos, center, up)

	padding := radius * 0.1
	halfSize := radius + padding
	far := lightDistance + radius + padding
	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, far)

	return proj.Mul(view)
}
