// Package picking provides ray casting against the terrain.
package picking

import (
	gomath "math"

	"github.com/Faultbox/timejump/internal/engine/camera"
	"github.com/Faultbox/timejump/internal/engine/terrain"
	"github.com/Faultbox/timejump/pkg/math"
)

// DefaultStep is the march distance used by IntersectTerrain when none is given.
const DefaultStep = 0.5

// refineSteps is the number of bisection rounds after a crossing is found.
const refineSteps = 16

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// FromBounds converts terrain bounds to an AABB.
func FromBounds(b terrain.Bounds) AABB {
	return NewAABB(b.Min, b.Max)
}

// CenterRay returns the ray through the middle of the screen.
func CenterRay(cam *camera.Camera) Ray {
	return Ray{Origin: cam.Position, Direction: cam.Front.Normalize()}
}

// ScreenToRay converts pixel coordinates to a world-space ray from the
// camera. (0,0) is the top-left corner of the viewport.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, cam *camera.Camera) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	tanHalf := float32(gomath.Tan(float64(math.Radians(cam.FOV)) / 2))
	aspect := viewportW / viewportH

	front := cam.Front.Normalize()
	right := cam.RightVector()
	up := right.Cross(front).Normalize()

	dir := front.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf))
	return Ray{Origin: cam.Position, Direction: dir.Normalize()}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin, tmax, ok := r.slabs(box)
	if !ok {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// slabs returns the entry and exit distances of the ray through box.
func (r Ray) slabs(box AABB) (tmin, tmax float32, ok bool) {
	tmin = float32(-gomath.MaxFloat32)
	tmax = float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// HeightSource reports terrain height at a world XZ position.
type HeightSource interface {
	Query(x, z float32) (float32, bool)
}

// IntersectTerrain finds the first point where the ray meets the height
// surface inside box. It marches in steps of step world units (DefaultStep
// if step <= 0) and refines the crossing by bisection.
func (r Ray) IntersectTerrain(ground HeightSource, box AABB, step float32) (math.Vec3, bool) {
	// Pad Y so rays grazing a flat terrain still enter the box.
	box.Min.Y -= 1e-3
	box.Max.Y += 1e-3

	tmin, tmax, ok := r.slabs(box)
	if !ok {
		return math.Vec3{}, false
	}
	tmin = max(tmin, 0)
	if step <= 0 {
		step = DefaultStep
	}

	prev := tmin
	prevD, prevOK := r.clearance(ground, prev)
	if prevOK && prevD <= 0 {
		return r.At(prev), true
	}

	for prev < tmax {
		t := min(prev+step, tmax)
		if t <= prev {
			break
		}
		d, ok := r.clearance(ground, t)
		if ok && d <= 0 {
			if prevOK {
				t = r.refine(ground, prev, t)
			}
			return r.At(t), true
		}
		prev, prevOK = t, ok
	}
	return math.Vec3{}, false
}

// clearance returns how far the ray point at t is above the surface.
func (r Ray) clearance(ground HeightSource, t float32) (float32, bool) {
	p := r.At(t)
	h, ok := ground.Query(p.X, p.Z)
	if !ok {
		return 0, false
	}
	return p.Y - h, true
}

// refine narrows [lo, hi] where lo is above the surface and hi is on or
// below it, returning the below-side bound.
func (r Ray) refine(ground HeightSource, lo, hi float32) float32 {
	for range refineSteps {
		mid := (lo + hi) / 2
		if d, ok := r.clearance(ground, mid); ok && d <= 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}
