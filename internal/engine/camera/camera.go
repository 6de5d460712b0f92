// Package camera provides the demo's fly camera: an automatic orbit around
// the origin and a free-fly mode driven by keyboard and mouse.
package camera

import (
	gomath "math"

	"github.com/Faultbox/timejump/pkg/math"
)

// Mode selects how the camera is driven.
type Mode int

const (
	// ModeAuto circles the origin on a fixed path.
	ModeAuto Mode = iota
	// ModeFree follows keyboard and mouse input.
	ModeFree
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeFree:
		return "free"
	default:
		return "unknown"
	}
}

// ParseMode converts a config string to a Mode. Unknown values map to auto.
func ParseMode(s string) Mode {
	if s == "free" {
		return ModeFree
	}
	return ModeAuto
}

// Direction is a keyboard movement direction.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Clip planes shared by both modes.
const (
	NearPlane = 0.1
	FarPlane  = 1000.0

	maxPitch = 89.0
)

// Orbit describes the automatic camera path.
type Orbit struct {
	Radius float32 // Distance from the origin on XZ
	Speed  float32 // Angular speed (radians per second)
	Height float32 // Base height; the path bobs ±10 around it
}

// DefaultOrbit returns the demo's orbit path.
func DefaultOrbit() Orbit {
	return Orbit{Radius: 120, Speed: 0.08, Height: 40}
}

// Camera is a perspective camera with yaw/pitch look.
type Camera struct {
	Mode Mode

	Position math.Vec3
	Front    math.Vec3
	WorldUp  math.Vec3

	// Euler angles in degrees, used by free mode.
	Yaw   float32
	Pitch float32

	FOV         float32 // Vertical field of view (degrees)
	Speed       float32 // Free-fly speed (units per second)
	Sensitivity float32 // Degrees per pixel of mouse motion

	Orbit Orbit
}

// New creates a camera with the demo defaults.
func New() *Camera {
	return &Camera{
		Mode:        ModeAuto,
		Position:    math.Vec3{X: 0, Y: 5, Z: 20},
		Front:       math.Vec3{X: 0, Y: 0, Z: -1},
		WorldUp:     math.Up,
		Yaw:         -90,
		Pitch:       -10,
		FOV:         45,
		Speed:       25,
		Sensitivity: 0.1,
		Orbit:       DefaultOrbit(),
	}
}

// ViewMatrix returns the view matrix looking along Front.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front), c.WorldUp)
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *Camera) Projection(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), aspect, NearPlane, FarPlane)
}

// RightVector returns the camera's right direction.
func (c *Camera) RightVector() math.Vec3 {
	return c.Front.Cross(c.WorldUp).NormalizeOr(math.Vec3{X: 1}, 1e-6)
}

// UpdateAuto places the camera on the orbit at time t (seconds) and aims it
// toward the origin. It does nothing in free mode.
func (c *Camera) UpdateAuto(t float32) {
	if c.Mode != ModeAuto {
		return
	}
	angle := float64(t * c.Orbit.Speed)

	c.Position = math.Vec3{
		X: c.Orbit.Radius * float32(gomath.Cos(angle)),
		Y: c.Orbit.Height + 10*float32(gomath.Sin(angle*0.5)),
		Z: c.Orbit.Radius * float32(gomath.Sin(angle)),
	}
	c.Front = math.Vec3{X: -c.Position.X, Y: -c.Position.Y * 0.2, Z: -c.Position.Z}.
		NormalizeOr(math.Vec3{Z: -1}, 1e-6)
}

// HandleMovement moves the camera in free mode. Forward/backward follow the
// look direction, left/right strafe, and up/down move along world Y.
func (c *Camera) HandleMovement(dir Direction, dt float32) {
	if c.Mode != ModeFree {
		return
	}
	velocity := c.Speed * dt

	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Scale(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Scale(velocity))
	case Left:
		c.Position = c.Position.Sub(c.RightVector().Scale(velocity))
	case Right:
		c.Position = c.Position.Add(c.RightVector().Scale(velocity))
	case Up:
		c.Position.Y += velocity
	case Down:
		c.Position.Y -= velocity
	}
}

// HandleMouse applies a mouse delta in pixels. dy is positive when the
// mouse moves up. Pitch is clamped to ±89°. Ignored in auto mode.
func (c *Camera) HandleMouse(dx, dy float32) {
	if c.Mode != ModeFree {
		return
	}
	c.Yaw += dx * c.Sensitivity
	c.Pitch = math.Clamp(c.Pitch+dy*c.Sensitivity, -maxPitch, maxPitch)
	c.updateFront()
}

// ToggleMode switches between auto and free mode. Entering free mode keeps
// the current view direction.
func (c *Camera) ToggleMode() Mode {
	if c.Mode == ModeAuto {
		c.Mode = ModeFree
		c.syncAngles()
	} else {
		c.Mode = ModeAuto
	}
	return c.Mode
}

// HeightSource reports terrain height at a world XZ position.
type HeightSource interface {
	Query(x, z float32) (float32, bool)
}

// FollowTerrain lifts the camera so it stays at least clearance above the
// ground. It reports whether the position changed. Outside the terrain the
// camera is left alone.
func (c *Camera) FollowTerrain(ground HeightSource, clearance float32) bool {
	h, ok := ground.Query(c.Position.X, c.Position.Z)
	if !ok {
		return false
	}
	if minY := h + clearance; c.Position.Y < minY {
		c.Position.Y = minY
		return true
	}
	return false
}

func (c *Camera) updateFront() {
	yaw := float64(math.Radians(c.Yaw))
	pitch := float64(math.Radians(c.Pitch))

	c.Front = math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
}

// syncAngles derives yaw/pitch from Front so free mode starts where the
// orbit left off.
func (c *Camera) syncAngles() {
	f := c.Front.NormalizeOr(math.Vec3{Z: -1}, 1e-6)
	c.Yaw = float32(gomath.Atan2(float64(f.Z), float64(f.X)) * 180 / gomath.Pi)
	pitch := float32(gomath.Asin(float64(math.Clamp(f.Y, -1, 1))) * 180 / gomath.Pi)
	c.Pitch = math.Clamp(pitch, -maxPitch, maxPitch)
	c.updateFront()
}
