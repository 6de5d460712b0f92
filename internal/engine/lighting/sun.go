// Package lighting computes the day/night cycle and the camera spot light.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/timejump/pkg/math"
)

// DefaultDayLength is the length of one full day in seconds.
const DefaultDayLength = 180

// SunDistance is how far from the origin the sun disc is drawn.
const SunDistance = 500

var (
	daySunColor   = math.Vec3{X: 1.0, Y: 0.95, Z: 0.85}
	nightSunColor = math.Vec3{X: 0.05, Y: 0.08, Z: 0.2}
	sunDiscTint   = math.Vec3{X: 1.0, Y: 1.0, Z: 0.8}
	moonTint      = math.Vec3{X: 0.02, Y: 0.03, Z: 0.06}

	ambientDay   float32 = 0.25
	ambientNight float32 = 0.06
)

// Sun is the lighting state at one instant.
type Sun struct {
	Cycle     float32   // Position in the day, [0, 1)
	Direction math.Vec3 // Unit vector toward the sun
	Position  math.Vec3 // Sun disc centre
	DayFactor float32   // 0 at night, 1 at full day

	LightColor math.Vec3 // Directional light colour
	DiscColor  math.Vec3 // Emissive colour of the sun disc
	Ambient    math.Vec3
}

// Visible reports whether the sun disc should be drawn.
func (s Sun) Visible() bool {
	return s.DayFactor > 0
}

// DayCycle maps elapsed seconds to sun state.
type DayCycle struct {
	Length float32 // Seconds per day
}

// NewDayCycle returns a cycle of the given length. Non-positive lengths use
// DefaultDayLength.
func NewDayCycle(length float32) DayCycle {
	if length <= 0 {
		length = DefaultDayLength
	}
	return DayCycle{Length: length}
}

// At returns the sun state t seconds after start.
func (d DayCycle) At(t float32) Sun {
	cycle := math.Fract(t / d.Length)
	angle := float64(cycle * math.TwoPi)

	dir := math.Vec3{
		X: float32(gomath.Cos(angle)),
		Y: float32(gomath.Sin(angle)),
		Z: 0.25,
	}.Normalize()

	f := math.Clamp((dir.Y+0.1)/1.1, 0, 1)

	a := math.Lerp(ambientNight, ambientDay, f)
	ambient := math.Vec3{X: a, Y: a, Z: a}.Add(moonTint.Scale((1 - f) * 0.8))

	return Sun{
		Cycle:      cycle,
		Direction:  dir,
		Position:   dir.Scale(SunDistance),
		DayFactor:  f,
		LightColor: nightSunColor.Lerp(daySunColor, f),
		DiscColor:  sunDiscTint.Scale(f*2 + 0.5),
		Ambient:    ambient,
	}
}
