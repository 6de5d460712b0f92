package lighting

import (
	gomath "math"

	"github.com/Faultbox/timejump/pkg/math"
)

// SpotLight is a cone light, laid out for shader upload.
type SpotLight struct {
	Position  math.Vec3
	Direction math.Vec3 // Unit vector

	InnerAngle float32 // Full-intensity half angle (degrees)
	OuterAngle float32 // Falloff edge half angle (degrees)

	Color     math.Vec3
	Intensity float32

	// Attenuation 1 / (Constant + Linear*d + Quadratic*d²)
	Constant  float32
	Linear    float32
	Quadratic float32

	Enabled bool
}

// headlightOffset lifts the spot light just above the camera.
var headlightOffset = math.Vec3{Y: 0.5}

// NewHeadlight returns the demo's camera-mounted spot light.
func NewHeadlight() SpotLight {
	return SpotLight{
		Position:   math.Vec3{Y: 40},
		Direction:  math.Vec3{Y: -1},
		InnerAngle: 12,
		OuterAngle: 18,
		Color:      math.Vec3{X: 1.0, Y: 0.95, Z: 0.8},
		Intensity:  6,
		Constant:   1,
		Linear:     0.09,
		Quadratic:  0.032,
		Enabled:    true,
	}
}

// Attach moves the light to the camera and aims it along the view direction.
func (s *SpotLight) Attach(camPos, camFront math.Vec3) {
	s.Position = camPos.Add(headlightOffset)
	s.Direction = camFront.NormalizeOr(math.Vec3{Z: -1}, 1e-6)
}

// CutOff returns cos(InnerAngle), the value shaders compare against.
func (s SpotLight) CutOff() float32 {
	return float32(gomath.Cos(float64(math.Radians(s.InnerAngle))))
}

// OuterCutOff returns cos(OuterAngle).
func (s SpotLight) OuterCutOff() float32 {
	return float32(gomath.Cos(float64(math.Radians(s.OuterAngle))))
}

// Attenuation returns the distance falloff factor.
func (s SpotLight) Attenuation(d float32) float32 {
	return 1 / (s.Constant + s.Linear*d + s.Quadratic*d*d)
}

// Illuminate returns the light's contribution factor at point p, combining
// the smooth cone edge with distance attenuation. Disabled lights return 0.
func (s SpotLight) Illuminate(p math.Vec3) float32 {
	if !s.Enabled {
		return 0
	}
	toPoint := p.Sub(s.Position)
	d := toPoint.Length()
	if d == 0 {
		return s.Intensity
	}
	theta := toPoint.Scale(1 / d).Dot(s.Direction)
	epsilon := s.CutOff() - s.OuterCutOff()
	cone := math.Clamp((theta-s.OuterCutOff())/epsilon, 0, 1)
	return cone * s.Intensity * s.Attenuation(d)
}
