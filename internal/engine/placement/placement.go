// Package placement scatters scenery instances (trees) across a terrain
// using its height query.
package placement

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/timejump/internal/logger"
	"github.com/Faultbox/timejump/pkg/math"
)

// HeightSource answers world-space height queries. ok is false outside the
// terrain footprint. *terrain.HeightField satisfies it.
type HeightSource interface {
	Query(worldX, worldZ float32) (height float32, ok bool)
}

// Range is a closed-open interval [Min, Max).
type Range struct {
	Min, Max float32
}

// Sample draws uniformly from the range.
func (r Range) Sample(rng *rand.Rand) float32 {
	return r.Min + rng.Float32()*(r.Max-r.Min)
}

// Instance is one placed object.
type Instance struct {
	Position math.Vec3
	Rotation float32 // Radians around +Y
	Scale    float32
}

// Transform returns translate(Position) * rotateY(Rotation) * scale(Scale),
// so local geometry is scaled first, then rotated, then moved.
func (in Instance) Transform() math.Mat4 {
	return math.Translate(in.Position.X, in.Position.Y, in.Position.Z).
		Mul(math.RotateY(in.Rotation)).
		Mul(math.Scale(in.Scale, in.Scale, in.Scale))
}

// Request describes one scattering pass.
type Request struct {
	Count int
	X     Range
	Z     Range
	Scale Range
}

// Scatter makes Count placement attempts. Each attempt draws x, z, queries the
// height and, if the point is on the terrain with a finite height, draws a
// rotation in [0, 2π) and a scale and records an instance. Attempts that land
// off the terrain are dropped, so the result may hold fewer than Count
// instances. The same seeded rng yields the same result.
func Scatter(req Request, heights HeightSource, rng *rand.Rand) []Instance {
	if req.Count <= 0 {
		return nil
	}

	instances := make([]Instance, 0, req.Count)
	for range req.Count {
		x := req.X.Sample(rng)
		z := req.Z.Sample(rng)
		y, ok := heights.Query(x, z)
		if !ok || !math.IsFinite(y) {
			continue
		}

		rot := rng.Float32() * math.TwoPi
		if rot >= math.TwoPi {
			rot = 0
		}
		instances = append(instances, Instance{
			Position: math.Vec3{X: x, Y: y, Z: z},
			Rotation: rot,
			Scale:    req.Scale.Sample(rng),
		})
	}

	logger.Debug("scatter done",
		zap.Int("attempts", req.Count),
		zap.Int("placed", len(instances)))
	return instances
}

// Transforms returns the model matrices of instances, the layout uploaded as
// per-instance vertex attributes.
func Transforms(instances []Instance) []math.Mat4 {
	mats := make([]math.Mat4, len(instances))
	for i, in := range instances {
		mats[i] = in.Transform()
	}
	return mats
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
