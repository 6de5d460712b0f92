package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// ErrInvalid is wrapped by every problem Validate reports.
var ErrInvalid = errors.New("invalid config")

// Validate checks the settings a bake depends on and returns every problem
// found, combined.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	checkRange := func(name string, r Range) {
		check(r.Min <= r.Max, "%s range min %g > max %g", name, r.Min, r.Max)
	}

	check(c.Window.Width > 0 && c.Window.Height > 0,
		"window size %dx%d", c.Window.Width, c.Window.Height)

	check(c.Terrain.Heightmap != "", "terrain.heightmap is empty")
	check(c.Terrain.HeightScale > 0, "terrain.height_scale %g must be positive", c.Terrain.HeightScale)
	check(c.Terrain.Size > 0, "terrain.size %g must be positive", c.Terrain.Size)
	check(c.Terrain.Workers >= 0, "terrain.workers %d is negative", c.Terrain.Workers)

	check(c.Trees.Count >= 0, "trees.count %d is negative", c.Trees.Count)
	checkRange("trees.x", c.Trees.X)
	checkRange("trees.z", c.Trees.Z)
	checkRange("trees.scale", c.Trees.Scale)
	check(c.Trees.Scale.Min > 0, "trees.scale min %g must be positive", c.Trees.Scale.Min)

	check(c.Camera.Mode == "auto" || c.Camera.Mode == "free",
		"camera.mode %q is not auto or free", c.Camera.Mode)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov %g out of (0, 180)", c.Camera.FOV)

	check(c.Sky.DayLength > 0, "sky.day_length %g must be positive", c.Sky.DayLength)
	check(c.TimeJump.Speed > 0, "time_jump.speed %g must be positive", c.TimeJump.Speed)

	check(c.Bake.Frames >= 0, "bake.frames %d is negative", c.Bake.Frames)
	check(c.Bake.FrameDt > 0, "bake.frame_dt %g must be positive", c.Bake.FrameDt)
	check(c.Bake.Previews >= 0, "bake.previews %d is negative", c.Bake.Previews)

	_, lvlErr := zapcore.ParseLevel(c.Logging.Level)
	check(lvlErr == nil, "logging.level %q", c.Logging.Level)

	return err
}
