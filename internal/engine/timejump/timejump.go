// Package timejump drives the "time jump" post-process transition.
//
// The transition animates a progress value toward a target (0 or 1) with
// exponential smoothing. Scene assets swap exactly once when progress passes
// the midpoint on the way up, and swap back once when it falls below the
// midpoint on the way down, so the change is hidden by the effect.
package timejump

import (
	"go.uber.org/zap"

	"github.com/Faultbox/timejump/internal/logger"
	"github.com/Faultbox/timejump/pkg/math"
)

// DefaultSpeed is the smoothing rate per second.
const DefaultSpeed = 6

// Midpoint is the progress at which assets swap.
const Midpoint = 0.5

// State says which asset set is live.
type State int

const (
	// Normal shows the default terrain texture and skybox.
	Normal State = iota
	// Transitioned shows the alternate (dry) assets.
	Transitioned
)

func (s State) String() string {
	if s == Transitioned {
		return "transitioned"
	}
	return "normal"
}

// Event reports a state change produced by Update.
type Event int

const (
	None Event = iota
	// Swapped fires on Normal -> Transitioned.
	Swapped
	// Reverted fires on Transitioned -> Normal.
	Reverted
)

// Controller owns the transition progress and the asset state.
type Controller struct {
	speed    float32
	progress float32
	target   float32
	state    State
}

// NewController creates a controller at rest in the Normal state.
// Non-positive speeds use DefaultSpeed.
func NewController(speed float32) *Controller {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Controller{speed: speed}
}

// Toggle flips the animation target between 0 and 1 and returns whether the
// jump is now engaged.
func (c *Controller) Toggle() bool {
	if c.target == 1 {
		c.target = 0
	} else {
		c.target = 1
	}
	logger.Debug("time jump toggled", zap.Bool("engaged", c.target == 1))
	return c.target == 1
}

// Engaged reports whether the target is the transitioned look.
func (c *Controller) Engaged() bool { return c.target == 1 }

// Progress returns the animation value in [0, 1] for the post-process shader.
func (c *Controller) Progress() float32 { return c.progress }

// State returns the live asset state.
func (c *Controller) State() State { return c.state }

// Update advances the animation by dt seconds and applies at most one state
// transition.
func (c *Controller) Update(dt float32) Event {
	if dt > 0 {
		c.progress = math.Lerp(c.progress, c.target, math.Clamp(dt*c.speed, 0, 1))
	}

	switch {
	case c.state == Normal && c.target == 1 && c.progress > Midpoint:
		c.state = Transitioned
		logger.Debug("time jump swapped assets", zap.Float32("progress", c.progress))
		return Swapped
	case c.state == Transitioned && c.target == 0 && c.progress < Midpoint:
		c.state = Normal
		logger.Debug("time jump reverted assets", zap.Float32("progress", c.progress))
		return Reverted
	}
	return None
}
