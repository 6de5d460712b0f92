package scene

// FPSWindow is how long frames are counted before the rate is refreshed.
const FPSWindow = 0.5

// FPSCounter reports a frame rate smoothed over FPSWindow-second windows.
type FPSCounter struct {
	frames  int
	elapsed float64
	value   float32
}

// Tick records one frame of length dt and returns the current rate. The
// rate only changes when a window completes.
func (c *FPSCounter) Tick(dt float32) float32 {
	c.frames++
	c.elapsed += float64(dt)
	if c.elapsed >= FPSWindow {
		c.value = float32(float64(c.frames) / c.elapsed)
		c.frames = 0
		c.elapsed = 0
	}
	return c.value
}

// Value returns the last computed rate.
func (c *FPSCounter) Value() float32 { return c.value }
