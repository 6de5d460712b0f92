// Package scene holds the per-session render state of the terrain demo.
// A RenderContext is advanced once per frame and produces a FrameState with
// everything a renderer needs to draw that frame.
package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/timejump/internal/engine/camera"
	"github.com/Faultbox/timejump/internal/engine/lighting"
	"github.com/Faultbox/timejump/internal/engine/picking"
	"github.com/Faultbox/timejump/internal/engine/placement"
	"github.com/Faultbox/timejump/internal/engine/terrain"
	"github.com/Faultbox/timejump/internal/engine/timejump"
	"github.com/Faultbox/timejump/internal/logger"
	"github.com/Faultbox/timejump/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	Width  int
	Height int

	DayLength   float32 // Seconds per day/night cycle
	JumpSpeed   float32 // Time-jump smoothing rate
	SkipSeconds float32 // Clock advance for SkipTime

	// GroundClearance keeps the free camera above the terrain. Zero disables it.
	GroundClearance float32
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:           1280,
		Height:          720,
		DayLength:       lighting.DefaultDayLength,
		JumpSpeed:       timejump.DefaultSpeed,
		SkipSeconds:     30,
		GroundClearance: 2,
	}
}

// AssetSet selects the terrain texture and skybox.
type AssetSet int

const (
	// Lush is the default grass texture and blue-sky cubemap.
	Lush AssetSet = iota
	// Dry is the sand texture and dead-sky cubemap shown after a time jump.
	Dry
)

func (a AssetSet) String() string {
	if a == Dry {
		return "dry"
	}
	return "lush"
}

// FrameState is the output of one Advance call.
type FrameState struct {
	Time float32 // Scene clock (seconds)
	Dt   float32

	View       math.Mat4
	Projection math.Mat4
	SkyView    math.Mat4 // View without translation

	CameraPos  math.Vec3
	CameraMode camera.Mode

	// Focus is the terrain point at the centre of the screen, valid when
	// HasFocus is set.
	Focus    math.Vec3
	HasFocus bool

	Sun         lighting.Sun
	SunViewProj math.Mat4 // Light space for the terrain shadow map
	Spot        lighting.SpotLight

	JumpProgress float32
	JumpState    timejump.State
	JumpEvent    timejump.Event
	Assets       AssetSet

	FPS float32
}

// RenderContext owns the mutable state of a render session.
type RenderContext struct {
	config Config

	width  int
	height int

	Camera  *camera.Camera
	Terrain *terrain.Terrain

	trees          []placement.Instance
	treeTransforms []math.Mat4

	clock float32
	day   lighting.DayCycle
	jump  *timejump.Controller
	spot  lighting.SpotLight
	fps   FPSCounter
}

// New creates a render context. terr may be nil when no terrain is loaded.
func New(cfg Config, terr *terrain.Terrain) *RenderContext {
	rc := &RenderContext{
		config:  cfg,
		Camera:  camera.New(),
		Terrain: terr,
		day:     lighting.NewDayCycle(cfg.DayLength),
		jump:    timejump.NewController(cfg.JumpSpeed),
		spot:    lighting.NewHeadlight(),
	}
	rc.Resize(cfg.Width, cfg.Height)
	return rc
}

// Resize updates the viewport size. Non-positive sizes (a minimized window)
// are ignored so the aspect ratio stays valid.
func (rc *RenderContext) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	rc.width = width
	rc.height = height
}

// Size returns the viewport size.
func (rc *RenderContext) Size() (width, height int) {
	return rc.width, rc.height
}

// Aspect returns width/height, or 1 before a valid size is set.
func (rc *RenderContext) Aspect() float32 {
	if rc.width <= 0 || rc.height <= 0 {
		return 1
	}
	return float32(rc.width) / float32(rc.height)
}

// Clock returns the scene time in seconds.
func (rc *RenderContext) Clock() float32 { return rc.clock }

// SetTrees replaces the tree instances and caches their model matrices.
func (rc *RenderContext) SetTrees(instances []placement.Instance) {
	rc.trees = instances
	rc.treeTransforms = placement.Transforms(instances)
}

// Trees returns the tree instances.
func (rc *RenderContext) Trees() []placement.Instance { return rc.trees }

// TreeTransforms returns one model matrix per tree, ready for instancing.
func (rc *RenderContext) TreeTransforms() []math.Mat4 { return rc.treeTransforms }

// ToggleJump flips the time-jump target.
func (rc *RenderContext) ToggleJump() bool {
	return rc.jump.Toggle()
}

// ToggleCamera switches between orbit and free-fly.
func (rc *RenderContext) ToggleCamera() camera.Mode {
	mode := rc.Camera.ToggleMode()
	logger.Debug("camera mode", zap.Stringer("mode", mode))
	return mode
}

// SkipTime advances the scene clock by the configured skip amount.
func (rc *RenderContext) SkipTime() {
	rc.clock += rc.config.SkipSeconds
}

// Advance steps the scene by dt seconds and returns the frame to draw.
// Negative steps are treated as zero.
func (rc *RenderContext) Advance(dt float32) FrameState {
	if dt < 0 || !math.IsFinite(dt) {
		dt = 0
	}
	rc.clock += dt

	cam := rc.Camera
	cam.UpdateAuto(rc.clock)
	if cam.Mode == camera.ModeFree && rc.Terrain != nil && rc.config.GroundClearance > 0 {
		cam.FollowTerrain(rc.Terrain.Field(), rc.config.GroundClearance)
	}

	view := cam.ViewMatrix()
	rc.spot.Attach(cam.Position, cam.Front)

	event := rc.jump.Update(dt)
	if event != timejump.None {
		logger.Debug("asset set changed",
			zap.Stringer("state", rc.jump.State()),
			zap.Float32("clock", rc.clock))
	}

	sun := rc.day.At(rc.clock)

	var focus math.Vec3
	hasFocus := false
	sunViewProj := math.Identity()
	if rc.Terrain != nil {
		bounds := rc.Terrain.Mesh().Bounds
		focus, hasFocus = picking.CenterRay(cam).IntersectTerrain(rc.Terrain.Field(), picking.FromBounds(bounds), 0)
		sunViewProj = lighting.SunMatrix(sun.Direction, bounds.Min, bounds.Max)
	}

	assets := Lush
	if rc.jump.State() == timejump.Transitioned {
		assets = Dry
	}

	return FrameState{
		Time:         rc.clock,
		Dt:           dt,
		View:         view,
		Projection:   cam.Projection(rc.Aspect()),
		SkyView:      view.WithoutTranslation(),
		CameraPos:    cam.Position,
		CameraMode:   cam.Mode,
		Focus:        focus,
		HasFocus:     hasFocus,
		Sun:          sun,
		SunViewProj:  sunViewProj,
		Spot:         rc.spot,
		JumpProgress: rc.jump.Progress(),
		JumpState:    rc.jump.State(),
		JumpEvent:    event,
		Assets:       assets,
		FPS:          rc.fps.Tick(dt),
	}
}
