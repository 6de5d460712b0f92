package scene

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/timejump/internal/engine/camera"
	"github.com/Faultbox/timejump/internal/engine/placement"
	"github.com/Faultbox/timejump/internal/engine/terrain"
	"github.com/Faultbox/timejump/internal/engine/timejump"
	"github.com/Faultbox/timejump/pkg/math"
)

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func flatTerrain(t *testing.T, level uint8) *terrain.Terrain {
	t.Helper()
	raster := make([]uint8, 4*4)
	for i := range raster {
		raster[i] = level
	}
	terr, err := terrain.New(raster, 4, 4, terrain.Params{HeightScale: 255, Size: 100})
	if err != nil {
		t.Fatal(err)
	}
	return terr
}

func TestResizeIgnoresMinimized(t *testing.T) {
	rc := New(DefaultConfig(), nil)
	if !near(rc.Aspect(), 1280.0/720.0, 1e-6) {
		t.Errorf("Aspect = %v", rc.Aspect())
	}
	rc.Resize(0, 0)
	if w, h := rc.Size(); w != 1280 || h != 720 {
		t.Errorf("size after minimize = %dx%d", w, h)
	}
	rc.Resize(800, 800)
	if rc.Aspect() != 1 {
		t.Errorf("Aspect = %v", rc.Aspect())
	}
}

func TestAdvanceAccumulatesClock(t *testing.T) {
	rc := New(DefaultConfig(), nil)
	rc.Advance(0.25)
	fs := rc.Advance(0.25)
	if fs.Time != 0.5 || rc.Clock() != 0.5 {
		t.Errorf("clock = %v", fs.Time)
	}
	if fs = rc.Advance(-3); fs.Dt != 0 || fs.Time != 0.5 {
		t.Errorf("negative step moved clock to %v", fs.Time)
	}
}

func TestAdvanceMatrices(t *testing.T) {
	rc := New(DefaultConfig(), nil)
	fs := rc.Advance(1)

	if fs.CameraMode != camera.ModeAuto {
		t.Errorf("mode = %v", fs.CameraMode)
	}
	eye := fs.View.TransformPoint(fs.CameraPos)
	if !near(eye.Length(), 0, 1e-3) {
		t.Errorf("camera not at view origin: %+v", eye)
	}
	if fs.SkyView[12] != 0 || fs.SkyView[13] != 0 || fs.SkyView[14] != 0 {
		t.Errorf("sky view keeps translation: %v", fs.SkyView)
	}
	if fs.SkyView[0] != fs.View[0] || fs.SkyView[10] != fs.View[10] {
		t.Error("sky view rotation differs from view")
	}
}

func TestAdvanceAttachesSpot(t *testing.T) {
	rc := New(DefaultConfig(), nil)
	fs := rc.Advance(2)
	want := fs.CameraPos.Add(math.Vec3{Y: 0.5})
	if fs.Spot.Position != want {
		t.Errorf("spot at %+v, want %+v", fs.Spot.Position, want)
	}
	if !near(fs.Spot.Direction.Dot(rc.Camera.Front), 1, 1e-5) {
		t.Error("spot does not follow camera front")
	}
}

func TestTimeJumpSwapsAssets(t *testing.T) {
	rc := New(DefaultConfig(), nil)
	if fs := rc.Advance(0.1); fs.Assets != Lush {
		t.Fatalf("assets = %v before jump", fs.Assets)
	}

	rc.ToggleJump()
	events := 0
	var fs FrameState
	for i := 0; i < 60; i++ {
		fs = rc.Advance(1.0 / 60)
		if fs.JumpEvent == timejump.Swapped {
			events++
		}
	}
	if events != 1 || fs.Assets != Dry || fs.JumpState != timejump.Transitioned {
		t.Errorf("events=%d assets=%v state=%v", events, fs.Assets, fs.JumpState)
	}
	if fs.JumpProgress < 0.99 {
		t.Errorf("progress = %v", fs.JumpProgress)
	}
}

func TestSkipTime(t *testing.T) {
	rc := New(DefaultConfig(), nil)
	rc.SkipTime()
	fs := rc.Advance(0)
	if fs.Time != 30 {
		t.Errorf("Time = %v, want 30", fs.Time)
	}
	want := rc.day.At(30)
	if fs.Sun.Direction != want.Direction {
		t.Errorf("sun not evaluated at skipped time")
	}
}

func TestFreeCameraStaysAboveTerrain(t *testing.T) {
	rc := New(DefaultConfig(), flatTerrain(t, 10))
	rc.ToggleCamera()
	rc.Camera.Position = math.Vec3{X: 0, Y: 0, Z: 0}

	fs := rc.Advance(0.016)
	if !near(fs.CameraPos.Y, 12, 1e-4) {
		t.Errorf("camera Y = %v, want 12", fs.CameraPos.Y)
	}
}

func TestTrees(t *testing.T) {
	rc := New(DefaultConfig(), nil)
	trees := []placement.Instance{
		{Position: math.Vec3{X: 1, Y: 2, Z: 3}, Rotation: 0, Scale: 1},
	}
	rc.SetTrees(trees)
	if len(rc.Trees()) != 1 || len(rc.TreeTransforms()) != 1 {
		t.Fatal("trees not stored")
	}
	if tr := rc.TreeTransforms()[0].Translation(); tr != trees[0].Position {
		t.Errorf("translation = %+v", tr)
	}
}

func TestFPSCounter(t *testing.T) {
	var c FPSCounter
	for i := 0; i < 29; i++ {
		if v := c.Tick(1.0 / 60); v != 0 {
			t.Fatalf("rate published early at frame %d: %v", i, v)
		}
	}
	// Frame 30 completes the half-second window.
	v := c.Tick(1.0 / 60)
	if !near(v, 60, 0.5) {
		t.Errorf("fps = %v, want ~60", v)
	}
	if c.Value() != v {
		t.Error("Value disagrees with Tick")
	}
}

func TestFocusOnTerrain(t *testing.T) {
	rc := New(DefaultConfig(), flatTerrain(t, 0))
	rc.ToggleCamera()
	rc.Camera.Position = math.Vec3{X: 0, Y: 20, Z: 0}
	rc.Camera.Front = math.Vec3{X: 0.6, Y: -0.8, Z: 0}

	fs := rc.Advance(0)
	if !fs.HasFocus {
		t.Fatal("expected a focus point")
	}
	if !near(fs.Focus.X, 15, 1e-2) || !near(fs.Focus.Y, 0, 1e-2) {
		t.Errorf("focus = %+v, want (15, 0, 0)", fs.Focus)
	}

	rc.Camera.Front = math.Vec3{X: 0.6, Y: 0.8, Z: 0}
	if fs := rc.Advance(0); fs.HasFocus {
		t.Error("looking up should not focus the terrain")
	}
}
