package export

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/timejump/internal/engine/lighting"
	"github.com/Faultbox/timejump/internal/engine/placement"
	"github.com/Faultbox/timejump/internal/engine/scene"
	"github.com/Faultbox/timejump/internal/engine/terrain"
	"github.com/Faultbox/timejump/pkg/math"
)

func testTerrain(t *testing.T) *terrain.Terrain {
	t.Helper()
	raster := []uint8{
		0, 64, 128,
		64, 128, 192,
		128, 192, 255,
	}
	terr, err := terrain.New(raster, 3, 3, terrain.Params{HeightScale: 10, Size: 20})
	if err != nil {
		t.Fatal(err)
	}
	return terr
}

func TestWriteOBJ(t *testing.T) {
	terr := testTerrain(t)
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "terrain", terr.Mesh()); err != nil {
		t.Fatal(err)
	}

	counts := map[string]int{}
	var firstFace string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		tag := strings.Fields(line)[0]
		counts[tag]++
		if tag == "f" && firstFace == "" {
			firstFace = line
		}
	}
	if counts["v"] != 9 || counts["vt"] != 9 || counts["vn"] != 9 {
		t.Errorf("vertex records = %v", counts)
	}
	if counts["f"] != 8 || counts["o"] != 1 {
		t.Errorf("faces = %d, objects = %d", counts["f"], counts["o"])
	}
	// First cell (a,c,b) = (0,3,1), 1-based.
	if firstFace != "f 1/1/1 4/4/4 2/2/2" {
		t.Errorf("first face = %q", firstFace)
	}
}

func TestWriteOBJEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "x", &terrain.MeshGeometry{}); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("err = %v, want ErrEmptyMesh", err)
	}
	if err := WriteOBJ(&buf, "x", nil); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("nil mesh err = %v", err)
	}
}

func TestSaveOBJCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "terrain.obj")
	if err := SaveOBJ(path, "terrain", testTerrain(t).Mesh()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("stat: %v", err)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	terr := testTerrain(t)
	trees := []placement.Instance{
		{Position: math.Vec3{X: 1, Y: 2, Z: 3}, Rotation: 0.5, Scale: 0.75},
		{Position: math.Vec3{X: -4, Y: 5, Z: -6}, Rotation: 2, Scale: 1},
	}
	m := NewManifest("maps/island.png", 42, terr, trees)

	if m.Terrain.Width != 3 || m.Terrain.Vertices != 9 || m.Terrain.Triangles != 8 {
		t.Errorf("terrain manifest = %+v", m.Terrain)
	}

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := m.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Heightmap != m.Heightmap || got.Seed != 42 || got.Terrain != m.Terrain {
		t.Errorf("loaded %+v", got)
	}
	inst := got.Instances()
	if len(inst) != 2 || inst[0] != trees[0] || inst[1] != trees[1] {
		t.Errorf("instances = %+v", inst)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("trees: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadManifest(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestRenderPreview(t *testing.T) {
	terr := testTerrain(t)
	day := lighting.NewDayCycle(180)
	noon := day.At(45)
	midnight := day.At(135)

	trees := []placement.Instance{{Position: math.Vec3{X: 10, Y: 0, Z: 10}, Scale: 1}}
	img := RenderPreview(terr, noon, scene.Lush, trees)
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 3 {
		t.Fatalf("bounds = %v", b)
	}
	if img.RGBAAt(2, 2) != treeColor {
		t.Errorf("tree marker missing: %v", img.RGBAAt(2, 2))
	}

	dark := RenderPreview(terr, midnight, scene.Lush, nil)
	if dark.RGBAAt(1, 1).G >= img.RGBAAt(1, 1).G {
		t.Error("midnight preview should be darker than noon")
	}

	dry := RenderPreview(terr, noon, scene.Dry, nil)
	if dry.RGBAAt(1, 1).R <= img.RGBAAt(1, 1).R {
		t.Error("dry preview should be redder than lush")
	}
}

func TestSavePNG(t *testing.T) {
	terr := testTerrain(t)
	img := RenderPreview(terr, lighting.NewDayCycle(180).At(45), scene.Lush, nil)

	path := filepath.Join(t.TempDir(), "preview", "noon.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v", decoded.Bounds())
	}
}
