package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/Faultbox/timejump/internal/engine/lighting"
	"github.com/Faultbox/timejump/internal/engine/placement"
	"github.com/Faultbox/timejump/internal/engine/scene"
	"github.com/Faultbox/timejump/internal/engine/terrain"
	"github.com/Faultbox/timejump/pkg/math"
)

// Base albedo per asset set.
var (
	lushAlbedo = math.Vec3{X: 0.30, Y: 0.55, Z: 0.20}
	dryAlbedo  = math.Vec3{X: 0.76, Y: 0.65, Z: 0.42}
	treeColor  = color.RGBA{R: 20, G: 60, B: 15, A: 255}
)

// RenderPreview draws a top-down shaded relief of the terrain, one pixel per
// grid vertex, lit by sun. Trees are marked as dark pixels.
func RenderPreview(terr *terrain.Terrain, sun lighting.Sun, assets scene.AssetSet, trees []placement.Instance) *image.RGBA {
	field := terr.Field()
	mesh := terr.Mesh()
	w, h := field.Width(), field.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	albedo := lushAlbedo
	if assets == scene.Dry {
		albedo = dryAlbedo
	}

	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			idx := j*w + i
			diffuse := mesh.Normals[idx].Dot(sun.Direction)
			if diffuse < 0 {
				diffuse = 0
			}
			// Brighten peaks slightly so relief reads at night.
			lift := 0.7 + 0.3*field.Sample(i, j)

			lit := sun.Ambient.Add(sun.LightColor.Scale(diffuse))
			c := albedo.Mul(lit).Scale(lift)
			img.SetRGBA(i, j, toRGBA(c))
		}
	}

	for _, t := range trees {
		i, j, ok := worldToPixel(field, t.Position.X, t.Position.Z)
		if ok {
			img.SetRGBA(i, j, treeColor)
		}
	}
	return img
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}

func worldToPixel(field *terrain.HeightField, x, z float32) (int, int, bool) {
	if !field.Contains(x, z) {
		return 0, 0, false
	}
	u := (x/field.SizeX() + 0.5) * float32(field.Width()-1)
	v := (z/field.SizeZ() + 0.5) * float32(field.Height()-1)
	return int(u + 0.5), int(v + 0.5), true
}

func toRGBA(c math.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(math.Clamp(c.X, 0, 1)*255 + 0.5),
		G: uint8(math.Clamp(c.Y, 0, 1)*255 + 0.5),
		B: uint8(math.Clamp(c.Z, 0, 1)*255 + 0.5),
		A: 255,
	}
}
