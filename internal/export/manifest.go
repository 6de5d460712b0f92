package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/timejump/internal/engine/placement"
	"github.com/Faultbox/timejump/internal/engine/scene"
	"github.com/Faultbox/timejump/internal/engine/terrain"
	"github.com/Faultbox/timejump/pkg/math"
)

// Manifest records how a scene was baked so it can be reproduced.
type Manifest struct {
	Heightmap string          `yaml:"heightmap"`
	Seed      uint64          `yaml:"seed"`
	Terrain   TerrainManifest `yaml:"terrain"`
	Assets    AssetsManifest  `yaml:"assets"`
	Trees     []TreeManifest  `yaml:"trees"`
}

// AssetsManifest names the resources a renderer needs to draw the bake.
type AssetsManifest struct {
	Lush      AssetSetManifest `yaml:"lush"`
	Dry       AssetSetManifest `yaml:"dry"` // After a time jump
	TreeModel string           `yaml:"tree_model"`
}

// AssetSetManifest is the ground texture and skybox of one asset set.
type AssetSetManifest struct {
	Texture string `yaml:"texture"`
	Skybox  string `yaml:"skybox"`
}

// Set returns the resources of set.
func (a AssetsManifest) Set(set scene.AssetSet) AssetSetManifest {
	if set == scene.Dry {
		return a.Dry
	}
	return a.Lush
}

// TerrainManifest describes the terrain build.
type TerrainManifest struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Size        float32 `yaml:"size"`
	HeightScale float32 `yaml:"height_scale"`
	Vertices    int     `yaml:"vertices"`
	Triangles   int     `yaml:"triangles"`
}

// TreeManifest is one placed tree.
type TreeManifest struct {
	Position [3]float32 `yaml:"position,flow"`
	Rotation float32    `yaml:"rotation"`
	Scale    float32    `yaml:"scale"`
}

// NewManifest collects the bake inputs and outputs.
func NewManifest(heightmap string, seed uint64, terr *terrain.Terrain, trees []placement.Instance) *Manifest {
	m := &Manifest{
		Heightmap: heightmap,
		Seed:      seed,
		Trees:     make([]TreeManifest, 0, len(trees)),
	}
	if terr != nil {
		p := terr.Params()
		m.Terrain = TerrainManifest{
			Width:       terr.Field().Width(),
			Height:      terr.Field().Height(),
			Size:        p.Size,
			HeightScale: p.HeightScale,
			Vertices:    terr.Mesh().VertexCount(),
			Triangles:   terr.Mesh().TriangleCount(),
		}
	}
	for _, t := range trees {
		m.Trees = append(m.Trees, TreeManifest{
			Position: t.Position.Array(),
			Rotation: t.Rotation,
			Scale:    t.Scale,
		})
	}
	return m
}

// Instances converts the manifest trees back to placement instances.
func (m *Manifest) Instances() []placement.Instance {
	out := make([]placement.Instance, len(m.Trees))
	for i, t := range m.Trees {
		out[i] = placement.Instance{
			Position: math.Vec3{X: t.Position[0], Y: t.Position[1], Z: t.Position[2]},
			Rotation: t.Rotation,
			Scale:    t.Scale,
		}
	}
	return out
}

// SaveTo writes the manifest as YAML.
func (m *Manifest) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadManifest reads a manifest written by SaveTo.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
