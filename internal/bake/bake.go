// Package bake runs the demo headlessly: it loads the heightmap, builds the
// terrain, scatters trees, steps the render context for a number of frames
// and writes the results to disk.
package bake

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/timejump/internal/assets"
	"github.com/Faultbox/timejump/internal/config"
	"github.com/Faultbox/timejump/internal/engine/camera"
	"github.com/Faultbox/timejump/internal/engine/placement"
	"github.com/Faultbox/timejump/internal/engine/scene"
	"github.com/Faultbox/timejump/internal/engine/terrain"
	"github.com/Faultbox/timejump/internal/engine/texture"
	"github.com/Faultbox/timejump/internal/engine/timejump"
	"github.com/Faultbox/timejump/internal/export"
	"github.com/Faultbox/timejump/internal/logger"
)

// Output file names inside the output directory.
const (
	MeshFile     = "terrain.obj"
	ManifestFile = "manifest.yaml"
)

// Result summarizes a finished bake.
type Result struct {
	MeshPath     string
	ManifestPath string
	Previews     []string

	Vertices  int
	Triangles int
	Trees     int
	Frames    int
	Swaps     int // Time-jump state changes observed
	FinalTime float32
}

// Baker owns the loaded scene for one bake run.
type Baker struct {
	config *config.Config
	assets *assets.Manager

	terrain *terrain.Terrain
	trees   []placement.Instance
	ctx     *scene.RenderContext
}

// New resolves resources, loads the heightmap and prepares the scene.
func New(ctx context.Context, cfg *config.Config) (*Baker, error) {
	root := cfg.Assets.ResourcesDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = assets.FindResourceRoot(wd)
	}
	logger.Info("initializing bake",
		zap.String("root", root),
		zap.String("heightmap", cfg.Terrain.Heightmap))

	b := &Baker{
		config: cfg,
		assets: assets.NewManager(root, cfg.Assets.CacheDir),
	}

	if err := b.loadTerrain(ctx); err != nil {
		b.Close()
		return nil, err
	}
	b.scatterTrees()
	b.setupScene()
	return b, nil
}

// Terrain returns the built terrain.
func (b *Baker) Terrain() *terrain.Terrain { return b.terrain }

// Trees returns the scattered tree instances.
func (b *Baker) Trees() []placement.Instance { return b.trees }

// Scene returns the render context.
func (b *Baker) Scene() *scene.RenderContext { return b.ctx }

func (b *Baker) loadTerrain(ctx context.Context) error {
	data, name, err := b.assets.Load(b.config.Terrain.Heightmap)
	if err != nil {
		return fmt.Errorf("resolving heightmap: %w", err)
	}
	r, err := texture.DecodeRaster(name, data)
	if err != nil {
		return fmt.Errorf("decoding heightmap %s: %w", name, err)
	}

	params := terrain.Params{
		HeightScale: b.config.Terrain.HeightScale,
		Size:        b.config.Terrain.Size,
	}
	terr, err := terrain.Build(ctx, r.Pix, r.Width, r.Height, params, b.config.Terrain.Workers)
	if err != nil {
		return fmt.Errorf("building terrain: %w", err)
	}
	b.terrain = terr
	return nil
}

func (b *Baker) scatterTrees() {
	tc := b.config.Trees
	req := placement.Request{
		Count: tc.Count,
		X:     placement.Range{Min: tc.X.Min, Max: tc.X.Max},
		Z:     placement.Range{Min: tc.Z.Min, Max: tc.Z.Max},
		Scale: placement.Range{Min: tc.Scale.Min, Max: tc.Scale.Max},
	}
	b.trees = placement.Scatter(req, b.terrain.Field(), placement.NewRand(tc.Seed))
	logger.Info("trees scattered",
		zap.Int("attempts", tc.Count),
		zap.Int("placed", len(b.trees)),
		zap.Uint64("seed", tc.Seed))
}

func (b *Baker) setupScene() {
	c := b.config
	rc := scene.New(scene.Config{
		Width:           c.Window.Width,
		Height:          c.Window.Height,
		DayLength:       c.Sky.DayLength,
		JumpSpeed:       c.TimeJump.Speed,
		SkipSeconds:     c.TimeJump.SkipSeconds,
		GroundClearance: c.Camera.GroundClearance,
	}, b.terrain)

	cam := rc.Camera
	cam.FOV = c.Camera.FOV
	cam.Speed = c.Camera.Speed
	cam.Sensitivity = c.Camera.Sensitivity
	cam.Orbit = camera.Orbit{
		Radius: c.Camera.OrbitRadius,
		Speed:  c.Camera.OrbitSpeed,
		Height: c.Camera.OrbitHeight,
	}
	if camera.ParseMode(c.Camera.Mode) != cam.Mode {
		rc.ToggleCamera()
	}

	rc.SetTrees(b.trees)
	b.ctx = rc
}

// Run steps the scene for the configured number of frames, capturing
// evenly spaced previews, then writes the mesh and manifest.
func (b *Baker) Run(ctx context.Context) (*Result, error) {
	bc := b.config.Bake
	outDir := bc.OutDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	res := &Result{
		Vertices:  b.terrain.Mesh().VertexCount(),
		Triangles: b.terrain.Mesh().TriangleCount(),
		Trees:     len(b.trees),
	}

	every := 0
	if bc.Previews > 0 && bc.Frames > 0 {
		every = max(bc.Frames/bc.Previews, 1)
	}

	logger.Info("starting frame loop", zap.Int("frames", bc.Frames), zap.Float32("dt", bc.FrameDt))
	for i := 0; i < bc.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i == bc.JumpAt {
			b.ctx.ToggleJump()
		}

		fs := b.ctx.Advance(bc.FrameDt)
		res.Frames++
		res.FinalTime = fs.Time
		if fs.JumpEvent != timejump.None {
			res.Swaps++
			logger.Info("time jump", zap.Int("frame", i), zap.Stringer("assets", fs.Assets))
		}

		if every > 0 && (i+1)%every == 0 && len(res.Previews) < bc.Previews {
			path := filepath.Join(outDir, fmt.Sprintf("preview_%04d.png", i+1))
			img := export.RenderPreview(b.terrain, fs.Sun, fs.Assets, b.trees)
			if err := export.SavePNG(path, img); err != nil {
				return nil, err
			}
			res.Previews = append(res.Previews, path)
			logger.Debug("preview saved",
				zap.String("path", path),
				zap.Float32("dayFactor", fs.Sun.DayFactor))
		}
	}

	res.MeshPath = filepath.Join(outDir, MeshFile)
	if err := export.SaveOBJ(res.MeshPath, "terrain", b.terrain.Mesh()); err != nil {
		return nil, err
	}

	res.ManifestPath = filepath.Join(outDir, ManifestFile)
	manifest := export.NewManifest(b.config.Terrain.Heightmap, b.config.Trees.Seed, b.terrain, b.trees)
	manifest.Assets = export.AssetsManifest{
		Lush:      export.AssetSetManifest{Texture: b.config.Terrain.Texture, Skybox: b.config.Sky.Skybox},
		Dry:       export.AssetSetManifest{Texture: b.config.Terrain.DryTexture, Skybox: b.config.Sky.DrySkybox},
		TreeModel: b.config.Trees.Model,
	}
	if err := manifest.SaveTo(res.ManifestPath); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	logger.Info("bake finished",
		zap.String("mesh", res.MeshPath),
		zap.Int("previews", len(res.Previews)),
		zap.Int("swaps", res.Swaps))
	return res, nil
}

// Close releases cached asset data.
func (b *Baker) Close() {
	if b.assets != nil {
		b.assets.Close()
	}
}
