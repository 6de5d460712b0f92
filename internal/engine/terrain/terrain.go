package terrain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/timejump/internal/logger"
)

// Params are the world-space scale parameters of a terrain.
type Params struct {
	HeightScale float32 // World height of a white pixel
	Size        float32 // Edge length of the square footprint
}

// DefaultParams matches the demo scene.
func DefaultParams() Params {
	return Params{HeightScale: 20, Size: 100}
}

// Terrain owns one height field and the mesh derived from it. Both are
// replaced wholesale by Reload and never edited in place.
type Terrain struct {
	params Params
	field  *HeightField
	mesh   *MeshGeometry
}

// New builds a terrain from an 8-bit single-channel raster.
func New(raster []uint8, w, h int, params Params) (*Terrain, error) {
	t := &Terrain{}
	if err := t.Reload(raster, w, h, params); err != nil {
		return nil, err
	}
	return t, nil
}

// Build is New with the mesh generated by up to workers goroutines. The
// result is identical to New; workers <= 1 builds sequentially.
func Build(ctx context.Context, raster []uint8, w, h int, params Params, workers int) (*Terrain, error) {
	t := &Terrain{}
	if err := t.ReloadContext(ctx, raster, w, h, params, workers); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload rebuilds the height field and mesh. On error the previous state is
// kept untouched.
func (t *Terrain) Reload(raster []uint8, w, h int, params Params) error {
	return t.ReloadContext(context.Background(), raster, w, h, params, 1)
}

// ReloadContext is Reload with an optional parallel mesh build.
func (t *Terrain) ReloadContext(ctx context.Context, raster []uint8, w, h int, params Params, workers int) error {
	field, err := LoadHeightField(raster, w, h, params.Size, params.Size, params.HeightScale)
	if err != nil {
		return fmt.Errorf("loading height field: %w", err)
	}

	var mesh *MeshGeometry
	if workers > 1 {
		mesh, err = BuildMeshParallel(ctx, field, params.HeightScale, params.Size, workers)
		if err != nil {
			return fmt.Errorf("building mesh: %w", err)
		}
	} else {
		mesh = BuildMesh(field, params.HeightScale, params.Size)
	}

	t.params = params
	t.field = field
	t.mesh = mesh

	logger.Debug("terrain built",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("workers", workers),
		zap.Float32("heightScale", params.HeightScale),
		zap.Float32("size", params.Size))
	return nil
}

// Params returns the scale parameters of the current build.
func (t *Terrain) Params() Params { return t.params }

// Field returns the height field.
func (t *Terrain) Field() *HeightField { return t.field }

// Mesh returns the mesh geometry.
func (t *Terrain) Mesh() *MeshGeometry { return t.mesh }

// HeightAt returns the world height at (x, z), false outside the footprint.
func (t *Terrain) HeightAt(x, z float32) (float32, bool) {
	return t.field.Query(x, z)
}
