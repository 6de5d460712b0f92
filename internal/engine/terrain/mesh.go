package terrain

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/timejump/pkg/math"
)

// BuildMesh turns a height field into a w*h vertex grid. Vertex (i,j) sits at
// x=(i/(w-1)-0.5)*size, z=(j/(h-1)-0.5)*size and y=sample(i,j)*heightScale,
// using the raw sample so grid vertices align exactly with raster pixels.
//
// Each cell with corners a=(i,j) b=(i+1,j) c=(i,j+1) d=(i+1,j+1) becomes the
// triangles (a,c,b) and (b,c,d), which face +Y under a counter-clockwise
// front-face convention. Back-face culling relies on this winding.
func BuildMesh(hf *HeightField, heightScale, size float32) *MeshGeometry {
	w, h := hf.Width(), hf.Height()
	mesh := newGrid(w, h)
	for j := range h {
		fillRow(mesh, hf, j, heightScale, size)
	}
	return finishMesh(mesh, w, h)
}

// BuildMeshParallel is BuildMesh with vertex rows generated by up to workers
// goroutines. Every row writes a disjoint slice range, so the result is
// identical to BuildMesh. workers <= 0 uses GOMAXPROCS.
func BuildMeshParallel(ctx context.Context, hf *HeightField, heightScale, size float32, workers int) (*MeshGeometry, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	w, h := hf.Width(), hf.Height()
	mesh := newGrid(w, h)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for j := range h {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fillRow(mesh, hf, j, heightScale, size)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return finishMesh(mesh, w, h), nil
}

func newGrid(w, h int) *MeshGeometry {
	return &MeshGeometry{
		Positions: make([]math.Vec3, w*h),
		UVs:       make([]math.Vec2, w*h),
		Indices:   make([]uint32, 0, 6*(w-1)*(h-1)),
	}
}

func fillRow(mesh *MeshGeometry, hf *HeightField, j int, heightScale, size float32) {
	w, h := hf.Width(), hf.Height()
	sz := float32(j) / float32(h-1)
	z := (sz - 0.5) * size
	for i := range w {
		sx := float32(i) / float32(w-1)
		idx := j*w + i
		mesh.Positions[idx] = math.Vec3{
			X: (sx - 0.5) * size,
			Y: hf.Sample(i, j) * heightScale,
			Z: z,
		}
		mesh.UVs[idx] = math.Vec2{X: sx * UVTiling, Y: sz * UVTiling}
	}
}

func finishMesh(mesh *MeshGeometry, w, h int) *MeshGeometry {
	mesh.Indices = appendGridIndices(mesh.Indices, w, h)
	mesh.Normals = ComputeNormals(mesh.Positions, mesh.Indices)

	mesh.Bounds = Bounds{Min: mesh.Positions[0], Max: mesh.Positions[0]}
	for _, p := range mesh.Positions[1:] {
		mesh.Bounds.extend(p)
	}
	return mesh
}

func appendGridIndices(indices []uint32, w, h int) []uint32 {
	for j := 0; j < h-1; j++ {
		for i := 0; i < w-1; i++ {
			a := uint32(j*w + i)
			b := uint32(j*w + i + 1)
			c := uint32((j+1)*w + i)
			d := uint32((j+1)*w + i + 1)

			indices = append(indices,
				a, c, b,
				b, c, d,
			)
		}
	}
	return indices
}
