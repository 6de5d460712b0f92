// Package export writes baked terrain artifacts: Wavefront OBJ meshes, YAML
// placement manifests and shaded PNG previews.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/timejump/internal/engine/terrain"
)

// ErrEmptyMesh is returned when there is nothing to write.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// WriteOBJ writes mesh as a single Wavefront OBJ object with positions,
// texture coordinates and normals sharing one index per vertex.
func WriteOBJ(w io.Writer, name string, mesh *terrain.MeshGeometry) error {
	if mesh == nil || mesh.TriangleCount() == 0 {
		return ErrEmptyMesh
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", mesh.VertexCount(), mesh.TriangleCount())
	fmt.Fprintf(bw, "o %s\n", name)

	for _, p := range mesh.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, uv := range mesh.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
	}
	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}

	// OBJ indices are 1-based.
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i]+1, mesh.Indices[i+1]+1, mesh.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

// SaveOBJ writes mesh to path, creating parent directories as needed.
func SaveOBJ(path, name string, mesh *terrain.MeshGeometry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := WriteOBJ(file, name, mesh); err != nil {
		return fmt.Errorf("writing OBJ: %w", err)
	}
	return file.Close()
}
