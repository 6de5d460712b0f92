package terrain

import (
	"errors"
	"fmt"
	gomath "math"
)

// ErrInvalidRaster is returned when a raster cannot back a height field:
// a dimension of one or less, or a buffer whose length is not width*height.
var ErrInvalidRaster = errors.New("invalid heightmap raster")

// HeightField is an immutable grid of normalized heights in [0,1] mapped onto
// a world-space footprint centred on the origin.
//
// Sample (col,row) lives at samples[row*width+col]; (0,0) sits at the world
// corner (-SizeX/2, -SizeZ/2).
type HeightField struct {
	width   int
	height  int
	samples []float32

	sizeX  float32
	sizeZ  float32
	scaleY float32
}

// LoadHeightField normalizes an 8-bit single-channel raster into a height
// field. Each byte v becomes v/255. The footprint is sizeX by sizeZ world
// units and heights are multiplied by scaleY on query.
func LoadHeightField(raster []uint8, w, h int, sizeX, sizeZ, scaleY float32) (*HeightField, error) {
	if w <= 1 || h <= 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidRaster, w, h)
	}
	if len(raster) != w*h {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrInvalidRaster, len(raster), w*h, w, h)
	}
	if !(sizeX > 0) || !(sizeZ > 0) || !(scaleY > 0) {
		return nil, fmt.Errorf("%w: world scale (%g, %g, %g) must be positive", ErrInvalidRaster, sizeX, sizeZ, scaleY)
	}

	samples := make([]float32, len(raster))
	for i, v := range raster {
		samples[i] = float32(v) / 255.0
	}

	return &HeightField{
		width:   w,
		height:  h,
		samples: samples,
		sizeX:   sizeX,
		sizeZ:   sizeZ,
		scaleY:  scaleY,
	}, nil
}

// Width returns the number of sample columns.
func (hf *HeightField) Width() int { return hf.width }

// Height returns the number of sample rows.
func (hf *HeightField) Height() int { return hf.height }

// SizeX returns the world-space extent along X.
func (hf *HeightField) SizeX() float32 { return hf.sizeX }

// SizeZ returns the world-space extent along Z.
func (hf *HeightField) SizeZ() float32 { return hf.sizeZ }

// ScaleY returns the world-space height of a sample of 1.0.
func (hf *HeightField) ScaleY() float32 { return hf.scaleY }

// Sample returns the raw normalized sample at grid column i, row j.
// Coordinates are not bounds-checked beyond the slice access.
func (hf *HeightField) Sample(i, j int) float32 {
	return hf.samples[j*hf.width+i]
}

// Query returns the bilinearly interpolated world-space height at (worldX,
// worldZ). The boolean is false when the point lies outside the footprint;
// the boundary itself is inside. Query never mutates and is safe to call
// from multiple goroutines.
func (hf *HeightField) Query(worldX, worldZ float32) (float32, bool) {
	sx, sz := float64(hf.sizeX), float64(hf.sizeZ)
	u := (float64(worldX) + sx/2) / sx
	v := (float64(worldZ) + sz/2) / sz
	// Negated comparisons also reject NaN.
	if !(u >= 0 && u <= 1 && v >= 0 && v <= 1) {
		return 0, false
	}

	fx := u * float64(hf.width-1)
	fz := v * float64(hf.height-1)

	x0 := int(gomath.Floor(fx))
	z0 := int(gomath.Floor(fz))
	x1 := min(x0+1, hf.width-1)
	z1 := min(z0+1, hf.height-1)
	tx := fx - float64(x0)
	tz := fz - float64(z0)

	h00 := float64(hf.Sample(x0, z0))
	h10 := float64(hf.Sample(x1, z0))
	h01 := float64(hf.Sample(x0, z1))
	h11 := float64(hf.Sample(x1, z1))

	near := h00*(1-tx) + h10*tx
	far := h01*(1-tx) + h11*tx
	h := near*(1-tz) + far*tz

	return float32(h * float64(hf.scaleY)), true
}

// GridToWorld returns the world X/Z of grid vertex (i, j).
func (hf *HeightField) GridToWorld(i, j int) (float32, float32) {
	x := (float32(i)/float32(hf.width-1) - 0.5) * hf.sizeX
	z := (float32(j)/float32(hf.height-1) - 0.5) * hf.sizeZ
	return x, z
}

// Contains reports whether (worldX, worldZ) lies on the footprint.
func (hf *HeightField) Contains(worldX, worldZ float32) bool {
	_, ok := hf.Query(worldX, worldZ)
	return ok
}
