// Package texture decodes image files into the 8-bit single-channel rasters
// that terrain heightmaps are built from.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // BMP decoder registration

	"github.com/Faultbox/timejump/internal/logger"
)

// Decoding errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTruncated         = errors.New("truncated image data")
)

// Raster is a decoded single-channel 8-bit image in row-major order.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8 // len == Width*Height
}

// At returns the sample at column x, row y.
func (r *Raster) At(x, y int) uint8 {
	return r.Pix[y*r.Width+x]
}

// LoadRaster reads and decodes a heightmap file.
func LoadRaster(path string) (*Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := DecodeRaster(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return r, nil
}

// DecodeRaster decodes PNG, JPEG, GIF, BMP or TGA data into a grayscale
// raster. The name's extension selects TGA, which has no magic number;
// everything else is sniffed.
func DecodeRaster(name string, data []byte) (*Raster, error) {
	var (
		img    image.Image
		format string
		err    error
	)
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err = DecodeTGA(data)
		format = "tga"
	} else {
		img, format, err = image.Decode(bytes.NewReader(data))
		if errors.Is(err, image.ErrFormat) {
			err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
		}
	}
	if err != nil {
		return nil, err
	}

	r := ToRaster(img)
	logger.Debug("raster decoded",
		zap.String("name", name),
		zap.String("format", format),
		zap.Int("width", r.Width),
		zap.Int("height", r.Height))
	return r, nil
}

// ToRaster converts any image to luminance. Gray images are copied as-is,
// 16-bit gray keeps the high byte, and color images use the integer Rec.601
// weights (77R + 150G + 29B) >> 8 with alpha ignored.
func ToRaster(img image.Image) *Raster {
	b := img.Bounds()
	r := &Raster{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]uint8, b.Dx()*b.Dy()),
	}

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < r.Height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+r.Width]
			copy(r.Pix[y*r.Width:], row)
		}
		return r
	case *image.Gray16:
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				r.Pix[y*r.Width+x] = uint8(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return r
	case *image.NRGBA:
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				c := src.NRGBAAt(b.Min.X+x, b.Min.Y+y)
				r.Pix[y*r.Width+x] = luminance(c.R, c.G, c.B)
			}
		}
		return r
	}

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			r.Pix[y*r.Width+x] = luminance(c.R, c.G, c.B)
		}
	}
	return r
}

func luminance(r, g, b uint8) uint8 {
	return uint8((uint32(r)*77 + uint32(g)*150 + uint32(b)*29) >> 8)
}
