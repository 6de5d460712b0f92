package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeTrueColor    = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeTrueColorRLE = 10 // RLE compressed true-color
	TGATypeGrayRLE      = 11 // RLE compressed grayscale
)

const tgaHeaderSize = 18

// DecodeTGA decodes a TGA image. Supported: uncompressed and RLE variants of
// 8-bit grayscale (returned as *image.Gray) and 24/32-bit true-color
// (returned as *image.NRGBA, since TGA alpha is straight, not premultiplied).
// Color-mapped files are rejected.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: TGA header", ErrTruncated)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped TGA", ErrUnsupportedFormat)
	}

	gray := imageType == TGATypeGray || imageType == TGATypeGrayRLE
	rle := imageType == TGATypeTrueColorRLE || imageType == TGATypeGrayRLE
	switch {
	case imageType != TGATypeTrueColor && imageType != TGATypeGray && !rle:
		return nil, fmt.Errorf("%w: TGA type %d", ErrUnsupportedFormat, imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("%w: grayscale TGA with %d bpp", ErrUnsupportedFormat, bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: true-color TGA with %d bpp", ErrUnsupportedFormat, bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: TGA image ID", ErrTruncated)
	}
	src := data[offset:]

	w := &tgaWriter{width: width, height: height, bytesPerPixel: bpp / 8, topToBottom: topToBottom}
	if gray {
		w.gray = image.NewGray(image.Rect(0, 0, width, height))
	} else {
		w.nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
	}

	var err error
	if rle {
		err = w.readRLE(src)
	} else {
		err = w.readRaw(src)
	}
	if err != nil {
		return nil, err
	}

	if gray {
		return w.gray, nil
	}
	return w.nrgba, nil
}

// tgaWriter places decoded pixels in file order, flipping bottom-up files.
type tgaWriter struct {
	width, height int
	bytesPerPixel int
	topToBottom   bool

	gray  *image.Gray
	nrgba *image.NRGBA
	next  int
}

func (w *tgaWriter) total() int { return w.width * w.height }

func (w *tgaWriter) put(px []byte) {
	x := w.next % w.width
	y := w.next / w.width
	if !w.topToBottom {
		y = w.height - 1 - y
	}
	w.next++

	if w.gray != nil {
		w.gray.SetGray(x, y, color.Gray{Y: px[0]})
		return
	}
	a := uint8(255)
	if w.bytesPerPixel == 4 {
		a = px[3]
	}
	// Stored as BGR(A).
	w.nrgba.SetNRGBA(x, y, color.NRGBA{R: px[2], G: px[1], B: px[0], A: a})
}

func (w *tgaWriter) readRaw(src []byte) error {
	need := w.total() * w.bytesPerPixel
	if len(src) < need {
		return fmt.Errorf("%w: TGA pixel data (%d of %d bytes)", ErrTruncated, len(src), need)
	}
	for i := 0; i < need; i += w.bytesPerPixel {
		w.put(src[i : i+w.bytesPerPixel])
	}
	return nil
}

func (w *tgaWriter) readRLE(src []byte) error {
	bpp := w.bytesPerPixel
	i := 0
	for w.next < w.total() {
		if i >= len(src) {
			return fmt.Errorf("%w: TGA RLE stream ended at pixel %d", ErrTruncated, w.next)
		}
		packet := src[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+bpp > len(src) {
				return fmt.Errorf("%w: TGA RLE packet", ErrTruncated)
			}
			px := src[i : i+bpp]
			i += bpp
			for n := 0; n < count && w.next < w.total(); n++ {
				w.put(px)
			}
			continue
		}

		for n := 0; n < count && w.next < w.total(); n++ {
			if i+bpp > len(src) {
				return fmt.Errorf("%w: TGA raw packet", ErrTruncated)
			}
			w.put(src[i : i+bpp])
			i += bpp
		}
	}
	return nil
}
