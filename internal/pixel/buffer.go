package pixel

import (
	"bytes"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Channels is the number of bytes per pixel in a Buffer.
const Channels = 4

// RGBA is a single non-premultiplied 8-bit pixel.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Buffer is a row-major RGBA pixel buffer.
//
// The zero value is not valid; use New, FromPix, or FromImage.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed (transparent black) buffer.
//
// Returns a *DomainError if either dimension is less than 1 or if the pixel
// count would overflow an int.
func New(width, height int) (*Buffer, error) {
	if err := checkDims("pixel", width, height); err != nil {
		return nil, err
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}, nil
}

// FromPix copies pix into a new buffer of the given dimensions.
//
// Returns a *DomainError if len(pix) disagrees with width*height*4.
func FromPix(width, height int, pix []uint8) (*Buffer, error) {
	if err := checkDims("pixel", width, height); err != nil {
		return nil, err
	}
	if want := width * height * Channels; len(pix) != want {
		return nil, Domainf("pixel", "buffer length %d does not match %dx%d (want %d)", len(pix), width, height, want)
	}
	out := make([]uint8, len(pix))
	copy(out, pix)
	return &Buffer{Width: width, Height: height, Pix: out}, nil
}

// FromImage converts any image.Image into a Buffer with non-premultiplied
// channels. The image bounds are translated so the result starts at (0,0).
func FromImage(img image.Image) (*Buffer, error) {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	if err := checkDims("pixel", b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	// imaging.Clone always returns a tightly packed image at the origin.
	return &Buffer{Width: b.Dx(), Height: b.Dy(), Pix: nrgba.Pix}, nil
}

// Validate reports whether b satisfies the buffer invariants.
func (b *Buffer) Validate() error {
	if b == nil {
		return Domainf("pixel", "nil buffer")
	}
	if err := checkDims("pixel", b.Width, b.Height); err != nil {
		return err
	}
	if want := b.Width * b.Height * Channels; len(b.Pix) != want {
		return Domainf("pixel", "buffer length %d does not match %dx%d (want %d)", len(b.Pix), b.Width, b.Height, want)
	}
	return nil
}

// Offset returns the index of the first byte of pixel (x, y). It does not
// check bounds.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// At returns the pixel at (x, y).
//
// Returns a *DomainError if the coordinate is outside the buffer.
func (b *Buffer) At(x, y int) (RGBA, error) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return RGBA{}, Domainf("pixel", "coordinates (%d,%d) outside %dx%d buffer", x, y, b.Width, b.Height)
	}
	i := b.Offset(x, y)
	return RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}, nil
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	out := make([]uint8, len(b.Pix))
	copy(out, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: out}
}

// Equal reports whether both buffers have the same dimensions and bytes.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.Width == o.Width && b.Height == o.Height && bytes.Equal(b.Pix, o.Pix)
}

// NRGBA wraps a copy of the buffer as an *image.NRGBA, suitable for the
// standard image encoders.
func (b *Buffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

// Clamp8 rounds v to the nearest integer and clamps it to [0,255].
func Clamp8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// ClampInt constrains val to [lo, hi].
func ClampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func checkDims(op string, width, height int) error {
	if width < 1 || height < 1 {
		return Domainf(op, "invalid dimensions %dx%d", width, height)
	}
	if width > math.MaxInt/Channels/height {
		return Domainf(op, "dimensions %dx%d overflow", width, height)
	}
	return nil
}
