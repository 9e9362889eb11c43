// Package gradation maps pixel channels through a tone curve.
//
// A Curve is two control points (X1,Y1) and (X2,Y2). Inputs left of X1 map
// to Y1, inputs right of X2 map to Y2, and inputs in between are linearly
// interpolated. The curve is baked into a 256-entry LUT once and then
// applied per channel.
package gradation

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// LUT maps an 8-bit input value (the index) to an 8-bit output value.
type LUT [256]uint8

// Curve is a two-point piecewise-linear tone curve. All coordinates are in
// [0,255] and X1 must be strictly less than X2.
type Curve struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Identity is the curve whose LUT maps every value to itself.
func Identity() Curve { return Curve{X1: 0, Y1: 0, X2: 255, Y2: 255} }

// Invert is the curve that produces a photographic negative.
func Invert() Curve { return Curve{X1: 0, Y1: 255, X2: 255, Y2: 0} }

func (c Curve) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", c.X1, c.Y1, c.X2, c.Y2)
}

// Validate rejects coordinates outside [0,255] and curves with X1 >= X2.
// X1 == X2 would divide by zero, and X1 > X2 leaves no interpolated segment.
func (c Curve) Validate() error {
	for _, v := range [...]struct {
		name string
		val  int
	}{{"x1", c.X1}, {"y1", c.Y1}, {"x2", c.X2}, {"y2", c.Y2}} {
		if v.val < 0 || v.val > 255 {
			return pixel.Domainf("gradation", "%s=%d outside [0,255]", v.name, v.val)
		}
	}
	if c.X1 >= c.X2 {
		return pixel.Domainf("gradation", "degenerate curve %s: x1 must be less than x2", c)
	}
	return nil
}

// GenerateLUT bakes c into a lookup table.
//
// Returns a *pixel.DomainError if the curve fails Validate.
func GenerateLUT(c Curve) (LUT, error) {
	var lut LUT
	if err := c.Validate(); err != nil {
		return lut, err
	}

	for i := 0; i < 256; i++ {
		var v float64
		switch {
		case i < c.X1:
			v = float64(c.Y1)
		case i > c.X2:
			v = float64(c.Y2)
		default:
			t := float64(i-c.X1) / float64(c.X2-c.X1)
			v = float64(c.Y1) + t*float64(c.Y2-c.Y1)
		}
		lut[i] = pixel.Clamp8(math.Round(v))
	}
	return lut, nil
}

// Compose returns the table equivalent to applying l and then next.
func (l LUT) Compose(next LUT) LUT {
	var out LUT
	for i, v := range l {
		out[i] = next[v]
	}
	return out
}

// Apply replaces R, G and B of every pixel with lut[channel], leaving alpha
// untouched, and returns the result as a new buffer.
func Apply(src *pixel.Buffer, lut LUT) (*pixel.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	dst, err := pixel.New(src.Width, src.Height)
	if err != nil {
		return nil, err
	}

	rowBytes := src.Width * pixel.Channels
	parallel.Line(src.Height, func(start, end int) {
		for i := start * rowBytes; i < end*rowBytes; i += pixel.Channels {
			dst.Pix[i] = lut[src.Pix[i]]
			dst.Pix[i+1] = lut[src.Pix[i+1]]
			dst.Pix[i+2] = lut[src.Pix[i+2]]
			dst.Pix[i+3] = src.Pix[i+3]
		}
	})
	return dst, nil
}
