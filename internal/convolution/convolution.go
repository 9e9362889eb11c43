// Package convolution applies 3x3 weighted-sum kernels to pixel buffers.
//
// Neighbours outside the buffer are replaced by the nearest edge pixel
// (coordinates are clamped to [0, dim-1]). Only R, G and B are filtered;
// alpha is copied from the centre pixel.
package convolution

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Kernel is a 3x3 grid of weights in row-major order. Index 4 is the centre.
type Kernel [9]float64

// Sum returns the sum of all weights.
func (k Kernel) Sum() float64 {
	var s float64
	for _, w := range k {
		s += w
	}
	return s
}

// Normalized returns k scaled so its weights sum to 1. A kernel whose
// weights sum to zero (edge detectors) is returned unchanged.
func (k Kernel) Normalized() Kernel {
	s := k.Sum()
	if s == 0 {
		return k
	}
	var out Kernel
	for i, w := range k {
		out[i] = w / s
	}
	return out
}

// Validate reports a *pixel.DomainError if any weight is NaN or infinite.
func (k Kernel) Validate() error {
	for i, w := range k {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return pixel.Domainf("convolution", "kernel weight %d is not finite (%v)", i, w)
		}
	}
	return nil
}

// Apply convolves src with k and returns a new buffer of the same size.
//
// Each output R, G and B is the weighted sum of the 3x3 neighbourhood,
// rounded to the nearest integer and clamped to [0,255]. The source is
// only read, so src and the result never alias.
//
// Returns a *pixel.DomainError if src is invalid or k has non-finite weights.
func Apply(src *pixel.Buffer, k Kernel) (*pixel.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}

	dst, err := pixel.New(src.Width, src.Height)
	if err != nil {
		return nil, err
	}

	width, height := src.Width, src.Height
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				var r, g, b float64
				for ky := -1; ky <= 1; ky++ {
					py := pixel.ClampInt(y+ky, 0, height-1)
					for kx := -1; kx <= 1; kx++ {
						px := pixel.ClampInt(x+kx, 0, width-1)
						i := src.Offset(px, py)
						w := k[(ky+1)*3+(kx+1)]
						r += float64(src.Pix[i]) * w
						g += float64(src.Pix[i+1]) * w
						b += float64(src.Pix[i+2]) * w
					}
				}

				idx := dst.Offset(x, y)
				dst.Pix[idx] = pixel.Clamp8(r)
				dst.Pix[idx+1] = pixel.Clamp8(g)
				dst.Pix[idx+2] = pixel.Clamp8(b)
				dst.Pix[idx+3] = src.Pix[idx+3]
			}
		}
	})

	return dst, nil
}
