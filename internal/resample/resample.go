// Package resample rescales pixel buffers to arbitrary dimensions.
//
// Two pixel-exact interpolators are implemented here, nearest-neighbour and
// bilinear; Lanczos is delegated to github.com/disintegration/imaging for
// higher quality downscaling.
package resample

import (
	"fmt"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Method selects an interpolation strategy.
type Method int

const (
	Nearest Method = iota
	Bilinear
	Lanczos
)

func (m Method) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case Lanczos:
		return "lanczos"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts "nearest", "bilinear" or "lanczos" (case-insensitive).
// "nearest-neighbor" and "nearest_neighbor" are aliases for "nearest".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest", "nearest-neighbor", "nearest_neighbor":
		return Nearest, nil
	case "bilinear":
		return Bilinear, nil
	case "lanczos":
		return Lanczos, nil
	default:
		return 0, fmt.Errorf("unknown resample method: %s", s)
	}
}

// Resize rescales src to width x height using m.
func Resize(src *pixel.Buffer, width, height int, m Method) (*pixel.Buffer, error) {
	switch m {
	case Nearest:
		return NearestNeighbor(src, width, height)
	case Bilinear:
		return BilinearInterpolate(src, width, height)
	case Lanczos:
		return LanczosResize(src, width, height)
	default:
		return nil, pixel.Domainf("resample", "unknown method %v", m)
	}
}

// Scale rescales src by factor, rounding each dimension and keeping it at
// least 1 pixel.
func Scale(src *pixel.Buffer, factor float64, m Method) (*pixel.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, pixel.Domainf("resample", "scale factor %v must be positive and finite", factor)
	}
	w := int(math.Max(1, math.Round(float64(src.Width)*factor)))
	h := int(math.Max(1, math.Round(float64(src.Height)*factor)))
	return Resize(src, w, h, m)
}

func checkTarget(src *pixel.Buffer, width, height int) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if width < 1 || height < 1 {
		return pixel.Domainf("resample", "target dimensions %dx%d must be at least 1x1", width, height)
	}
	return nil
}

func prepare(src *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	if err := checkTarget(src, width, height); err != nil {
		return nil, err
	}
	return pixel.New(width, height)
}

// NearestNeighbor copies, for every target pixel (tx, ty), the source pixel
// at (floor(tx*srcW/width), floor(ty*srcH/height)). All four channels are
// copied verbatim. The index math is done in integers, so resizing to the
// source dimensions returns an identical buffer.
func NearestNeighbor(src *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	dst, err := prepare(src, width, height)
	if err != nil {
		return nil, err
	}

	parallel.Line(height, func(start, end int) {
		for ty := start; ty < end; ty++ {
			sy := ty * src.Height / height
			for tx := 0; tx < width; tx++ {
				sx := tx * src.Width / width
				si := src.Offset(sx, sy)
				di := dst.Offset(tx, ty)
				copy(dst.Pix[di:di+pixel.Channels], src.Pix[si:si+pixel.Channels])
			}
		}
	})
	return dst, nil
}

// BilinearInterpolate blends the four source pixels around each target
// pixel, alpha included.
//
// The continuous source coordinate is (tx*(srcW-1)/width, ty*(srcH-1)/height).
// This scale differs from NearestNeighbor's srcW/width, so the last target
// column never quite reaches the last source column; outputs depend on that
// grid. Blended values are rounded to the nearest integer and clamped to
// [0,255].
func BilinearInterpolate(src *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	dst, err := prepare(src, width, height)
	if err != nil {
		return nil, err
	}

	scaleX := float64(src.Width-1) / float64(width)
	scaleY := float64(src.Height-1) / float64(height)

	parallel.Line(height, func(start, end int) {
		for ty := start; ty < end; ty++ {
			sy := float64(ty) * scaleY
			y0 := pixel.ClampInt(int(math.Floor(sy)), 0, src.Height-1)
			y1 := pixel.ClampInt(y0+1, 0, src.Height-1)
			wy := sy - math.Floor(sy)

			for tx := 0; tx < width; tx++ {
				sx := float64(tx) * scaleX
				x0 := pixel.ClampInt(int(math.Floor(sx)), 0, src.Width-1)
				x1 := pixel.ClampInt(x0+1, 0, src.Width-1)
				wx := sx - math.Floor(sx)

				tl := src.Offset(x0, y0)
				tr := src.Offset(x1, y0)
				bl := src.Offset(x0, y1)
				br := src.Offset(x1, y1)
				di := dst.Offset(tx, ty)

				for c := 0; c < pixel.Channels; c++ {
					top := float64(src.Pix[tl+c])*(1-wx) + float64(src.Pix[tr+c])*wx
					bottom := float64(src.Pix[bl+c])*(1-wx) + float64(src.Pix[br+c])*wx
					dst.Pix[di+c] = pixel.Clamp8(top*(1-wy) + bottom*wy)
				}
			}
		}
	})
	return dst, nil
}

// LanczosResize resamples with a Lanczos-3 filter via imaging.Resize.
func LanczosResize(src *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	if err := checkTarget(src, width, height); err != nil {
		return nil, err
	}
	out := imaging.Resize(src.NRGBA(), width, height, imaging.Lanczos)
	return pixel.FromImage(out)
}
