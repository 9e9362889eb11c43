package colorspace

import (
	"math"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// D65 reference white in XYZ, scaled so that Y = 100 (2° observer).
const (
	WhiteX = 95.047
	WhiteY = 100.0
	WhiteZ = 108.883
)

// RGB is a gamma-encoded sRGB color with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// XYZ is a CIE 1931 tristimulus value under D65, scaled so white has Y = 100.
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lab is a CIE L*a*b* color. L ranges over [0,100]; a and b are unbounded
// but stay within roughly ±128 for sRGB inputs.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// LCH is the cylindrical form of Lab: lightness, chroma, hue in degrees [0,360).
type LCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// Oklch is the cylindrical form of OkLab with L and C scaled by 100, so L
// ranges over [0,100] and H is in degrees [0,360).
type Oklch struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// NewRGB builds an RGB from untyped integer channels.
//
// Returns a *pixel.DomainError if any channel is outside [0,255].
func NewRGB(r, g, b int) (RGB, error) {
	for _, c := range [...]struct {
		name string
		v    int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if c.v < 0 || c.v > 255 {
			return RGB{}, pixel.Domainf("colorspace", "%s channel %d outside [0,255]", c.name, c.v)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// SRGBToLinear gamma-decodes an 8-bit sRGB channel into [0,1] using the
// piecewise sRGB transfer curve.
func SRGBToLinear(c uint8) float64 {
	v := float64(c) / 255
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// RGBToXYZ converts an sRGB color to CIE XYZ under D65, scaled by 100.
func RGBToXYZ(c RGB) XYZ {
	r := SRGBToLinear(c.R)
	g := SRGBToLinear(c.G)
	b := SRGBToLinear(c.B)

	return XYZ{
		X: (r*0.4124564 + g*0.3575761 + b*0.1804375) * 100,
		Y: (r*0.2126729 + g*0.7151522 + b*0.0721750) * 100,
		Z: (r*0.0193339 + g*0.1191920 + b*0.9503041) * 100,
	}
}

// labDelta is the CIE Lab linear-segment breakpoint 6/29.
const labDelta = 6.0 / 29.0

func labF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

// XYZToLab converts XYZ (D65, Y scaled to 100) to CIE L*a*b*.
func XYZToLab(v XYZ) Lab {
	fx := labF(v.X / WhiteX)
	fy := labF(v.Y / WhiteY)
	fz := labF(v.Z / WhiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToLCH converts Lab to its cylindrical form. Hue is normalized to [0,360).
func LabToLCH(v Lab) LCH {
	c, h := polar(v.A, v.B)
	return LCH{L: v.L, C: c, H: h}
}

// RGBToLab is RGBToXYZ followed by XYZToLab.
func RGBToLab(c RGB) Lab {
	return XYZToLab(RGBToXYZ(c))
}

// RGBToLCH is RGBToLab followed by LabToLCH.
func RGBToLCH(c RGB) LCH {
	return LabToLCH(RGBToLab(c))
}

// RGBToOklch converts an sRGB color to OkLCH.
//
// The conversion linearizes the channels, maps linear RGB to LMS cone
// responses, takes the cube root of each, maps the result to OkLab, and then
// to polar form. L and C are multiplied by 100.
func RGBToOklch(c RGB) Oklch {
	r := SRGBToLinear(c.R)
	g := SRGBToLinear(c.G)
	b := SRGBToLinear(c.B)

	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	okL := 0.2104542553*l + 0.7936177850*m - 0.0040720468*s
	okA := 1.9779984951*l - 2.4285922050*m + 0.4505937099*s
	okB := 0.0259040371*l + 0.7827717662*m - 0.8086757660*s

	chroma, hue := polar(okA, okB)
	return Oklch{L: okL * 100, C: chroma * 100, H: hue}
}

// polar returns the magnitude and the angle in degrees, normalized to [0,360).
func polar(a, b float64) (float64, float64) {
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	// -0 and rounding of tiny negative angles can land exactly on 360
	if h >= 360 {
		h -= 360
	}
	return math.Hypot(a, b), h
}
