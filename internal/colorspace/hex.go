package colorspace

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// ParseHex parses "#RRGGBB" or "#RGB" (the leading '#' is optional).
//
// Returns a *pixel.DomainError if the string is not a valid hex color.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return RGB{}, pixel.Domainf("colorspace", "invalid hex color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, pixel.Domainf("colorspace", "invalid hex color %q: %v", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Colorful returns c as a go-colorful color.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex formats c as "#RRGGBB".
func (c RGB) Hex() string {
	return strings.ToUpper(c.Colorful().Hex())
}

// Linear holds gamma-decoded sRGB channels in [0,1].
type Linear struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Description is one color in every space this package converts to.
type Description struct {
	Hex       string  `json:"hex"`
	RGB       RGB     `json:"rgb"`
	Linear    Linear  `json:"linear_rgb"`
	XYZ       XYZ     `json:"xyz"`
	Lab       Lab     `json:"lab"`
	LCH       LCH     `json:"lch"`
	Oklch     Oklch   `json:"oklch"`
	Luminance float64 `json:"luminance"`
}

// Describe converts c into every supported color space.
func Describe(c RGB) Description {
	xyz := RGBToXYZ(c)
	lab := XYZToLab(xyz)
	return Description{
		Hex:       c.Hex(),
		RGB:       c,
		Linear:    Linear{R: SRGBToLinear(c.R), G: SRGBToLinear(c.G), B: SRGBToLinear(c.B)},
		XYZ:       xyz,
		Lab:       lab,
		LCH:       LabToLCH(lab),
		Oklch:     RGBToOklch(c),
		Luminance: Luminance(c),
	}
}
