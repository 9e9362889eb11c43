package colorspace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

var (
	white = RGB{255, 255, 255}
	black = RGB{0, 0, 0}
	red   = RGB{255, 0, 0}
	blue  = RGB{0, 0, 255}
)

func TestSRGBToLinear(t *testing.T) {
	assert.Equal(t, 0.0, SRGBToLinear(0))
	assert.InDelta(t, 1.0, SRGBToLinear(255), 1e-6)

	// 10/255 = 0.0392 sits on the linear segment
	assert.InDelta(t, 10.0/255/12.92, SRGBToLinear(10), 1e-12)
	// mid-gray is around 0.2158 after decoding
	assert.InDelta(t, 0.2158, SRGBToLinear(128), 1e-4)

	prev := -1.0
	for i := 0; i < 256; i++ {
		v := SRGBToLinear(uint8(i))
		require.Greater(t, v, prev, "curve must be strictly increasing at %d", i)
		prev = v
	}
}

func TestRGBToXYZ_WhitePoint(t *testing.T) {
	xyz := RGBToXYZ(white)
	assert.InDelta(t, WhiteX, xyz.X, 0.01)
	assert.InDelta(t, WhiteY, xyz.Y, 0.01)
	assert.InDelta(t, WhiteZ, xyz.Z, 0.01)

	assert.Equal(t, XYZ{}, RGBToXYZ(black))
}

func TestXYZToLab_WhitePoint(t *testing.T) {
	lab := XYZToLab(XYZ{WhiteX, WhiteY, WhiteZ})
	assert.InDelta(t, 100, lab.L, 1e-9)
	assert.InDelta(t, 0, lab.A, 1e-9)
	assert.InDelta(t, 0, lab.B, 1e-9)

	// the linear segment near black
	lab = XYZToLab(XYZ{})
	assert.InDelta(t, 0, lab.L, 1e-9)
}

func TestRGBToLab_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		c       RGB
		l, a, b float64
	}{
		{"red", red, 53.24, 80.09, 67.20},
		{"blue", blue, 32.30, 79.19, -107.86},
		{"green", RGB{0, 255, 0}, 87.73, -86.18, 83.18},
		{"gray", RGB{128, 128, 128}, 53.59, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lab := RGBToLab(tt.c)
			assert.InDelta(t, tt.l, lab.L, 0.05)
			assert.InDelta(t, tt.a, lab.A, 0.05)
			assert.InDelta(t, tt.b, lab.B, 0.05)
		})
	}
}

func TestRGBToLab_MatchesColorful(t *testing.T) {
	for r := 0; r < 256; r += 51 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 51 {
				c := RGB{uint8(r), uint8(g), uint8(b)}
				got := RGBToLab(c)
				l, a, bb := c.Colorful().Lab()
				assert.InDelta(t, l*100, got.L, 0.1, "L for %v", c)
				assert.InDelta(t, a*100, got.A, 0.1, "a for %v", c)
				assert.InDelta(t, bb*100, got.B, 0.1, "b for %v", c)
			}
		}
	}
}

func TestLabToLCH(t *testing.T) {
	lch := LabToLCH(Lab{L: 50, A: 0, B: 10})
	assert.InDelta(t, 10, lch.C, 1e-9)
	assert.InDelta(t, 90, lch.H, 1e-9)

	// negative angles wrap into [0,360)
	lch = LabToLCH(Lab{L: 50, A: 0, B: -10})
	assert.InDelta(t, 270, lch.H, 1e-9)

	lch = RGBToLCH(red)
	assert.InDelta(t, 104.55, lch.C, 0.05)
	assert.InDelta(t, 40.0, lch.H, 0.05)

	lch = RGBToLCH(blue)
	assert.InDelta(t, 306.28, lch.H, 0.05)
}

func TestLabToLCH_HueRange(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for b := 0; b < 256; b += 15 {
			lch := RGBToLCH(RGB{uint8(r), 40, uint8(b)})
			assert.GreaterOrEqual(t, lch.H, 0.0)
			assert.Less(t, lch.H, 360.0)
			assert.GreaterOrEqual(t, lch.C, 0.0)
		}
	}
}

func TestRGBToOklch(t *testing.T) {
	w := RGBToOklch(white)
	assert.InDelta(t, 100, w.L, 0.01)
	assert.InDelta(t, 0, w.C, 0.01)

	k := RGBToOklch(black)
	assert.InDelta(t, 0, k.L, 1e-9)
	assert.InDelta(t, 0, k.C, 1e-9)

	r := RGBToOklch(red)
	assert.InDelta(t, 62.80, r.L, 0.05)
	assert.InDelta(t, 25.77, r.C, 0.05)
	assert.InDelta(t, 29.23, r.H, 0.1)

	b := RGBToOklch(blue)
	assert.InDelta(t, 45.20, b.L, 0.05)
	assert.InDelta(t, 31.32, b.C, 0.05)
	assert.InDelta(t, 264.05, b.H, 0.1)
}

func TestNewRGB(t *testing.T) {
	c, err := NewRGB(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, RGB{1, 2, 3}, c)

	tests := []struct {
		name    string
		r, g, b int
		msg     string
	}{
		{"red too large", 256, 0, 0, "red channel 256"},
		{"green negative", 0, -1, 0, "green channel -1"},
		{"blue too large", 0, 0, 1000, "blue channel 1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRGB(tt.r, tt.g, tt.b)
			var de *pixel.DomainError
			require.True(t, errors.As(err, &de))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#FF8040", RGB{255, 128, 64}},
		{"ff8040", RGB{255, 128, 64}},
		{"#fff", RGB{255, 255, 255}},
		{" #000000 ", RGB{0, 0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#12", "#GGGGGG", "#1234567"} {
		_, err := ParseHex(bad)
		var de *pixel.DomainError
		assert.True(t, errors.As(err, &de), "ParseHex(%q) should fail with DomainError", bad)
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#FF8040", RGB{255, 128, 64}.Hex())
	assert.Equal(t, "#000000", black.Hex())
}

func TestDescribe(t *testing.T) {
	d := Describe(red)
	assert.Equal(t, "#FF0000", d.Hex)
	assert.Equal(t, red, d.RGB)
	assert.InDelta(t, 1.0, d.Linear.R, 1e-9)
	assert.Equal(t, RGBToLab(red), d.Lab)
	assert.Equal(t, RGBToOklch(red), d.Oklch)
	assert.InDelta(t, 0.2126, d.Luminance, 1e-9)
}
