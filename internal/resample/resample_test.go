package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

func patternBuffer(t *testing.T, width, height int) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(width, height)
	require.NoError(t, err)
	for i := range b.Pix {
		b.Pix[i] = uint8((i*31 + i/7) % 256)
	}
	return b
}

func uniformBuffer(t *testing.T, width, height int, px pixel.RGBA) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(width, height)
	require.NoError(t, err)
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = px.R, px.G, px.B, px.A
	}
	return b
}

func TestNearestNeighbor_SameSize(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 3}, {7, 5}, {33, 17}} {
		src := patternBuffer(t, dims[0], dims[1])
		out, err := NearestNeighbor(src, dims[0], dims[1])
		require.NoError(t, err)
		assert.True(t, src.Equal(out), "%dx%d", dims[0], dims[1])
	}
}

func TestNearestNeighbor_Upscale(t *testing.T) {
	src, err := pixel.FromPix(2, 1, []uint8{
		10, 20, 30, 40,
		50, 60, 70, 80,
	})
	require.NoError(t, err)

	out, err := NearestNeighbor(src, 4, 2)
	require.NoError(t, err)
	row := []uint8{
		10, 20, 30, 40, 10, 20, 30, 40,
		50, 60, 70, 80, 50, 60, 70, 80,
	}
	assert.Equal(t, append(append([]uint8{}, row...), row...), out.Pix)
}

func TestNearestNeighbor_Downscale(t *testing.T) {
	// 4x1 -> 2x1 picks source columns 0 and 2
	src, err := pixel.FromPix(4, 1, []uint8{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
		4, 4, 4, 4,
	})
	require.NoError(t, err)

	out, err := NearestNeighbor(src, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 1, 1, 1, 3, 3, 3, 3}, out.Pix)
}

func TestBilinear_Uniform(t *testing.T) {
	px := pixel.RGBA{R: 12, G: 200, B: 99, A: 180}
	src := uniformBuffer(t, 5, 4, px)

	for _, dims := range [][2]int{{1, 1}, {5, 4}, {13, 2}, {2, 9}} {
		out, err := BilinearInterpolate(src, dims[0], dims[1])
		require.NoError(t, err)
		require.Equal(t, uniformBuffer(t, dims[0], dims[1], px).Pix, out.Pix, "%dx%d", dims[0], dims[1])
	}
}

func TestBilinear_KnownRamp(t *testing.T) {
	src, err := pixel.FromPix(2, 1, []uint8{
		0, 0, 0, 0,
		200, 100, 40, 255,
	})
	require.NoError(t, err)

	// scale (2-1)/4 = 0.25 samples x = 0, 0.25, 0.5, 0.75
	out, err := BilinearInterpolate(src, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{
		0, 0, 0, 0,
		50, 25, 10, 64,
		100, 50, 20, 128,
		150, 75, 30, 191,
	}, out.Pix)
}

func TestBilinear_RoundsToNearest(t *testing.T) {
	src, err := pixel.FromPix(2, 1, []uint8{
		0, 0, 0, 255,
		100, 100, 100, 255,
	})
	require.NoError(t, err)

	// x = 1/3 and 2/3 give 33.3 and 66.7
	out, err := BilinearInterpolate(src, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), out.Pix[0])
	assert.Equal(t, uint8(33), out.Pix[4])
	assert.Equal(t, uint8(67), out.Pix[8])
}

func TestBilinear_VerticalBlend(t *testing.T) {
	src, err := pixel.FromPix(1, 2, []uint8{
		0, 0, 0, 255,
		80, 160, 240, 255,
	})
	require.NoError(t, err)

	out, err := BilinearInterpolate(src, 1, 2)
	require.NoError(t, err)
	// y = 0 and 0.5
	assert.Equal(t, []uint8{
		0, 0, 0, 255,
		40, 80, 120, 255,
	}, out.Pix)
}

func TestResample_InvalidTarget(t *testing.T) {
	src := patternBuffer(t, 4, 4)
	for _, m := range []Method{Nearest, Bilinear, Lanczos} {
		for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, -1}} {
			_, err := Resize(src, dims[0], dims[1], m)
			var de *pixel.DomainError
			require.ErrorAs(t, err, &de, "%v %dx%d", m, dims[0], dims[1])
			assert.Equal(t, "resample", de.Op)
		}
	}

	_, err := Resize(src, 2, 2, Method(42))
	require.Error(t, err)
}

func TestResample_InvalidSource(t *testing.T) {
	bad := &pixel.Buffer{Width: 3, Height: 3, Pix: make([]uint8, 10)}
	for _, m := range []Method{Nearest, Bilinear, Lanczos} {
		_, err := Resize(bad, 2, 2, m)
		var de *pixel.DomainError
		require.ErrorAs(t, err, &de, m.String())
	}
}

func TestResample_DoesNotMutateSource(t *testing.T) {
	src := patternBuffer(t, 6, 6)
	before := src.Clone()
	for _, m := range []Method{Nearest, Bilinear, Lanczos} {
		_, err := Resize(src, 9, 4, m)
		require.NoError(t, err)
	}
	assert.True(t, src.Equal(before))
}

func TestLanczos(t *testing.T) {
	px := pixel.RGBA{R: 90, G: 45, B: 180, A: 255}
	src := uniformBuffer(t, 16, 8, px)

	out, err := LanczosResize(src, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, out.Width)
	assert.Equal(t, 3, out.Height)
	for i := 0; i < len(out.Pix); i += 4 {
		assert.InDelta(t, px.R, out.Pix[i], 1)
		assert.InDelta(t, px.G, out.Pix[i+1], 1)
		assert.InDelta(t, px.B, out.Pix[i+2], 1)
		assert.InDelta(t, px.A, out.Pix[i+3], 1)
	}
}

func TestScale(t *testing.T) {
	src := patternBuffer(t, 5, 3)

	out, err := Scale(src, 0.5, Nearest)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Width)
	assert.Equal(t, 2, out.Height)

	out, err = Scale(src, 0.01, Bilinear)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Width)
	assert.Equal(t, 1, out.Height)

	for _, f := range []float64{0, -2} {
		_, err := Scale(src, f, Nearest)
		var de *pixel.DomainError
		require.ErrorAs(t, err, &de)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"nearest", Nearest},
		{"Nearest-Neighbor", Nearest},
		{"BILINEAR", Bilinear},
		{" lanczos ", Lanczos},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.want.String(), got.String())
	}

	_, err := ParseMethod("bicubic")
	assert.Error(t, err)
	assert.Equal(t, "Method(9)", Method(9).String())
}
