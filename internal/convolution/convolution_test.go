package convolution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// gradientBuffer builds a buffer whose channels vary with position so that
// neighbour mix-ups show up in the output.
func gradientBuffer(t *testing.T, width, height int) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := b.Offset(x, y)
			b.Pix[i] = uint8((x * 37) % 256)
			b.Pix[i+1] = uint8((y * 53) % 256)
			b.Pix[i+2] = uint8((x*y*11 + 7) % 256)
			b.Pix[i+3] = uint8(255 - (x+y)%64)
		}
	}
	return b
}

func TestApply_Identity(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {3, 1}, {1, 4}, {17, 9}, {64, 48}} {
		src := gradientBuffer(t, dims[0], dims[1])
		out, err := Apply(src, Identity)
		require.NoError(t, err)
		assert.True(t, src.Equal(out), "identity kernel changed %dx%d buffer", dims[0], dims[1])
	}
}

func TestApply_DoesNotAlias(t *testing.T) {
	src := gradientBuffer(t, 8, 8)
	before := src.Clone()

	out, err := Apply(src, BoxBlur)
	require.NoError(t, err)

	assert.True(t, src.Equal(before), "source buffer was mutated")
	assert.NotSame(t, &src.Pix[0], &out.Pix[0])
}

func TestApply_EdgeClamp(t *testing.T) {
	// a single pixel replicates itself into every neighbour slot
	src, err := pixel.FromPix(1, 1, []uint8{90, 120, 30, 200})
	require.NoError(t, err)

	out, err := Apply(src, BoxBlur)
	require.NoError(t, err)
	assert.Equal(t, []uint8{90, 120, 30, 200}, out.Pix)
}

func TestApply_KnownValues(t *testing.T) {
	// 3x1 row: 0, 90, 180 in red; clamped edges repeat the end pixels
	src, err := pixel.FromPix(3, 1, []uint8{
		0, 0, 0, 255,
		90, 0, 0, 128,
		180, 0, 0, 0,
	})
	require.NoError(t, err)

	out, err := Apply(src, BoxBlur)
	require.NoError(t, err)

	// x=0: columns (0,0,90) in each of 3 rows -> 270/9 = 30
	// x=1: (0,90,180) -> 810/9 = 90
	// x=2: (90,180,180) -> 1350/9 = 150
	assert.Equal(t, uint8(30), out.Pix[0])
	assert.Equal(t, uint8(90), out.Pix[4])
	assert.Equal(t, uint8(150), out.Pix[8])

	// alpha is copied from the centre pixel
	assert.Equal(t, uint8(255), out.Pix[3])
	assert.Equal(t, uint8(128), out.Pix[7])
	assert.Equal(t, uint8(0), out.Pix[11])
}

func TestApply_ClampsAndRounds(t *testing.T) {
	src, err := pixel.FromPix(2, 1, []uint8{
		200, 10, 0, 255,
		100, 10, 0, 255,
	})
	require.NoError(t, err)

	double := Kernel{0, 0, 0, 0, 2, 0, 0, 0, 0}
	out, err := Apply(src, double)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.Pix[0], "400 clamps to 255")
	assert.Equal(t, uint8(200), out.Pix[4])

	negate := Kernel{0, 0, 0, 0, -1, 0, 0, 0, 0}
	out, err = Apply(src, negate)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), out.Pix[0], "negative clamps to 0")

	half := Kernel{0, 0, 0, 0, 0.25, 0, 0, 0, 0}
	out, err = Apply(src, half)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), out.Pix[1], "2.5 rounds up to 3")
}

func TestApply_UniformBufferUnderSharpen(t *testing.T) {
	src, err := pixel.New(5, 5)
	require.NoError(t, err)
	for i := range src.Pix {
		src.Pix[i] = 77
	}

	out, err := Apply(src, Sharpen)
	require.NoError(t, err)
	assert.True(t, src.Equal(out), "a kernel summing to 1 must keep a flat field flat")

	out, err = Apply(src, EdgeDetect)
	require.NoError(t, err)
	for i := 0; i < len(out.Pix); i += 4 {
		require.Equal(t, uint8(0), out.Pix[i])
		require.Equal(t, uint8(77), out.Pix[i+3])
	}
}

func TestApply_InvalidInput(t *testing.T) {
	_, err := Apply(&pixel.Buffer{Width: 2, Height: 2, Pix: make([]uint8, 3)}, Identity)
	var de *pixel.DomainError
	require.ErrorAs(t, err, &de)

	src := gradientBuffer(t, 2, 2)
	bad := Identity
	bad[3] = math.NaN()
	_, err = Apply(src, bad)
	require.ErrorAs(t, err, &de)
	assert.Contains(t, err.Error(), "weight 3")

	bad = Identity
	bad[8] = math.Inf(-1)
	_, err = Apply(src, bad)
	require.ErrorAs(t, err, &de)
}

func TestKernel_SumAndNormalized(t *testing.T) {
	assert.InDelta(t, 1.0, BoxBlur.Sum(), 1e-12)
	assert.InDelta(t, 1.0, GaussianBlur.Sum(), 1e-12)
	assert.Equal(t, 0.0, EdgeDetect.Sum())

	k := Kernel{1, 2, 1, 2, 4, 2, 1, 2, 1}.Normalized()
	for i := range k {
		assert.InDelta(t, GaussianBlur[i], k[i], 1e-12)
	}
	assert.Equal(t, SobelX, SobelX.Normalized())
}

func TestPreset(t *testing.T) {
	k, err := Preset("Box-Blur")
	require.NoError(t, err)
	assert.Equal(t, BoxBlur, k)

	for _, name := range Presets() {
		_, err := Preset(name)
		assert.NoError(t, err, name)
	}

	_, err = Preset("motion")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kernel preset")
}
