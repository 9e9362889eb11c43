package pixel

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b, err := New(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 2, b.Height)
	assert.Len(t, b.Pix, 3*2*4)
	require.NoError(t, b.Validate())
}

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 1},
		{"zero height", 1, 0},
		{"negative", -3, 4},
		{"overflow", math.MaxInt / 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height)
			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "pixel", de.Op)
		})
	}
}

func TestFromPix(t *testing.T) {
	src := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	b, err := FromPix(2, 1, src)
	require.NoError(t, err)

	// the buffer owns its own copy
	src[0] = 99
	assert.Equal(t, uint8(1), b.Pix[0])

	_, err = FromPix(2, 2, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestValidate(t *testing.T) {
	var nilBuf *Buffer
	require.Error(t, nilBuf.Validate())

	bad := &Buffer{Width: 2, Height: 2, Pix: make([]uint8, 15)}
	require.Error(t, bad.Validate())

	ok := &Buffer{Width: 2, Height: 2, Pix: make([]uint8, 16)}
	require.NoError(t, ok.Validate())
}

func TestAt(t *testing.T) {
	b, err := FromPix(2, 1, []uint8{10, 20, 30, 40, 50, 60, 70, 80})
	require.NoError(t, err)

	px, err := b.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, RGBA{50, 60, 70, 80}, px)

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 1}} {
		_, err := b.At(c[0], c[1])
		assert.Error(t, err, "At(%d,%d)", c[0], c[1])
	}
}

func TestCloneAndEqual(t *testing.T) {
	b, err := FromPix(1, 1, []uint8{1, 2, 3, 4})
	require.NoError(t, err)

	c := b.Clone()
	assert.True(t, b.Equal(c))
	c.Pix[0] = 42
	assert.False(t, b.Equal(c))
	assert.Equal(t, uint8(1), b.Pix[0])

	var n *Buffer
	assert.True(t, n.Equal(nil))
	assert.False(t, b.Equal(nil))
}

func TestFromImage(t *testing.T) {
	// non-zero origin must be translated to (0,0)
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.Set(5, 5, color.RGBA{255, 0, 0, 255})
	img.Set(6, 5, color.RGBA{0, 0, 255, 255})

	b, err := FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Width)
	assert.Equal(t, 1, b.Height)

	px, err := b.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, RGBA{255, 0, 0, 255}, px)
	px, err = b.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, RGBA{0, 0, 255, 255}, px)
}

func TestFromImage_Empty(t *testing.T) {
	_, err := FromImage(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	var de *DomainError
	assert.True(t, errors.As(err, &de))
}

func TestNRGBA(t *testing.T) {
	b, err := FromPix(1, 1, []uint8{9, 8, 7, 6})
	require.NoError(t, err)
	img := b.NRGBA()
	assert.Equal(t, color.NRGBA{9, 8, 7, 6}, img.NRGBAAt(0, 0))

	// NRGBA returns a copy
	img.Pix[0] = 0
	assert.Equal(t, uint8(9), b.Pix[0])
}

func TestClamp8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-12, 0},
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{127.5, 128},
		{254.6, 255},
		{300, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp8(tt.in), "Clamp8(%v)", tt.in)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "resample: bad", (&DomainError{Op: "resample", Msg: "bad"}).Error())
	assert.Equal(t, "graybit7: bad signature", (&FormatError{Format: "graybit7", Msg: "bad signature"}).Error())
}
