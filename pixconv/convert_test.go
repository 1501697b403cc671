package pixconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertRGB565PureRed(t *testing.T) {
	src := []byte{0x1F, 0x00}
	out, warn, err := Convert(src, 1, 1, 2, 0, RGB565, false)
	require.NoError(t, err)
	assert.Nil(t, warn)
	assert.Equal(t, []byte{0xF8, 0x00, 0x00, 0xFF}, out)
}

func TestConvertOutputLength(t *testing.T) {
	w, h := 4, 3
	src := make([]byte, w*h*4)
	out, _, err := Convert(src, w, h, w*4, 0, XRGB8888, false)
	require.NoError(t, err)
	assert.Len(t, out, w*h*4)
}

func TestConvertXRGBAlphaIsOpaque(t *testing.T) {
	w, h := 2, 2
	src := make([]byte, w*h*4)
	for i := range src {
		src[i] = 0x11
	}
	out, _, err := Convert(src, w, h, w*4, 0, XRGB8888, false)
	require.NoError(t, err)
	for px := 0; px < w*h; px++ {
		assert.Equal(t, byte(0xFF), out[px*4+3])
	}
}

func TestConvertXRGBByteIdenticalAfterReorder(t *testing.T) {
	// src pixel: X=0xAA R=0x11 G=0x22 B=0x33, alpha byte already 0xFF semantics handled via X.
	src := []byte{0xAA, 0x11, 0x22, 0x33}
	out, _, err := Convert(src, 1, 1, 4, 0, XRGB8888, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0xFF}, out)
}

func TestConvertZeroDimensionsFail(t *testing.T) {
	_, _, err := Convert([]byte{}, 0, 1, 4, 0, XRGB8888, false)
	assert.Error(t, err)

	_, _, err = Convert([]byte{}, 1, 0, 4, 0, XRGB8888, false)
	assert.Error(t, err)
}

func TestConvertSliceTooSmallFails(t *testing.T) {
	_, _, err := Convert(make([]byte, 2), 2, 2, 8, 0, XRGB8888, false)
	assert.Error(t, err)
}

func TestConvertUnsupportedFormatFallback(t *testing.T) {
	out, warn, err := Convert(make([]byte, 16), 2, 2, 8, 0, SourceFormat(999), true)
	require.NoError(t, err)
	require.NotNil(t, warn)
	assert.Len(t, out, 2*2*4)
}

func TestConvertUnsupportedFormatNoFallbackFails(t *testing.T) {
	_, _, err := Convert(make([]byte, 16), 2, 2, 8, 0, SourceFormat(999), false)
	assert.Error(t, err)
}

func TestConvertRGBA5551Alpha(t *testing.T) {
	// bit15 set => opaque, R=G=B=0
	src := []byte{0x00, 0x80}
	out, _, err := Convert(src, 1, 1, 2, 0, RGBA5551, false)
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), out[3])

	src2 := []byte{0x00, 0x00}
	out2, _, err := Convert(src2, 1, 1, 2, 0, RGBA5551, false)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), out2[3])
}
