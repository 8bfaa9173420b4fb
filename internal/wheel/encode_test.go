package wheel

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFrame(c color.RGBA, size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestEncodeAnimationRoundTrip(t *testing.T) {
	enc := &GIFEncoder{}
	frames := []image.Image{
		solidFrame(color.RGBA{R: 255, A: 255}, 32),
		solidFrame(color.RGBA{G: 255, A: 255}, 32),
		solidFrame(color.RGBA{B: 255, A: 255}, 32),
	}

	data, err := enc.EncodeAnimation(frames, 4)
	require.NoError(t, err)

	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 3)
	assert.Equal(t, []int{4, 4, 4}, decoded.Delay)
	assert.Equal(t, -1, decoded.LoopCount, "asset plays through once")
}

func TestEncodeAnimationNoFrames(t *testing.T) {
	enc := &GIFEncoder{}
	_, err := enc.EncodeAnimation(nil, 4)
	assert.Error(t, err)
}

func TestEncodeStillRoundTrip(t *testing.T) {
	enc := &GIFEncoder{}
	data, err := enc.EncodeStill(solidFrame(color.RGBA{R: 128, G: 64, B: 32, A: 255}, 16))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
}
