package wheel

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"

	"github.com/ericpauley/go-quantize/quantize"
)

// AssetEncoder turns rendered frames into a deliverable asset. The engine
// uses GIFEncoder; tests substitute failing encoders to drive the fallback
// path.
type AssetEncoder interface {
	// EncodeAnimation assembles ordered frames into one animated asset, each
	// frame displayed for delayCS centiseconds.
	EncodeAnimation(frames []image.Image, delayCS int) ([]byte, error)
	// EncodeStill encodes a single frame.
	EncodeStill(frame image.Image) ([]byte, error)
}

// GIFEncoder encodes animations as GIF and stills as PNG. GIF carries one
// asset-wide loop count, so the celebration is sustained by the frame plan
// repeating its block; the asset itself plays through once and holds on the
// final frame.
type GIFEncoder struct{}

var _ AssetEncoder = (*GIFEncoder)(nil)

func (e *GIFEncoder) EncodeAnimation(frames []image.Image, delayCS int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to encode")
	}

	quantizer := quantize.MedianCutQuantizer{}
	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: -1,
	}
	for _, frame := range frames {
		bounds := frame.Bounds()
		palette := quantizer.Quantize(make(color.Palette, 0, 256), frame)
		paletted := image.NewPaletted(bounds, palette)
		draw.Draw(paletted, bounds, frame, bounds.Min, draw.Src)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delayCS)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *GIFEncoder) EncodeStill(frame image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
