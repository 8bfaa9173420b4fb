package wheel

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	maxLabelRunes   = 12
	truncatedRunes  = 10
	sparkleCount    = 10
	backgroundColor = "#2C2F33"
	hubColor        = "#23272A"
	pointerColor    = "#ECF0F1"
	accentColor     = "#FFD700"
)

// Renderer draws wheel frames. It holds only immutable state (the canvas
// size and the parsed font), so one Renderer may serve many frames
// concurrently; per-frame drawing state lives on a fresh canvas each call.
type Renderer struct {
	size    int
	fnt     *opentype.Font
	fontErr *RenderError
}

// newRenderer parses the configured font, substituting the embedded default
// face when the configured one is missing or unreadable. The substitution is
// recorded rather than returned as a failure; rendering always proceeds.
func newRenderer(o Options) (*Renderer, error) {
	r := &Renderer{size: o.WheelSize}

	if o.FontPath != "" {
		data, err := os.ReadFile(o.FontPath)
		if err == nil {
			fnt, perr := opentype.Parse(data)
			if perr == nil {
				r.fnt = fnt
				return r, nil
			}
			err = perr
		}
		r.fontErr = &RenderError{Stage: "font", Err: err}
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, &RenderError{Stage: "font", Err: err}
	}
	r.fnt = fnt
	return r, nil
}

// FontSubstitution reports the error that forced the default face, or nil
// when the configured font loaded cleanly.
func (r *Renderer) FontSubstitution() *RenderError { return r.fontErr }

// RenderFrame draws one frame of the wheel: every segment rotated by
// spec.Rotation, labels and entry counts, the fixed hub and pointer, and the
// celebration overlay on the winner segment when spec.Celebrating is set.
// The frame is a pure function of its arguments; spec.Tick stands in for
// time, so identical specs always produce identical pixels.
func (r *Renderer) RenderFrame(segments []Segment, spec FrameSpec, winnerIndex int) image.Image {
	size := float64(r.size)
	cx, cy := size/2, size/2
	radius := size/2 - size*0.08

	dc := gg.NewContext(r.size, r.size)
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	// Screen angle 0 is the top of the canvas, where the pointer sits. The
	// wheel alone rotates; hub and pointer stay fixed.
	base := spec.Rotation - math.Pi/2

	for i, seg := range segments {
		fill := seg.Fill
		if spec.Celebrating && i == winnerIndex {
			fill = lighten(fill, pulse(spec.Tick))
		}
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, seg.StartAngle+base, seg.EndAngle+base)
		dc.ClosePath()
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetHexColor(backgroundColor)
		dc.SetLineWidth(2)
		dc.Stroke()
	}

	r.drawLabels(dc, segments, base, cx, cy, radius)

	// Hub.
	dc.DrawCircle(cx, cy, radius*0.12)
	dc.SetHexColor(hubColor)
	dc.FillPreserve()
	dc.SetHexColor(pointerColor)
	dc.SetLineWidth(3)
	dc.Stroke()

	if spec.Celebrating {
		r.drawCelebration(dc, spec.Tick, cx, cy, radius)
	}

	r.drawPointer(dc, cx, cy, radius, size)

	return dc.Image()
}

// RenderStill draws the single-frame fallback: the wheel at rest with the
// winner segment statically highlighted.
func (r *Renderer) RenderStill(segments []Segment, winnerIndex int) image.Image {
	return r.RenderFrame(segments, FrameSpec{Rotation: 0, Celebrating: true, Tick: 0}, winnerIndex)
}

// drawLabels places each segment's label and entry count at 70% radius on
// the mid-angle, rotated to read outward along the radius. Mid-angles in the
// left half are flipped half a turn so their text stays upright.
func (r *Renderer) drawLabels(dc *gg.Context, segments []Segment, base, cx, cy, radius float64) {
	labelSize := float64(r.size) / 24
	countSize := float64(r.size) / 32
	labelFace := r.face(labelSize)
	countFace := r.face(countSize)

	for _, seg := range segments {
		mid := seg.MidAngle() + base
		tx := cx + math.Cos(mid)*radius*0.7
		ty := cy + math.Sin(mid)*radius*0.7
		theta := mid
		if math.Cos(mid) < 0 {
			theta += math.Pi
		}

		dc.Push()
		dc.Translate(tx, ty)
		dc.Rotate(theta)
		dc.SetColor(seg.Text)
		dc.SetFontFace(labelFace)
		dc.DrawStringAnchored(TruncateLabel(seg.Label), 0, -labelSize*0.4, 0.5, 0.5)
		dc.SetFontFace(countFace)
		dc.DrawStringAnchored(fmt.Sprintf("%d", seg.Entries), 0, labelSize*0.8, 0.5, 0.5)
		dc.Pop()
	}
}

// drawCelebration draws the pulsing dashed ring and the orbiting sparkles.
// Every quantity derives from the tick, never the clock.
func (r *Renderer) drawCelebration(dc *gg.Context, tick int, cx, cy, radius float64) {
	t := float64(tick)

	ringR := radius + 9 + 4*math.Sin(t*0.35)
	phase := t * 0.12
	dc.Push()
	dc.SetHexColor(accentColor)
	dc.SetLineWidth(4)
	dc.SetDash(11, 9)
	dc.DrawArc(cx, cy, ringR, phase, phase+2*math.Pi)
	dc.Stroke()
	dc.SetDash()
	dc.Pop()

	for i := 0; i < sparkleCount; i++ {
		fi := float64(i)
		ang := 2*math.Pi*fi/sparkleCount + t*0.08
		rr := radius * (0.55 + 0.3*math.Sin(t*0.2+fi*1.3))
		sx := cx + math.Cos(ang)*rr
		sy := cy + math.Sin(ang)*rr
		s := 3 + 1.8*math.Sin(t*0.45+fi)

		if i%2 == 0 {
			dc.SetHexColor(accentColor)
		} else {
			dc.SetRGB(1, 1, 1)
		}
		dc.SetLineWidth(2)
		dc.DrawLine(sx-s, sy, sx+s, sy)
		dc.Stroke()
		dc.DrawLine(sx, sy-s, sx, sy+s)
		dc.Stroke()
	}
}

// drawPointer draws the fixed indicator above the wheel, tip pointing down
// at the rim.
func (r *Renderer) drawPointer(dc *gg.Context, cx, cy, radius, size float64) {
	pw := size * 0.030
	ph := size * 0.035
	pt := size * 0.040
	top := cy - radius

	dc.MoveTo(cx-pw, top-ph)
	dc.LineTo(cx+pw, top-ph)
	dc.LineTo(cx, top+pt)
	dc.ClosePath()
	dc.SetHexColor(pointerColor)
	dc.FillPreserve()
	dc.SetHexColor(hubColor)
	dc.SetLineWidth(2)
	dc.Stroke()
}

// face builds a font.Face at the given point size. Faces buffer glyph state
// internally, so each frame gets its own.
func (r *Renderer) face(points float64) font.Face {
	f, err := opentype.NewFace(r.fnt, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return f
}

// TruncateLabel shortens labels longer than 12 runes to their first 10 plus
// "..", keeping text inside the segment at any reasonable wheel size.
func TruncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= maxLabelRunes {
		return label
	}
	return string(runes[:truncatedRunes]) + ".."
}

// lighten blends a color toward white by factor f in [0,1].
func lighten(c color.RGBA, f float64) color.RGBA {
	blend := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) + (255-float64(v))*f))
	}
	return color.RGBA{R: blend(c.R), G: blend(c.G), B: blend(c.B), A: c.A}
}

// pulse is the winner highlight's lighten factor at a given tick, swinging
// between 0.05 and 0.45.
func pulse(tick int) float64 {
	return 0.25 + 0.2*math.Sin(float64(tick)*0.3)
}
