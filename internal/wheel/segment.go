package wheel

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Segment is one angular slice of the wheel. Angles are in radians within
// [0, 2pi); segments are contiguous and ordered, and their spans sum to the
// full circle.
type Segment struct {
	ParticipantID string
	Label         string
	Entries       int
	StartAngle    float64
	EndAngle      float64
	Fill          color.RGBA
	Text          color.RGBA
}

// MidAngle is the midpoint of the segment's angular span. The sequencer aims
// the wheel so this angle ends up under the pointer.
func (s Segment) MidAngle() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

// Span is the segment's angular width in radians.
func (s Segment) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// BuildSegments lays the active pool entries out around the circle, each
// span proportional to the participant's entry share. Colors cycle through
// the palette by segment index; text color is chosen for contrast against
// the fill. Returns ErrEmptyPool when no participant holds entries.
func BuildSegments(pool Pool, palette []color.RGBA) ([]Segment, error) {
	active := pool.active()
	total := pool.TotalEntries()
	if total == 0 || len(active) == 0 {
		return nil, ErrEmptyPool
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("palette has no colors")
	}

	segments := make([]Segment, 0, len(active))
	angle := 0.0
	for k, e := range active {
		span := 2 * math.Pi * float64(e.Entries) / float64(total)
		fill := palette[k%len(palette)]
		seg := Segment{
			ParticipantID: e.ParticipantID,
			Label:         e.Label,
			Entries:       e.Entries,
			StartAngle:    angle,
			EndAngle:      angle + span,
			Fill:          fill,
			Text:          textColorFor(fill),
		}
		angle = seg.EndAngle
		segments = append(segments, seg)
	}
	// Pin the last edge to the full circle so float drift cannot leave a gap.
	segments[len(segments)-1].EndAngle = 2 * math.Pi

	return segments, nil
}

// textColorFor picks black or white for readability against the fill, using
// the relative luminance L = (0.299R + 0.587G + 0.114B) / 255.
func textColorFor(fill color.RGBA) color.RGBA {
	l := (0.299*float64(fill.R) + 0.587*float64(fill.G) + 0.114*float64(fill.B)) / 255
	if l > 0.5 {
		return color.RGBA{A: 255} // black
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// ParseHexColor parses "#RRGGBB" (leading '#' optional) into an opaque RGBA.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// hexString formats an RGBA back to "#RRGGBB" for records and API payloads.
func hexString(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
