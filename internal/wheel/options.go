package wheel

import (
	"fmt"
	"image/color"
)

// DefaultPalette is the fill rotation used when no palette is configured.
var DefaultPalette = []string{
	"#E74C3C", // red
	"#3498DB", // blue
	"#2ECC71", // green
	"#F1C40F", // yellow
	"#9B59B6", // purple
	"#E67E22", // orange
	"#1ABC9C", // teal
	"#FD79A8", // pink
}

// Options is the per-spin configuration bundle. It is passed by value into
// every engine call; the engine holds no mutable configuration between spins.
// Zero fields are replaced with defaults, so Options{} is a valid bundle.
type Options struct {
	// WheelSize is the square canvas edge in pixels.
	WheelSize int
	// PaletteColors are "#RRGGBB" fills applied cyclically by segment index.
	PaletteColors []string
	// FontPath points at a TTF file for labels. When empty or unloadable the
	// embedded default face is substituted.
	FontPath string
	// FrameRate is the nominal playback rate in frames per second.
	FrameRate int
	// SpinRevolutions is the whole number of full turns before the wheel
	// settles on the winner.
	SpinRevolutions int
	// SpinDurationFrames is the frame count of the deceleration phase.
	SpinDurationFrames int
	// CelebrationDurationFrames is the frame count of one celebration block.
	CelebrationDurationFrames int
	// CelebrationLoops is how many celebration blocks are emitted after the
	// spin. The encoded asset plays through once, so repeated blocks stand in
	// for a looping celebration. Capped by MaxFrames.
	CelebrationLoops int
	// MaxFrames bounds the total emitted frame count.
	MaxFrames int
}

const (
	defaultWheelSize         = 480
	defaultFrameRate         = 25
	defaultSpinRevolutions   = 4
	defaultSpinFrames        = 100
	defaultCelebrationFrames = 50
	defaultCelebrationLoops  = 4
	defaultMaxFrames         = 600
)

// withDefaults returns a copy with every zero field filled in.
func (o Options) withDefaults() Options {
	if o.WheelSize == 0 {
		o.WheelSize = defaultWheelSize
	}
	if len(o.PaletteColors) == 0 {
		o.PaletteColors = DefaultPalette
	}
	if o.FrameRate == 0 {
		o.FrameRate = defaultFrameRate
	}
	if o.SpinRevolutions == 0 {
		o.SpinRevolutions = defaultSpinRevolutions
	}
	if o.SpinDurationFrames == 0 {
		o.SpinDurationFrames = defaultSpinFrames
	}
	if o.CelebrationDurationFrames == 0 {
		o.CelebrationDurationFrames = defaultCelebrationFrames
	}
	if o.CelebrationLoops == 0 {
		o.CelebrationLoops = defaultCelebrationLoops
	}
	if o.MaxFrames == 0 {
		o.MaxFrames = defaultMaxFrames
	}
	return o
}

// validate rejects bundles the engine cannot honor. Called on the
// defaults-filled copy, so only explicitly bad values fail.
func (o Options) validate() error {
	if o.WheelSize < 64 {
		return fmt.Errorf("wheel size %d is below the 64px minimum", o.WheelSize)
	}
	if o.FrameRate < 1 || o.FrameRate > 50 {
		return fmt.Errorf("frame rate %d is outside 1-50", o.FrameRate)
	}
	if o.SpinRevolutions < 1 {
		return fmt.Errorf("spin revolutions must be at least 1, got %d", o.SpinRevolutions)
	}
	if o.SpinDurationFrames < 2 {
		return fmt.Errorf("spin duration %d frames is below the 2 frame minimum", o.SpinDurationFrames)
	}
	if o.CelebrationDurationFrames < 1 {
		return fmt.Errorf("celebration duration %d frames is below the 1 frame minimum", o.CelebrationDurationFrames)
	}
	if o.SpinDurationFrames+o.CelebrationDurationFrames > o.MaxFrames {
		return fmt.Errorf("spin plus one celebration block (%d frames) exceeds the %d frame budget",
			o.SpinDurationFrames+o.CelebrationDurationFrames, o.MaxFrames)
	}
	if _, err := o.palette(); err != nil {
		return err
	}
	return nil
}

// palette parses the configured hex colors.
func (o Options) palette() ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(o.PaletteColors))
	for _, s := range o.PaletteColors {
		c, err := ParseHexColor(s)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

// frameDelayCS is the per-frame display duration in GIF centiseconds.
// Browsers clamp delays under 2cs, so that is the floor.
func (o Options) frameDelayCS() int {
	delay := 100 / o.FrameRate
	if delay < 2 {
		delay = 2
	}
	return delay
}
