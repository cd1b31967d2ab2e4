package glyphgrid

import "github.com/tanema/gween/ease"

// DefaultFramesPerSecond is the playback rate when Options leaves it unset.
const DefaultFramesPerSecond = 8.0

// Options configures a renderer. Zero-valued numeric fields fall back to
// package defaults; SetOptions applies them as a whole, funneling any
// atlas-affecting change through a single rebuild transition.
type Options struct {
	// FontSize in pixels. Changing it rebuilds the atlas and re-fits the
	// target surface. Zero means DefaultFontSize.
	FontSize float64

	// FramesPerSecond is the playback tick rate. Zero means
	// DefaultFramesPerSecond.
	FramesPerSecond float64

	// ShowGridLines draws thin borders near cell edges.
	ShowGridLines bool

	// GridLineColor is the border color ("#rgb"/"#rrggbb"). Empty means a
	// dim gray.
	GridLineColor string

	// TransitionDuration, in seconds, crossfades color and density between
	// frames during playback. Zero disables the crossfade.
	TransitionDuration float64

	// TransitionEase shapes the crossfade. Nil means ease.Linear.
	TransitionEase ease.TweenFunc

	// OnFrameChange is invoked after every frame-index change, from both
	// playback ticks and manual seeks.
	OnFrameChange func(frame int)

	// ForceFallback skips the shader capability probe and always selects
	// the immediate-mode renderer. Mostly useful in tests.
	ForceFallback bool
}

// withDefaults fills unset fields with package defaults.
func (o Options) withDefaults() Options {
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.FramesPerSecond <= 0 {
		o.FramesPerSecond = DefaultFramesPerSecond
	}
	if o.GridLineColor == "" {
		o.GridLineColor = "#333333"
	}
	if o.TransitionEase == nil {
		o.TransitionEase = ease.Linear
	}
	return o
}
