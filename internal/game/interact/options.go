package interact

// Options tunes picking and the held-object presentation.
type Options struct {
	// MaxDistance is the farthest hit that still counts, in metres from the eye.
	MaxDistance float32 `yaml:"max_distance"`
	// HoldDistance is how far in front of the eye a held object is centred.
	HoldDistance float32 `yaml:"hold_distance"`
	// HoldMargin is the fraction of the view kept free on each side.
	HoldMargin float32 `yaml:"hold_margin"`
	// DepthFit caps the held object's depth as a fraction of HoldDistance.
	DepthFit float32 `yaml:"depth_fit"`
	// HeldRenderOrder is drawn after everything else.
	HeldRenderOrder int `yaml:"held_render_order"`
}

// DefaultOptions returns the stock interaction settings.
func DefaultOptions() Options {
	return Options{
		MaxDistance:     3.5,
		HoldDistance:    1.2,
		HoldMargin:      0.12,
		DepthFit:        0.6,
		HeldRenderOrder: 999,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if !(o.MaxDistance > 0) {
		o.MaxDistance = d.MaxDistance
	}
	if !(o.HoldDistance > 0) {
		o.HoldDistance = d.HoldDistance
	}
	if !(o.HoldMargin >= 0 && o.HoldMargin < 0.5) {
		o.HoldMargin = d.HoldMargin
	}
	if !(o.DepthFit > 0) {
		o.DepthFit = d.DepthFit
	}
	if o.HeldRenderOrder == 0 {
		o.HeldRenderOrder = d.HeldRenderOrder
	}
	return o
}
