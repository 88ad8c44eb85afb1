package player

// Tuning holds the movement constants.
type Tuning struct {
	Speed            float32 `yaml:"speed"`             // m/s
	SprintMultiplier float32 `yaml:"sprint_multiplier"` // applied while sprint is held
	Gravity          float32 `yaml:"gravity"`           // m/s^2, negative is down
	JumpSpeed        float32 `yaml:"jump_speed"`        // initial upward velocity
	EyeHeight        float32 `yaml:"eye_height"`        // camera height when standing
	Radius           float32 `yaml:"radius"`            // collision radius
	Skin             float32 `yaml:"skin"`              // extra clearance kept from obstacles
	WallMargin       float32 `yaml:"wall_margin"`       // clearance kept from walls
	LookSensitivity  float32 `yaml:"look_sensitivity"`  // radians per mouse count
	PitchLimit       float32 `yaml:"pitch_limit"`       // radians either way
	MaxStep          float32 `yaml:"max_step"`          // longest dt integrated in one update
	ResolvePasses    int     `yaml:"resolve_passes"`
}

// DefaultTuning returns the stock movement constants.
func DefaultTuning() Tuning {
	return Tuning{
		Speed:            4.0,
		SprintMultiplier: 1.75,
		Gravity:          -20,
		JumpSpeed:        6.5,
		EyeHeight:        1.6,
		Radius:           0.35,
		Skin:             0.02,
		WallMargin:       0.4,
		LookSensitivity:  0.0022,
		PitchLimit:       1.5,
		MaxStep:          0.1,
		ResolvePasses:    3,
	}
}

func (t Tuning) withDefaults() Tuning {
	d := DefaultTuning()
	if !(t.Speed > 0) {
		t.Speed = d.Speed
	}
	if !(t.SprintMultiplier > 0) {
		t.SprintMultiplier = d.SprintMultiplier
	}
	if !(t.Gravity < 0) {
		t.Gravity = d.Gravity
	}
	if !(t.JumpSpeed > 0) {
		t.JumpSpeed = d.JumpSpeed
	}
	if !(t.EyeHeight > 0) {
		t.EyeHeight = d.EyeHeight
	}
	if !(t.Radius > 0) {
		t.Radius = d.Radius
	}
	if !(t.Skin >= 0) {
		t.Skin = d.Skin
	}
	if !(t.WallMargin >= 0) {
		t.WallMargin = d.WallMargin
	}
	if !(t.LookSensitivity > 0) {
		t.LookSensitivity = d.LookSensitivity
	}
	if !(t.PitchLimit > 0) {
		t.PitchLimit = d.PitchLimit
	}
	if !(t.MaxStep > 0) {
		t.MaxStep = d.MaxStep
	}
	if t.ResolvePasses <= 0 {
		t.ResolvePasses = d.ResolvePasses
	}
	return t
}
