package gravity

import (
	"fmt"
	"sort"
)

const (
	DefaultG                      = 9.81
	DefaultPixelsPerMeter         = 100.0
	DefaultFriction               = 2.0
	DefaultScrollMultiplier       = 50.0
	DefaultUpwardForcePersistence = 0.95
	DefaultMaxUpwardSpeed         = 3000.0
	DefaultBounceFactor           = 0.5
	DefaultMinBounceVelocity      = 200.0
)

// Params holds the physics constants read on every tick. Values are not
// range checked; a negative friction simply diverges.
type Params struct {
	G                      float64 `yaml:"g" json:"g"`
	PixelsPerMeter         float64 `yaml:"pixels_per_meter" json:"pixelsPerMeter"`
	Friction               float64 `yaml:"friction" json:"friction"`
	ScrollMultiplier       float64 `yaml:"scroll_multiplier" json:"scrollMultiplier"`
	UpwardForcePersistence float64 `yaml:"upward_force_persistence" json:"upwardForcePersistence"`
	MaxUpwardSpeed         float64 `yaml:"max_upward_speed" json:"maxUpwardSpeed"`
	BounceFactor           float64 `yaml:"bounce_factor" json:"bounceFactor"`
	MinBounceVelocity      float64 `yaml:"min_bounce_velocity" json:"minBounceVelocity"`
}

func DefaultParams() Params {
	return Params{
		G:                      DefaultG,
		PixelsPerMeter:         DefaultPixelsPerMeter,
		Friction:               DefaultFriction,
		ScrollMultiplier:       DefaultScrollMultiplier,
		UpwardForcePersistence: DefaultUpwardForcePersistence,
		MaxUpwardSpeed:         DefaultMaxUpwardSpeed,
		BounceFactor:           DefaultBounceFactor,
		MinBounceVelocity:      DefaultMinBounceVelocity,
	}
}

// Patch is a partial Params update. Nil fields are left alone.
type Patch struct {
	G                      *float64 `yaml:"g,omitempty" json:"g,omitempty"`
	PixelsPerMeter         *float64 `yaml:"pixels_per_meter,omitempty" json:"pixelsPerMeter,omitempty"`
	Friction               *float64 `yaml:"friction,omitempty" json:"friction,omitempty"`
	ScrollMultiplier       *float64 `yaml:"scroll_multiplier,omitempty" json:"scrollMultiplier,omitempty"`
	UpwardForcePersistence *float64 `yaml:"upward_force_persistence,omitempty" json:"upwardForcePersistence,omitempty"`
	MaxUpwardSpeed         *float64 `yaml:"max_upward_speed,omitempty" json:"maxUpwardSpeed,omitempty"`
	BounceFactor           *float64 `yaml:"bounce_factor,omitempty" json:"bounceFactor,omitempty"`
	MinBounceVelocity      *float64 `yaml:"min_bounce_velocity,omitempty" json:"minBounceVelocity,omitempty"`
}

// Float returns a pointer to v, for building a Patch.
func Float(v float64) *float64 { return &v }

// Update overwrites the fields present in patch. A field patched to zero is
// treated as absent and left unchanged; the names of such fields are returned
// so the caller can report them.
func (p *Params) Update(patch Patch) (ignored []string) {
	for _, f := range p.fields(&patch) {
		if f.src == nil {
			continue
		}
		if *f.src == 0 {
			ignored = append(ignored, f.name)
			continue
		}
		*f.dst = *f.src
	}
	return ignored
}

type field struct {
	name string
	dst  *float64
	src  *float64
}

func (p *Params) fields(patch *Patch) []field {
	return []field{
		{"g", &p.G, patch.G},
		{"pixelsPerMeter", &p.PixelsPerMeter, patch.PixelsPerMeter},
		{"friction", &p.Friction, patch.Friction},
		{"scrollMultiplier", &p.ScrollMultiplier, patch.ScrollMultiplier},
		{"upwardForcePersistence", &p.UpwardForcePersistence, patch.UpwardForcePersistence},
		{"maxUpwardSpeed", &p.MaxUpwardSpeed, patch.MaxUpwardSpeed},
		{"bounceFactor", &p.BounceFactor, patch.BounceFactor},
		{"minBounceVelocity", &p.MinBounceVelocity, patch.MinBounceVelocity},
	}
}

// Patch returns a patch carrying every field of p.
func (p Params) Patch() Patch {
	return Patch{
		G:                      Float(p.G),
		PixelsPerMeter:         Float(p.PixelsPerMeter),
		Friction:               Float(p.Friction),
		ScrollMultiplier:       Float(p.ScrollMultiplier),
		UpwardForcePersistence: Float(p.UpwardForcePersistence),
		MaxUpwardSpeed:         Float(p.MaxUpwardSpeed),
		BounceFactor:           Float(p.BounceFactor),
		MinBounceVelocity:      Float(p.MinBounceVelocity),
	}
}

// GetParams returns the parameters keyed by their message names.
func (p Params) GetParams() map[string]float64 {
	out := make(map[string]float64, 8)
	for _, f := range p.fields(&Patch{}) {
		out[f.name] = *f.dst
	}
	return out
}

// Names lists the parameter message names in sorted order.
func Names() []string {
	var p Params
	names := make([]string, 0, 8)
	for name := range p.GetParams() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (patch *Patch) slots() map[string]**float64 {
	return map[string]**float64{
		"g":                      &patch.G,
		"pixelsPerMeter":         &patch.PixelsPerMeter,
		"friction":               &patch.Friction,
		"scrollMultiplier":       &patch.ScrollMultiplier,
		"upwardForcePersistence": &patch.UpwardForcePersistence,
		"maxUpwardSpeed":         &patch.MaxUpwardSpeed,
		"bounceFactor":           &patch.BounceFactor,
		"minBounceVelocity":      &patch.MinBounceVelocity,
	}
}

// PatchFromMap builds a Patch from message-named values.
func PatchFromMap(values map[string]float64) (Patch, error) {
	var patch Patch
	slots := patch.slots()
	for name, v := range values {
		slot, ok := slots[name]
		if !ok {
			return Patch{}, fmt.Errorf("%w: %s", ErrUnknownParam, name)
		}
		*slot = Float(v)
	}
	return patch, nil
}
