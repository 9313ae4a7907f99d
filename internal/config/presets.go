package config

import (
	"sort"

	"github.com/san-kum/gravscroll/internal/gravity"
)

var Presets = map[string]gravity.Params{
	"default": gravity.DefaultParams(),
	"gentle": {
		G: 4.0, PixelsPerMeter: 100, Friction: 3.0, ScrollMultiplier: 60,
		UpwardForcePersistence: 0.97, MaxUpwardSpeed: 2000, BounceFactor: 0.3, MinBounceVelocity: 250,
	},
	"heavy": {
		G: 24.79, PixelsPerMeter: 100, Friction: 1.5, ScrollMultiplier: 80,
		UpwardForcePersistence: 0.9, MaxUpwardSpeed: 4000, BounceFactor: 0.4, MinBounceVelocity: 300,
	},
	"bouncy": {
		G: 9.81, PixelsPerMeter: 100, Friction: 0.8, ScrollMultiplier: 50,
		UpwardForcePersistence: 0.95, MaxUpwardSpeed: 3000, BounceFactor: 0.85, MinBounceVelocity: 60,
	},
	"moon": {
		G: 1.62, PixelsPerMeter: 100, Friction: 0.5, ScrollMultiplier: 20,
		UpwardForcePersistence: 0.98, MaxUpwardSpeed: 1500, BounceFactor: 0.6, MinBounceVelocity: 40,
	},
}

func GetPreset(name string) *gravity.Params {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
