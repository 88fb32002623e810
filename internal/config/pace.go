package config

import (
	"fmt"
	"math"
)

// Pace is a named preset for the Level 3 simulation speed.
type Pace string

const (
	PaceRelaxed Pace = "relaxed"
	PaceNormal  Pace = "normal"
	PaceIntense Pace = "intense"
	PaceFixed   Pace = "fixed"
)

// Paces lists the presets in display order.
var Paces = []Pace{PaceRelaxed, PaceNormal, PaceIntense, PaceFixed}

// ParsePace validates a preset name. An empty name means normal.
func ParsePace(name string) (Pace, error) {
	if name == "" {
		return PaceNormal, nil
	}
	for _, p := range Paces {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown pace %q (want relaxed, normal, intense or fixed)", name)
}

// decayFactor returns how much the preset multiplies dopamine decay.
func decayFactor(p Pace) float64 {
	switch p {
	case PaceRelaxed:
		return 0.75
	case PaceIntense:
		return 1.5
	default:
		return 1.0
	}
}

// durationFactor returns how much the preset multiplies the run length.
func durationFactor(p Pace) float64 {
	switch p {
	case PaceRelaxed:
		return 1.25
	case PaceIntense:
		return 0.75
	default:
		return 1.0
	}
}

// ApplyPace modifies the Level 3 tuning based on a preset.
// Fixed pins the reference tuning and ignores any file overrides.
func ApplyPace(cfg *Config, p Pace) {
	if p == PaceFixed {
		cfg.Dopamine = Default().Dopamine
		return
	}
	cfg.Dopamine.Decay *= decayFactor(p)
	cfg.Dopamine.Duration = int(math.Round(float64(cfg.Dopamine.Duration) * durationFactor(p)))
	if cfg.Dopamine.Duration < 1 {
		cfg.Dopamine.Duration = 1
	}
}
