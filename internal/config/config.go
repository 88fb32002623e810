// Package config provides YAML-based tuning for every level and the pace
// presets that scale the Level 3 simulation.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains the tuning of all five levels.
type Config struct {
	Timeline  TimelineConfig  `yaml:"timeline"`
	Materials MaterialsConfig `yaml:"materials"`
	Dopamine  DopamineConfig  `yaml:"dopamine"`
	Assembly  AssemblyConfig  `yaml:"assembly"`
	Signal    SignalConfig    `yaml:"signal"`
}

// TimelineConfig defines the Level 1 transition timing.
type TimelineConfig struct {
	HideDelay   time.Duration `yaml:"hide_delay"`   // Info hidden before the stage changes
	RevealDelay time.Duration `yaml:"reveal_delay"` // Info shown again after the change
}

// MaterialsConfig defines the Level 2 extraction, assembly and end-of-life rules.
type MaterialsConfig struct {
	GainMin        float64         `yaml:"gain_min"` // Extraction gain is drawn from [gain_min, gain_max)
	GainMax        float64         `yaml:"gain_max"`
	DamagePerClick float64         `yaml:"damage_per_click"`
	Trees          int             `yaml:"trees"`
	TreeSpan       float64         `yaml:"tree_span"` // Damage at which the last tree is gone
	FadeBand       float64         `yaml:"fade_band"`
	CO2PerPart     float64         `yaml:"co2_per_part"`
	CO2Target      float64         `yaml:"co2_target"`
	CO2Step        float64         `yaml:"co2_step"`
	CO2Interval    time.Duration   `yaml:"co2_interval"`
	ErrorDelay     time.Duration   `yaml:"error_delay"`
	StepDelays     []time.Duration `yaml:"step_delays"` // Reveal times of end-of-life steps 2 and 3
}

// DopamineConfig defines the Level 3 dual-resource simulation.
type DopamineConfig struct {
	Duration        int           `yaml:"duration"` // Ticks per run
	Tick            time.Duration `yaml:"tick"`
	StartDopamine   float64       `yaml:"start_dopamine"`
	StartWellbeing  float64       `yaml:"start_wellbeing"`
	Decay           float64       `yaml:"decay"`
	WithdrawalBelow float64       `yaml:"withdrawal_below"`
	LowBelow        float64       `yaml:"low_below"`
	WithdrawalDrain float64       `yaml:"withdrawal_drain"`
	LowDrain        float64       `yaml:"low_drain"`
	Recovery        float64       `yaml:"recovery"`
	SampleEvery     int           `yaml:"sample_every"` // Ticks between history samples
	HistoryWindow   int           `yaml:"history_window"`
	CrashAbove      float64       `yaml:"crash_above"`
	OverheatAbove   float64       `yaml:"overheat_above"`
	OverheatDelay   time.Duration `yaml:"overheat_delay"`
	OverheatPenalty float64       `yaml:"overheat_penalty"`
	CrashNotice     time.Duration `yaml:"crash_notice"`
	OverheatNotice  time.Duration `yaml:"overheat_notice"`
	TipEvery        time.Duration `yaml:"tip_every"`
	NotifyEvery     time.Duration `yaml:"notify_every"`
	NotifyChance    float64       `yaml:"notify_chance"`
	NotifyFor       time.Duration `yaml:"notify_for"`
}

// AssemblyConfig defines the Level 4 board timing.
type AssemblyConfig struct {
	ErrorDelay   time.Duration `yaml:"error_delay"`
	PowerOnDelay time.Duration `yaml:"power_on_delay"`
}

// SignalConfig defines the Level 5 slider rules.
type SignalConfig struct {
	Start       int           `yaml:"start"`
	TargetMin   int           `yaml:"target_min"` // Inclusive
	TargetMax   int           `yaml:"target_max"` // Inclusive
	DangerFrom  int           `yaml:"danger_from"`
	FailureFor  time.Duration `yaml:"failure_for"`
	RevealDelay time.Duration `yaml:"reveal_delay"`
	CallTick    time.Duration `yaml:"call_tick"`
}

var errNonPositive = errors.New("must be positive")

// Validate rejects tuning that would stall or break a level.
func (c Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"timeline.hide_delay", c.Timeline.HideDelay},
		{"timeline.reveal_delay", c.Timeline.RevealDelay},
		{"materials.co2_interval", c.Materials.CO2Interval},
		{"materials.error_delay", c.Materials.ErrorDelay},
		{"dopamine.tick", c.Dopamine.Tick},
		{"dopamine.overheat_delay", c.Dopamine.OverheatDelay},
		{"dopamine.crash_notice", c.Dopamine.CrashNotice},
		{"dopamine.overheat_notice", c.Dopamine.OverheatNotice},
		{"dopamine.tip_every", c.Dopamine.TipEvery},
		{"dopamine.notify_every", c.Dopamine.NotifyEvery},
		{"dopamine.notify_for", c.Dopamine.NotifyFor},
		{"assembly.error_delay", c.Assembly.ErrorDelay},
		{"assembly.power_on_delay", c.Assembly.PowerOnDelay},
		{"signal.failure_for", c.Signal.FailureFor},
		{"signal.reveal_delay", c.Signal.RevealDelay},
		{"signal.call_tick", c.Signal.CallTick},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("config: %s %w", d.name, errNonPositive)
		}
	}

	m := c.Materials
	if m.GainMin <= 0 || m.GainMax < m.GainMin {
		return fmt.Errorf("config: materials gain range [%v, %v) is invalid", m.GainMin, m.GainMax)
	}
	if m.Trees <= 0 {
		return fmt.Errorf("config: materials.trees %w", errNonPositive)
	}
	if m.CO2Step <= 0 {
		return fmt.Errorf("config: materials.co2_step %w", errNonPositive)
	}
	if len(m.StepDelays) != 2 || m.StepDelays[0] <= 0 || m.StepDelays[1] <= m.StepDelays[0] {
		return fmt.Errorf("config: materials.step_delays must hold two increasing durations")
	}

	d := c.Dopamine
	if d.Duration <= 0 {
		return fmt.Errorf("config: dopamine.duration %w", errNonPositive)
	}
	if d.SampleEvery <= 0 {
		return fmt.Errorf("config: dopamine.sample_every %w", errNonPositive)
	}
	if d.WithdrawalBelow > d.LowBelow {
		return fmt.Errorf("config: dopamine.withdrawal_below exceeds low_below")
	}
	if d.NotifyChance < 0 || d.NotifyChance > 1 {
		return fmt.Errorf("config: dopamine.notify_chance must be within [0, 1]")
	}

	s := c.Signal
	if s.TargetMin > s.TargetMax || s.TargetMin < 0 || s.TargetMax > 100 {
		return fmt.Errorf("config: signal target [%d, %d] is invalid", s.TargetMin, s.TargetMax)
	}
	if s.Start < 0 || s.Start > 100 {
		return fmt.Errorf("config: signal.start must be within [0, 100]")
	}
	return nil
}
