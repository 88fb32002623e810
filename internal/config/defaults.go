package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/phone.yaml
var defaultYAML []byte

// Default returns the reference tuning of the game.
func Default() Config {
	return Config{
		Timeline: TimelineConfig{
			HideDelay:   500 * time.Millisecond,
			RevealDelay: 200 * time.Millisecond,
		},
		Materials: MaterialsConfig{
			GainMin:        8,
			GainMax:        15,
			DamagePerClick: 1.5,
			Trees:          12,
			TreeSpan:       90,
			FadeBand:       8,
			CO2PerPart:     8,
			CO2Target:      70,
			CO2Step:        2,
			CO2Interval:    50 * time.Millisecond,
			ErrorDelay:     600 * time.Millisecond,
			StepDelays:     []time.Duration{1000 * time.Millisecond, 2200 * time.Millisecond},
		},
		Dopamine: DopamineConfig{
			Duration:        60,
			Tick:            time.Second,
			StartDopamine:   50,
			StartWellbeing:  70,
			Decay:           1.5,
			WithdrawalBelow: 20,
			LowBelow:        35,
			WithdrawalDrain: 1.2,
			LowDrain:        0.3,
			Recovery:        0.3,
			SampleEvery:     5,
			HistoryWindow:   12,
			CrashAbove:      70,
			OverheatAbove:   85,
			OverheatDelay:   3 * time.Second,
			OverheatPenalty: 30,
			CrashNotice:     3 * time.Second,
			OverheatNotice:  3500 * time.Millisecond,
			TipEvery:        12 * time.Second,
			NotifyEvery:     8 * time.Second,
			NotifyChance:    0.5,
			NotifyFor:       3 * time.Second,
		},
		Assembly: AssemblyConfig{
			ErrorDelay:   600 * time.Millisecond,
			PowerOnDelay: 500 * time.Millisecond,
		},
		Signal: SignalConfig{
			Start:       50,
			TargetMin:   20,
			TargetMax:   32,
			DangerFrom:  75,
			FailureFor:  5 * time.Second,
			RevealDelay: 3 * time.Second,
			CallTick:    time.Second,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
