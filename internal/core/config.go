package core

import (
	"math/rand/v2"
	"time"
)

// RuntimeConfig contains configuration passed to a session at initialization.
// Levels use this for deterministic simulation; the platform uses the
// screen size and tick rate.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Platform ticks per second (default 20)
	Seed     int64  // RNG seed for deterministic gameplay
	Profile  string // Whose progress is loaded and saved
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 20,
		Seed:     0, // 0 means use current time in platform layer
		Profile:  "local",
	}
}

// TickInterval returns the virtual time one platform tick advances.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 20
	}
	return time.Second / time.Duration(c.TickRate)
}

// Scores is the Level 3 result handed to the final screen.
type Scores struct {
	Wellbeing int `json:"wellbeing"`
	Dopamine  int `json:"dopamine"`
}

// NewRand returns a deterministic random source for the given seed.
// A zero seed is replaced by the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Uniform returns a float in [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Shuffled returns a shuffled copy of items.
func Shuffled[T any](r *rand.Rand, items []T) []T {
	out := append([]T(nil), items...)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
