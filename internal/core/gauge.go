package core

import "math"

// Gauge is a bounded numeric quantity with a sample history.
// Every mutation clamps the value to [min, max].
type Gauge struct {
	value   float64
	min     float64
	max     float64
	history []float64
}

// NewGauge creates a gauge with the given bounds. The initial value is
// clamped and recorded as the first history sample.
func NewGauge(initial, min, max float64) *Gauge {
	g := &Gauge{min: min, max: max}
	g.Reset(initial)
	return g
}

// NewPercent creates a gauge bounded to [0, 100].
func NewPercent(initial float64) *Gauge {
	return NewGauge(initial, 0, 100)
}

// Reset sets the value and restarts the history with that single sample.
func (g *Gauge) Reset(v float64) {
	g.value = ClampF(v, g.min, g.max)
	g.history = append(g.history[:0], g.value)
}

// Value returns the current value.
func (g *Gauge) Value() float64 {
	return g.value
}

// Rounded returns the current value rounded to the nearest integer.
func (g *Gauge) Rounded() int {
	return int(math.Round(g.value))
}

// Set assigns a new value (clamped) and returns it.
func (g *Gauge) Set(v float64) float64 {
	g.value = ClampF(v, g.min, g.max)
	return g.value
}

// Add applies a signed delta (clamped) and returns the new value.
func (g *Gauge) Add(delta float64) float64 {
	return g.Set(g.value + delta)
}

// Full reports whether the gauge sits at its upper bound.
func (g *Gauge) Full() bool {
	return g.value >= g.max
}

// Ratio returns the value as a fraction of the range, in [0, 1].
func (g *Gauge) Ratio() float64 {
	if g.max <= g.min {
		return 0
	}
	return (g.value - g.min) / (g.max - g.min)
}

// Sample appends the current value to the history.
func (g *Gauge) Sample() {
	g.history = append(g.history, g.value)
}

// History returns a copy of all samples.
func (g *Gauge) History() []float64 {
	out := make([]float64, len(g.history))
	copy(out, g.history)
	return out
}

// Recent returns a copy of the last n samples (fewer if not available).
func (g *Gauge) Recent(n int) []float64 {
	if n <= 0 {
		return nil
	}
	start := len(g.history) - n
	if start < 0 {
		start = 0
	}
	out := make([]float64, len(g.history)-start)
	copy(out, g.history[start:])
	return out
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
