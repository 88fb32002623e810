package dopamine

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Volatility summarizes a history of samples.
type Volatility struct {
	Mean   float64
	StdDev float64
}

// Summarize computes the mean and standard deviation of samples.
// Fewer than two samples have no spread.
func Summarize(samples []float64) Volatility {
	switch len(samples) {
	case 0:
		return Volatility{}
	case 1:
		return Volatility{Mean: samples[0]}
	}
	mean, std := stat.MeanStdDev(samples, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return Volatility{Mean: mean, StdDev: std}
}
