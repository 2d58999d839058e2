// Package statistics provides the resampling helpers used to summarize
// metric values across benchmark splits.
package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// DefaultIterations is the number of bootstrap resamples.
const DefaultIterations = 10000

// Interval is a bootstrap confidence interval around the mean of a set of
// per-split metric values.
type Interval struct {
	Mean  float64
	Lower float64
	Upper float64
	Level float64
}

// Bootstrap computes a percentile-method confidence interval over values at
// the given level (e.g. 0.95). The seed makes the resampling reproducible;
// a negative seed uses a non-deterministic source. With fewer than 2 values
// the interval degenerates to the mean.
func Bootstrap(values []float64, level float64, seed int64) Interval {
	m := Mean(values)
	n := len(values)
	if n < 2 {
		return Interval{Mean: m, Lower: m, Upper: m, Level: level}
	}

	src := seed
	if src < 0 {
		src = rand.Int63()
	}
	rng := rand.New(rand.NewSource(src))

	means := make([]float64, DefaultIterations)
	sample := make([]float64, n)
	for i := range means {
		for j := range sample {
			sample[j] = values[rng.Intn(n)]
		}
		means[i] = Mean(sample)
	}
	sort.Float64s(means)

	alpha := 1 - level
	lo := int(math.Floor(alpha / 2 * DefaultIterations))
	hi := int(math.Floor((1 - alpha/2) * DefaultIterations))
	if hi >= DefaultIterations {
		hi = DefaultIterations - 1
	}

	return Interval{Mean: m, Lower: means[lo], Upper: means[hi], Level: level}
}

// Mean returns the arithmetic mean of values, 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
