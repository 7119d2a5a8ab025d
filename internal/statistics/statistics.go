// Package statistics implements the numeric core shared by every analytics
// component: descriptive summaries over plain float64 slices. Null filtering
// is the caller's job; these functions see only concrete values.
package statistics

import (
	"math"
	"sort"

	"github.com/aquasense/hydrolens/pkg/models"
)

// Calculate computes a StatSummary over values. The input is copied before
// sorting so the caller's slice is never reordered. An empty input yields
// the all-zero summary, which is a defined degenerate case rather than an
// error.
//
// The standard deviation is the population form (divide by N): downstream
// consumers compare against historically reported figures that used it.
func Calculate(values []float64) models.StatSummary {
	n := len(values)
	if n == 0 {
		return models.StatSummary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := Mean(values)

	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	stdDev := math.Sqrt(sumSquaredDiff / float64(n))

	return models.StatSummary{
		Min:     sorted[0],
		Max:     sorted[n-1],
		Average: mean,
		Median:  medianSorted(sorted),
		StdDev:  stdDev,
		Count:   n,
	}
}

// Mean calculates the arithmetic mean of values, 0 for an empty slice.
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

// Median calculates the median of values without mutating the input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return medianSorted(sorted)
}

func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// MovingAverage calculates a simple moving average with the given window
// size. The result has len(values)-window+1 elements; nil when the input is
// shorter than the window or the window is not positive.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}

	result := make([]float64, len(values)-window+1)
	for i := 0; i <= len(values)-window; i++ {
		sum := 0.0
		for j := i; j < i+window; j++ {
			sum += values[j]
		}
		result[i] = sum / float64(window)
	}
	return result
}

// Correlation calculates the Pearson correlation coefficient between two
// equal-length series, 0 when undefined.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	numerator := 0.0
	sumXSq := 0.0
	sumYSq := 0.0
	for i := 0; i < len(x); i++ {
		diffX := x[i] - meanX
		diffY := y[i] - meanY
		numerator += diffX * diffY
		sumXSq += diffX * diffX
		sumYSq += diffY * diffY
	}

	denominator := math.Sqrt(sumXSq * sumYSq)
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares
// and reports the coefficient of determination. Fewer than two points, or a
// degenerate x column, yields all zeros.
func LinearRegression(x, y []float64) (slope, intercept, rSquared float64) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0, 0
	}

	n := float64(len(x))
	sumX, sumY, sumXY, sumX2, sumY2 := 0.0, 0.0, 0.0, 0.0, 0.0
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return 0, 0, 0
	}

	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n

	meanY := sumY / n
	ssTot := sumY2 - n*meanY*meanY
	if ssTot > 0 {
		ssRes := 0.0
		for i := range x {
			predicted := intercept + slope*x[i]
			ssRes += (y[i] - predicted) * (y[i] - predicted)
		}
		rSquared = 1 - ssRes/ssTot
	} else {
		rSquared = 1
	}

	return slope, intercept, rSquared
}

// SampleStdDev is the N-1 denominator standard deviation, used for the
// forecast error spread. Fewer than two values yields 0.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)
	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	return math.Sqrt(sumSquaredDiff / float64(len(values)-1))
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round1 rounds to one decimal place, matching the reported precision of
// quality indices and distribution percentages.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
