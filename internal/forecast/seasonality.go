package forecast

import (
	"math"
	"time"

	"github.com/aquasense/hydrolens/internal/statistics"
)

// weekdayFactors holds the multiplicative day-of-week adjustment: the mean
// quality index observed on each weekday divided by the overall mean.
type weekdayFactors map[time.Weekday]float64

// forWeekday returns the factor for a weekday, defaulting to 1 when the
// window had no observations on that day.
func (f weekdayFactors) forWeekday(day time.Weekday) float64 {
	if factor, ok := f[day]; ok {
		return factor
	}
	return 1
}

// seasonalFactors derives weekday factors from the recent window. A zero or
// degenerate overall mean yields neutral factors.
func seasonalFactors(points []point) weekdayFactors {
	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	overall := 0.0
	for _, p := range points {
		day := p.timestamp.UTC().Weekday()
		sums[day] += p.value
		counts[day]++
		overall += p.value
	}

	factors := make(weekdayFactors, len(sums))
	if len(points) == 0 {
		return factors
	}
	overall /= float64(len(points))
	if overall == 0 {
		return factors
	}

	for day, sum := range sums {
		factors[day] = (sum / float64(counts[day])) / overall
	}
	return factors
}

// confidenceMargin pairs the interval half-width with its confidence level
// for one forecast day.
type confidenceMargin struct {
	margin float64
	level  float64
}

// confidenceMargins derives widening, weakening intervals from the spread
// of historical one-step prediction errors (|actual − previous|) over up to
// the last 30 points. For 0-indexed forecast day i the decay is e^(−0.1·i),
// the half-width stdError×1.96×(1+0.2·i)×decay and the confidence level
// max(0.5, 0.95×decay).
func confidenceMargins(values []float64, horizon int) []confidenceMargin {
	window := values
	if len(window) > 30 {
		window = window[len(window)-30:]
	}

	stepErrors := make([]float64, 0, len(window))
	for i := 1; i < len(window); i++ {
		stepErrors = append(stepErrors, math.Abs(window[i]-window[i-1]))
	}
	stdError := statistics.SampleStdDev(stepErrors)

	margins := make([]confidenceMargin, horizon)
	for i := 0; i < horizon; i++ {
		decay := math.Exp(-0.1 * float64(i))
		margins[i] = confidenceMargin{
			margin: stdError * 1.96 * (1 + 0.2*float64(i)) * decay,
			level:  math.Max(0.5, 0.95*decay),
		}
	}
	return margins
}
