// Package trend classifies the linear movement of one reading parameter
// over time. Both the historical aggregation path and the forecaster lean
// on the same slope and change-percentage rules.
package trend

import (
	"math"

	"github.com/aquasense/hydrolens/internal/statistics"
	"github.com/aquasense/hydrolens/pkg/errors"
	"github.com/aquasense/hydrolens/pkg/models"
)

// Parameter selects which reading field a trend is computed over.
type Parameter string

const (
	ParameterTemperature  Parameter = "temperature"
	ParameterPH           Parameter = "ph"
	ParameterTurbidity    Parameter = "turbidity"
	ParameterQualityIndex Parameter = "quality_index"
)

// ParseParameter validates a parameter name at the trust boundary.
func ParseParameter(name string) (Parameter, error) {
	switch Parameter(name) {
	case ParameterTemperature, ParameterPH, ParameterTurbidity, ParameterQualityIndex:
		return Parameter(name), nil
	default:
		return "", errors.WrapError(errors.ErrInvalidParameter, errors.ErrorTypeValidation,
			"UNKNOWN_PARAMETER", "unknown trend parameter: "+name)
	}
}

// Value extracts the parameter's field from a reading; nil when missing.
func (p Parameter) Value(r models.Reading) *float64 {
	switch p {
	case ParameterTemperature:
		return r.Temperature
	case ParameterPH:
		return r.PH
	case ParameterTurbidity:
		return r.Turbidity
	case ParameterQualityIndex:
		return r.RegionAvgQualityIndex
	default:
		return nil
	}
}

// stableChangeThreshold is the percentage change magnitude below which a
// series is reported as stable.
const stableChangeThreshold = 5.0

// Calculate fits an ordinary least-squares line of the parameter against
// timestamp (epoch milliseconds) over the readings, in the order given.
// Readings with a nil value for the parameter are skipped. Fewer than two
// usable points yields trend "insufficient_data" with zeroed numerics.
func Calculate(readings []models.Reading, parameter Parameter) models.TrendResult {
	var xs, ys []float64
	for _, r := range readings {
		v := parameter.Value(r)
		if v == nil {
			continue
		}
		xs = append(xs, float64(r.Timestamp.UnixMilli()))
		ys = append(ys, *v)
	}

	if len(ys) < 2 {
		return models.TrendResult{Trend: models.TrendInsufficientData}
	}

	slope, _, _ := statistics.LinearRegression(xs, ys)
	correlation := statistics.Correlation(xs, ys)

	first := ys[0]
	last := ys[len(ys)-1]
	changePercentage := 0.0
	if first != 0 {
		changePercentage = (last - first) / first * 100
	}

	label := models.TrendStable
	if math.Abs(changePercentage) > stableChangeThreshold {
		if changePercentage > 0 {
			label = models.TrendIncreasing
		} else {
			label = models.TrendDecreasing
		}
	}

	return models.TrendResult{
		Trend:            label,
		Slope:            slope,
		Correlation:      correlation,
		ChangePercentage: changePercentage,
		FirstValue:       first,
		LastValue:        last,
		DataPoints:       len(ys),
	}
}
