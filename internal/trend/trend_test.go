package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasense/hydrolens/pkg/models"
)

func fp(v float64) *float64 { return &v }

func dailyReadings(qualityIndices []float64) []models.Reading {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	readings := make([]models.Reading, len(qualityIndices))
	for i, qi := range qualityIndices {
		readings[i] = models.Reading{
			Timestamp:             base.AddDate(0, 0, i),
			Region:                "North Coast",
			SensorID:              "nc-01",
			RegionAvgQualityIndex: fp(qi),
		}
	}
	return readings
}

func TestCalculateIncreasing(t *testing.T) {
	result := Calculate(dailyReadings([]float64{50, 55, 60, 70, 80}), ParameterQualityIndex)

	assert.Equal(t, models.TrendIncreasing, result.Trend)
	assert.Greater(t, result.Slope, 0.0)
	assert.Greater(t, result.Correlation, 0.9)
	assert.InDelta(t, 60.0, result.ChangePercentage, 1e-9)
	assert.Equal(t, 50.0, result.FirstValue)
	assert.Equal(t, 80.0, result.LastValue)
	assert.Equal(t, 5, result.DataPoints)
}

func TestCalculateDecreasing(t *testing.T) {
	result := Calculate(dailyReadings([]float64{80, 70, 65, 50}), ParameterQualityIndex)

	assert.Equal(t, models.TrendDecreasing, result.Trend)
	assert.Less(t, result.Slope, 0.0)
	assert.Less(t, result.Correlation, -0.9)
	assert.InDelta(t, -37.5, result.ChangePercentage, 1e-9)
}

func TestCalculateStableAtThreshold(t *testing.T) {
	// Exactly 5% change is still stable; the threshold is exclusive.
	result := Calculate(dailyReadings([]float64{100, 102, 105}), ParameterQualityIndex)

	assert.Equal(t, models.TrendStable, result.Trend)
	assert.InDelta(t, 5.0, result.ChangePercentage, 1e-9)
}

func TestCalculateJustPastThreshold(t *testing.T) {
	result := Calculate(dailyReadings([]float64{100, 102, 105.1}), ParameterQualityIndex)

	assert.Equal(t, models.TrendIncreasing, result.Trend)
}

func TestCalculateInsufficientData(t *testing.T) {
	result := Calculate(nil, ParameterQualityIndex)
	assert.Equal(t, models.TrendInsufficientData, result.Trend)
	assert.Zero(t, result.Slope)
	assert.Zero(t, result.DataPoints)

	result = Calculate(dailyReadings([]float64{42}), ParameterQualityIndex)
	assert.Equal(t, models.TrendInsufficientData, result.Trend)
}

func TestCalculateSkipsNilValues(t *testing.T) {
	readings := dailyReadings([]float64{50, 60, 70})
	readings[1].RegionAvgQualityIndex = nil

	result := Calculate(readings, ParameterQualityIndex)

	assert.Equal(t, 2, result.DataPoints)
	assert.Equal(t, 50.0, result.FirstValue)
	assert.Equal(t, 70.0, result.LastValue)
}

func TestCalculateOtherParameters(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		{Timestamp: base, Temperature: fp(18), PH: fp(7.0), Turbidity: fp(2.0)},
		{Timestamp: base.Add(24 * time.Hour), Temperature: fp(25), PH: fp(7.1), Turbidity: fp(1.0)},
	}

	assert.Equal(t, models.TrendIncreasing, Calculate(readings, ParameterTemperature).Trend)
	assert.Equal(t, models.TrendStable, Calculate(readings, ParameterPH).Trend)
	assert.Equal(t, models.TrendDecreasing, Calculate(readings, ParameterTurbidity).Trend)
}

func TestCalculateZeroFirstValue(t *testing.T) {
	result := Calculate(dailyReadings([]float64{0, 10}), ParameterQualityIndex)

	// Division guard: no ±Inf percentage; classification stays stable.
	assert.Zero(t, result.ChangePercentage)
	assert.Equal(t, models.TrendStable, result.Trend)
}

func TestParseParameter(t *testing.T) {
	for _, name := range []string{"temperature", "ph", "turbidity", "quality_index"} {
		p, err := ParseParameter(name)
		require.NoError(t, err)
		assert.Equal(t, Parameter(name), p)
	}

	_, err := ParseParameter("salinity")
	assert.Error(t, err)
}
