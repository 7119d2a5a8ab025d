package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasense/hydrolens/pkg/models"
)

func TestDetectAnomaliesDefaults(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		testReading(base, "North Coast", "nc-01", fp(18.5), fp(7.2), fp(2.0), fp(85.0)),          // clean
		testReading(base.Add(time.Hour), "North Coast", "nc-01", fp(40.0), fp(7.0), nil, nil),     // hot
		testReading(base.Add(2*time.Hour), "South Bay", "sb-01", fp(20.0), fp(5.2), fp(12.5), nil), // acidic and turbid
		testReading(base.Add(3*time.Hour), "South Bay", "sb-02", nil, nil, nil, fp(15.0)),          // low quality index
	}

	anomalies := DetectAnomalies(readings, nil)
	require.Len(t, anomalies, 3)

	assert.Equal(t, []string{"temperature"}, anomalies[0].Anomalies)
	assert.Equal(t, []string{"pH", "turbidity"}, anomalies[1].Anomalies)
	assert.Equal(t, []string{"region_avg_quality_index"}, anomalies[2].Anomalies)
}

func TestDetectAnomaliesDoesNotMutateInput(t *testing.T) {
	hot := 40.0
	readings := []models.Reading{
		testReading(time.Now(), "r", "s", &hot, nil, nil, nil),
	}

	anomalies := DetectAnomalies(readings, nil)
	require.Len(t, anomalies, 1)

	// The annotated copy carries the value; mutating it must not reach the
	// caller's reading.
	*anomalies[0].Temperature = 0
	assert.Equal(t, 40.0, hot)
	assert.Equal(t, &hot, readings[0].Temperature)
}

func TestDetectAnomaliesOverrides(t *testing.T) {
	readings := []models.Reading{
		testReading(time.Now(), "r", "s", fp(20.0), fp(7.0), fp(5.0), fp(50.0)),
	}

	// Clean under the defaults.
	assert.Empty(t, DetectAnomalies(readings, nil))

	// Tightened turbidity bound flags it; other defaults stay in effect.
	anomalies := DetectAnomalies(readings, &ThresholdOverrides{TurbidityMax: fp(2.0)})
	require.Len(t, anomalies, 1)
	assert.Equal(t, []string{"turbidity"}, anomalies[0].Anomalies)
}

func TestDetectAnomaliesNilFieldsCannotViolate(t *testing.T) {
	readings := []models.Reading{
		testReading(time.Now(), "r", "s", nil, nil, nil, nil),
	}

	assert.Empty(t, DetectAnomalies(readings, nil))
}

func TestDefaultThresholds(t *testing.T) {
	thresholds := DefaultThresholds()

	assert.Equal(t, 10.0, thresholds.TemperatureMin)
	assert.Equal(t, 35.0, thresholds.TemperatureMax)
	assert.Equal(t, 6.0, thresholds.PHMin)
	assert.Equal(t, 9.0, thresholds.PHMax)
	assert.Equal(t, 10.0, thresholds.TurbidityMax)
	assert.Equal(t, 20.0, thresholds.QualityIndexMin)
}
