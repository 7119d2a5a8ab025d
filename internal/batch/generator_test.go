package batch

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasense/hydrolens/pkg/models"
)

func fp(v float64) *float64 { return &v }

func reading(ts time.Time, region, sensorID string, qualityIndex float64) models.Reading {
	return models.Reading{
		Timestamp:             ts,
		Region:                region,
		SensorID:              sensorID,
		Temperature:           fp(18.5),
		PH:                    fp(7.1),
		Turbidity:             fp(2.0),
		RegionAvgQualityIndex: fp(qualityIndex),
	}
}

func TestIntervalKey(t *testing.T) {
	// 2024-01-10 was a Wednesday.
	ts := time.Date(2024, 1, 10, 14, 37, 12, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC), IntervalKey(ts, IntervalHourly))
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), IntervalKey(ts, IntervalDaily))
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), IntervalKey(ts, IntervalWeekly)) // most recent Sunday
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), IntervalKey(ts, IntervalMonthly))
}

func TestIntervalKeySundayIsItsOwnWeekStart(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), IntervalKey(sunday, IntervalWeekly))
}

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, start.Add(time.Hour), PeriodEnd(start, IntervalHourly))
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), PeriodEnd(start, IntervalDaily))
	assert.Equal(t, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), PeriodEnd(start, IntervalWeekly))
	// Calendar-aware: same day next month, not +30 days.
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), PeriodEnd(start, IntervalMonthly))
}

func TestParseInterval(t *testing.T) {
	for _, name := range []string{"hourly", "daily", "weekly", "monthly"} {
		interval, err := ParseInterval(name)
		require.NoError(t, err)
		assert.Equal(t, Interval(name), interval)
	}

	_, err := ParseInterval("fortnightly")
	assert.Error(t, err)
}

func TestGenerateOrderingAndPartition(t *testing.T) {
	base := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	var readings []models.Reading
	// Three days, unevenly filled, supplied out of order.
	for _, offset := range []int{2, 0, 1, 2, 2, 0} {
		readings = append(readings, reading(base.AddDate(0, 0, offset), "North Coast", "nc-01", 75))
	}

	generator := NewGenerator(nil, nil, nil)
	summaries := generator.Generate(readings, IntervalDaily, nil)

	require.Len(t, summaries, 3)

	// Newest bucket first, strictly descending.
	for i := 1; i < len(summaries); i++ {
		assert.True(t, summaries[i-1].Timestamp.After(summaries[i].Timestamp))
	}

	// Partitioned, not dropped or duplicated.
	total := 0
	for _, s := range summaries {
		total += s.TotalReadings
		assert.Equal(t, "daily", s.Interval)
		assert.Equal(t, s.Timestamp, s.PeriodStart)
		assert.Equal(t, s.PeriodStart.AddDate(0, 0, 1), s.PeriodEnd)
	}
	assert.Equal(t, len(readings), total)

	assert.Equal(t, 3, summaries[0].TotalReadings)
	assert.Equal(t, 1, summaries[1].TotalReadings)
	assert.Equal(t, 2, summaries[2].TotalReadings)
}

func TestGenerateEmptyInput(t *testing.T) {
	generator := NewGenerator(nil, nil, nil)

	assert.Empty(t, generator.Generate(nil, IntervalHourly, nil))
}

func TestGenerateBucketStatistics(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	generator := NewGenerator(nil, clock, nil)

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		reading(base.Add(1*time.Hour), "North Coast", "nc-01", 85),
		reading(base.Add(5*time.Hour), "North Coast", "nc-02", 65),
		reading(base.Add(9*time.Hour), "South Bay", "sb-01", 45),
	}

	summaries := generator.Generate(readings, IntervalDaily, nil)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 3, s.TotalReadings)
	assert.Equal(t, 2, s.RegionsCount)
	assert.Equal(t, 3, s.SensorsCount)
	assert.Equal(t, []string{"North Coast", "South Bay"}, s.Regions)
	assert.Equal(t, 3, s.RegionAvgQualityIndex.Count)
	assert.InDelta(t, 65.0, s.RegionAvgQualityIndex.Average, 1e-9)
	assert.Equal(t, models.QualityGood, s.OverallQualityRating)
	assert.Equal(t, clock.Now(), s.GeneratedAt)

	// 3 sensors * 0.25/h * 24h = 18 expected readings.
	assert.InDelta(t, 3.0/18.0*100, s.DataCompletenessPercentage, 1e-9)

	// Quality distribution is on by default; breakdowns are opt-in.
	require.NotNil(t, s.QualityDistribution)
	assert.Equal(t, 3, s.QualityDistribution.Total)
	assert.Nil(t, s.RegionalBreakdown)
	assert.Nil(t, s.SensorBreakdown)
	assert.Nil(t, s.Anomalies)
}

func TestGenerateCompletenessClamped(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	var readings []models.Reading
	// One sensor, one hourly bucket, far more readings than the expected
	// one-per-four-hours rate.
	for i := 0; i < 12; i++ {
		readings = append(readings, reading(base.Add(time.Duration(i)*time.Minute), "r", "s", 70))
	}

	generator := NewGenerator(nil, nil, nil)
	summaries := generator.Generate(readings, IntervalHourly, nil)

	require.Len(t, summaries, 1)
	assert.Equal(t, 100.0, summaries[0].DataCompletenessPercentage)
}

func TestGenerateOptionalBreakdowns(t *testing.T) {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		reading(base, "North Coast", "nc-01", 85),
		reading(base.Add(time.Hour), "South Bay", "sb-01", 55),
	}
	// An out-of-range temperature so the anomaly list is non-empty.
	hot := 40.0
	readings[1].Temperature = &hot

	generator := NewGenerator(nil, nil, nil)
	opts := &Options{
		IncludeRegionalBreakdown:   true,
		IncludeSensorBreakdown:     true,
		IncludeQualityDistribution: false,
		IncludeAnomalies:           true,
	}
	summaries := generator.Generate(readings, IntervalDaily, opts)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Nil(t, s.QualityDistribution)
	require.Contains(t, s.RegionalBreakdown, "North Coast")
	require.Contains(t, s.RegionalBreakdown, "South Bay")
	require.Contains(t, s.SensorBreakdown, "nc-01")
	require.Len(t, s.Anomalies, 1)
	assert.Equal(t, []string{"temperature"}, s.Anomalies[0].Anomalies)
}
