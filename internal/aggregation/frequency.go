package aggregation

import (
	"sort"

	"github.com/aquasense/hydrolens/pkg/models"
)

// ReadingFrequency measures how often a sensor reports: readings are sorted
// by timestamp ascending and the mean gap between successive readings is
// expressed in hours. Fewer than two readings is a defined degenerate case
// returning zeros and nil timestamps, never an error.
func ReadingFrequency(sensorReadings []models.Reading) models.ReadingFrequency {
	if len(sensorReadings) < 2 {
		return models.ReadingFrequency{TotalReadings: len(sensorReadings)}
	}

	sorted := make([]models.Reading, len(sensorReadings))
	copy(sorted, sensorReadings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	totalGapHours := 0.0
	for i := 1; i < len(sorted); i++ {
		totalGapHours += sorted[i].Timestamp.Sub(sorted[i-1].Timestamp).Hours()
	}
	averageInterval := totalGapHours / float64(len(sorted)-1)

	expectedPerDay := 0.0
	if averageInterval > 0 {
		expectedPerDay = 24 / averageInterval
	}

	first := sorted[0].Timestamp
	last := sorted[len(sorted)-1].Timestamp

	return models.ReadingFrequency{
		AverageIntervalHours:   averageInterval,
		TotalReadings:          len(sorted),
		FirstReading:           &first,
		LastReading:            &last,
		ExpectedReadingsPerDay: expectedPerDay,
	}
}
