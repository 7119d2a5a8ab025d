// Package aggregation groups readings by region and sensor and computes the
// descriptive statistics consumed by dashboards and batch summaries.
package aggregation

import (
	"github.com/aquasense/hydrolens/internal/statistics"
	"github.com/aquasense/hydrolens/pkg/models"
)

// Aggregate computes per-parameter statistics, unique region/sensor lists
// (first-seen order), the observed date range and the quality distribution
// over readings. Nil parameter values are excluded per-parameter without
// dropping the reading from the grouping counts.
func Aggregate(readings []models.Reading) *models.SensorAggregate {
	var temperatures, phs, turbidities, qualityIndices []float64
	for _, r := range readings {
		if r.Temperature != nil {
			temperatures = append(temperatures, *r.Temperature)
		}
		if r.PH != nil {
			phs = append(phs, *r.PH)
		}
		if r.Turbidity != nil {
			turbidities = append(turbidities, *r.Turbidity)
		}
		if r.RegionAvgQualityIndex != nil {
			qualityIndices = append(qualityIndices, *r.RegionAvgQualityIndex)
		}
	}

	return &models.SensorAggregate{
		Temperature:           statistics.Calculate(temperatures),
		PH:                    statistics.Calculate(phs),
		Turbidity:             statistics.Calculate(turbidities),
		RegionAvgQualityIndex: statistics.Mean(qualityIndices),
		TotalReadings:         len(readings),
		Regions:               uniqueRegions(readings),
		Sensors:               uniqueSensors(readings),
		DateRange:             dateRange(readings),
		QualityDistribution:   QualityDistribution(qualityIndices),
	}
}

// AggregateByRegion partitions readings by region (stable, first-seen order
// within each partition) and aggregates each partition, attaching the most
// recent reading of the region.
func AggregateByRegion(readings []models.Reading) map[string]*models.RegionAggregate {
	partitions, order := partition(readings, func(r models.Reading) string { return r.Region })

	result := make(map[string]*models.RegionAggregate, len(order))
	for _, region := range order {
		group := partitions[region]
		result[region] = &models.RegionAggregate{
			SensorAggregate: *Aggregate(group),
			LatestReading:   latestReading(group),
		}
	}
	return result
}

// AggregateBySensor partitions readings by sensor ID and aggregates each
// partition, attaching the latest reading and the sensor's reporting
// frequency.
func AggregateBySensor(readings []models.Reading) map[string]*models.SensorGroupAggregate {
	partitions, order := partition(readings, func(r models.Reading) string { return r.SensorID })

	result := make(map[string]*models.SensorGroupAggregate, len(order))
	for _, sensorID := range order {
		group := partitions[sensorID]
		freq := ReadingFrequency(group)
		result[sensorID] = &models.SensorGroupAggregate{
			SensorAggregate:  *Aggregate(group),
			LatestReading:    latestReading(group),
			ReadingFrequency: &freq,
		}
	}
	return result
}

// QualityDistribution buckets quality indices by rating. Percentages are
// rounded to one decimal; an empty input yields zero counts and an empty
// percentage map.
func QualityDistribution(indices []float64) *models.QualityDistribution {
	dist := &models.QualityDistribution{
		Total:       len(indices),
		Percentages: make(map[string]float64, 4),
	}

	for _, index := range indices {
		switch models.RateQuality(index) {
		case models.QualityExcellent:
			dist.Excellent++
		case models.QualityGood:
			dist.Good++
		case models.QualityFair:
			dist.Fair++
		case models.QualityPoor:
			dist.Poor++
		}
	}

	if dist.Total > 0 {
		total := float64(dist.Total)
		dist.Percentages[string(models.QualityExcellent)] = statistics.Round1(float64(dist.Excellent) / total * 100)
		dist.Percentages[string(models.QualityGood)] = statistics.Round1(float64(dist.Good) / total * 100)
		dist.Percentages[string(models.QualityFair)] = statistics.Round1(float64(dist.Fair) / total * 100)
		dist.Percentages[string(models.QualityPoor)] = statistics.Round1(float64(dist.Poor) / total * 100)
	}

	return dist
}

func partition(readings []models.Reading, key func(models.Reading) string) (map[string][]models.Reading, []string) {
	partitions := make(map[string][]models.Reading)
	var order []string
	for _, r := range readings {
		k := key(r)
		if _, seen := partitions[k]; !seen {
			order = append(order, k)
		}
		partitions[k] = append(partitions[k], r)
	}
	return partitions, order
}

func uniqueRegions(readings []models.Reading) []string {
	return uniqueKeys(readings, func(r models.Reading) string { return r.Region })
}

func uniqueSensors(readings []models.Reading) []string {
	return uniqueKeys(readings, func(r models.Reading) string { return r.SensorID })
}

func uniqueKeys(readings []models.Reading, key func(models.Reading) string) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, r := range readings {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func latestReading(readings []models.Reading) *models.Reading {
	if len(readings) == 0 {
		return nil
	}

	latest := readings[0]
	for _, r := range readings[1:] {
		if r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	return &latest
}

func dateRange(readings []models.Reading) models.DateRange {
	if len(readings) == 0 {
		return models.DateRange{}
	}

	start := readings[0].Timestamp
	end := readings[0].Timestamp
	for _, r := range readings[1:] {
		if r.Timestamp.Before(start) {
			start = r.Timestamp
		}
		if r.Timestamp.After(end) {
			end = r.Timestamp
		}
	}
	return models.DateRange{Start: &start, End: &end}
}
