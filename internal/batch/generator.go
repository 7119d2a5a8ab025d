// Package batch groups readings into fixed time buckets and emits one
// timestamped summary per bucket, newest bucket first.
package batch

import (
	"math"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/aquasense/hydrolens/internal/aggregation"
	"github.com/aquasense/hydrolens/internal/observability/metrics"
	"github.com/aquasense/hydrolens/internal/statistics"
	"github.com/aquasense/hydrolens/pkg/models"
)

// expectedReadingsPerSensorHour is the reporting-rate assumption behind the
// completeness percentage: one reading every four hours per sensor. This is
// a fixed design constant, not configuration.
const expectedReadingsPerSensorHour = 0.25

// Options toggles the optional per-bucket breakdowns. The quality
// distribution is on by default; everything else is opt-in.
type Options struct {
	IncludeRegionalBreakdown   bool
	IncludeSensorBreakdown     bool
	IncludeQualityDistribution bool
	IncludeAnomalies           bool

	// Thresholds used when IncludeAnomalies is set; nil means defaults.
	AnomalyThresholds *aggregation.ThresholdOverrides
}

// DefaultOptions returns the generator defaults.
func DefaultOptions() Options {
	return Options{IncludeQualityDistribution: true}
}

// Generator produces batch summaries. Construct with NewGenerator.
type Generator struct {
	logger  *logrus.Logger
	clock   clockwork.Clock
	metrics *metrics.Metrics
}

// NewGenerator creates a batch summary generator. A nil logger or clock
// falls back to the standard logger and wall clock; metrics may be nil.
func NewGenerator(logger *logrus.Logger, clock clockwork.Clock, m *metrics.Metrics) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{logger: logger, clock: clock, metrics: m}
}

// Generate partitions readings into interval buckets and summarizes each.
// Every reading lands in exactly one bucket; buckets are returned sorted by
// key descending (newest first), an ordering downstream renderers rely on.
// A nil opts means DefaultOptions. Empty input returns an empty slice.
func (g *Generator) Generate(readings []models.Reading, interval Interval, opts *Options) []models.BatchSummary {
	options := DefaultOptions()
	if opts != nil {
		options = *opts
	}

	buckets, keys := g.partition(readings, interval)

	sort.Slice(keys, func(i, j int) bool { return keys[i].After(keys[j]) })

	summaries := make([]models.BatchSummary, 0, len(keys))
	for _, key := range keys {
		summaries = append(summaries, g.summarize(key, buckets[key.UnixNano()], interval, options))
	}

	g.logger.WithFields(logrus.Fields{
		"interval": interval,
		"readings": len(readings),
		"buckets":  len(summaries),
	}).Debug("Generated batch summaries")
	g.metrics.AddBatchSummaries(len(summaries))

	return summaries
}

func (g *Generator) partition(readings []models.Reading, interval Interval) (map[int64][]models.Reading, []time.Time) {
	buckets := make(map[int64][]models.Reading)
	var keys []time.Time
	for _, r := range readings {
		key := IntervalKey(r.Timestamp, interval)
		nano := key.UnixNano()
		if _, seen := buckets[nano]; !seen {
			keys = append(keys, key)
		}
		buckets[nano] = append(buckets[nano], r)
	}
	return buckets, keys
}

func (g *Generator) summarize(key time.Time, readings []models.Reading, interval Interval, options Options) models.BatchSummary {
	aggregate := aggregation.Aggregate(readings)

	summary := models.BatchSummary{
		Timestamp:                  key,
		Interval:                   string(interval),
		PeriodStart:                key,
		PeriodEnd:                  PeriodEnd(key, interval),
		TotalReadings:              aggregate.TotalReadings,
		RegionsCount:               len(aggregate.Regions),
		SensorsCount:               len(aggregate.Sensors),
		DataCompletenessPercentage: g.completeness(len(readings), len(aggregate.Sensors), key, interval),
		Temperature:                aggregate.Temperature,
		PH:                         aggregate.PH,
		Turbidity:                  aggregate.Turbidity,
		RegionAvgQualityIndex:      qualityIndexSummary(readings),
		OverallQualityRating:       models.RateQuality(aggregate.RegionAvgQualityIndex),
		Regions:                    aggregate.Regions,
		Sensors:                    aggregate.Sensors,
		GeneratedAt:                g.clock.Now().UTC(),
	}

	if options.IncludeRegionalBreakdown {
		summary.RegionalBreakdown = aggregation.AggregateByRegion(readings)
	}
	if options.IncludeSensorBreakdown {
		summary.SensorBreakdown = aggregation.AggregateBySensor(readings)
	}
	if options.IncludeQualityDistribution {
		summary.QualityDistribution = aggregate.QualityDistribution
	}
	if options.IncludeAnomalies {
		summary.Anomalies = aggregation.DetectAnomalies(readings, options.AnomalyThresholds)
	}

	return summary
}

// completeness reports actual readings against the expected count for the
// bucket, capped at 100. Expected readings assume each sensor reports once
// every four hours for the bucket's full span.
func (g *Generator) completeness(actual, sensorCount int, start time.Time, interval Interval) float64 {
	expected := math.Ceil(float64(sensorCount) * expectedReadingsPerSensorHour * bucketHours(start, interval))
	if expected == 0 {
		return 0
	}
	return math.Min(100, float64(actual)/expected*100)
}

func qualityIndexSummary(readings []models.Reading) models.StatSummary {
	var indices []float64
	for _, r := range readings {
		if r.RegionAvgQualityIndex != nil {
			indices = append(indices, *r.RegionAvgQualityIndex)
		}
	}
	return statistics.Calculate(indices)
}
