// Package forecast predicts the regional water-quality index seven days
// ahead from recent history, blending a fitted linear trend with a smoothed
// base level and day-of-week seasonal adjustment.
package forecast

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/aquasense/hydrolens/internal/observability/metrics"
	"github.com/aquasense/hydrolens/internal/statistics"
	"github.com/aquasense/hydrolens/pkg/models"
)

const modelVersion = "1.0.0"

// Config tunes the forecasting engine. Zero fields take the defaults below;
// Clock, Noise and Metrics are optional injection points.
type Config struct {
	// HorizonDays is how many daily predictions to emit.
	HorizonDays int
	// RecentWindow caps how many of the newest points feed the model.
	RecentWindow int
	// MinHistoricalPoints is the floor below which forecasting fails.
	MinHistoricalPoints int
	// TrendWeight and BaseWeight blend the regression and smoothed-base
	// components of each prediction.
	TrendWeight float64
	BaseWeight  float64
	// StableSlopeThreshold is the per-day slope magnitude below which the
	// overall trend is labeled stable.
	StableSlopeThreshold float64

	// Noise perturbs each prediction; the default draws uniformly from
	// [-1, 1]. Tests inject a deterministic source.
	Noise func() float64
	// Clock stamps forecast metadata.
	Clock clockwork.Clock
	// Metrics, when set, records forecast runs.
	Metrics *metrics.Metrics
}

func (c *Config) applyDefaults() {
	if c.HorizonDays <= 0 {
		c.HorizonDays = 7
	}
	if c.RecentWindow <= 0 {
		c.RecentWindow = 30
	}
	if c.MinHistoricalPoints <= 0 {
		c.MinHistoricalPoints = 7
	}
	if c.TrendWeight == 0 && c.BaseWeight == 0 {
		c.TrendWeight = 0.6
		c.BaseWeight = 0.4
	}
	if c.StableSlopeThreshold == 0 {
		c.StableSlopeThreshold = 0.5
	}
	if c.Noise == nil {
		c.Noise = func() float64 { return rand.Float64()*2 - 1 }
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
}

// Engine generates water-quality forecasts. Construct with NewEngine.
type Engine struct {
	logger *logrus.Logger
	config Config
}

// NewEngine creates a forecasting engine. A nil config or logger falls back
// to defaults.
func NewEngine(config *Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	return &Engine{logger: logger, config: cfg}
}

// point is one usable historical observation.
type point struct {
	timestamp time.Time
	value     float64
}

// Forecast predicts the quality index for the next HorizonDays calendar
// days. An empty region means all readings. The method is total: every
// failure, including insufficient history, is converted into a
// ForecastResult with Success false rather than an error or panic.
func (e *Engine) Forecast(historical []models.Reading, region string) (result *models.ForecastResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("region", region).WithField("panic", r).
				Error("Forecast generation panicked")
			result = e.failure(fmt.Sprintf("forecast generation failed: %v", r))
		}
		e.config.Metrics.ObserveForecast(region, result.Success, time.Since(start))
	}()

	points := usablePoints(historical, region)
	if len(points) < e.config.MinHistoricalPoints {
		e.logger.WithFields(logrus.Fields{
			"region": region,
			"points": len(points),
		}).Warn("Insufficient historical data for forecast")
		return e.failure(fmt.Sprintf("insufficient historical data: need at least %d points, got %d",
			e.config.MinHistoricalPoints, len(points)))
	}

	// Model only the recent window; older history adds noise, not signal.
	if len(points) > e.config.RecentWindow {
		points = points[len(points)-e.config.RecentWindow:]
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.value
	}

	// Regression against sequence index, not wall-clock time: readings may
	// be unevenly spaced and the horizon is expressed in steps.
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	slope, intercept, r2 := statistics.LinearRegression(xs, values)

	factors := seasonalFactors(points)
	base := smoothedBase(values)
	margins := confidenceMargins(values, e.config.HorizonDays)

	last := points[len(points)-1]
	forecasts := make([]models.ForecastPoint, 0, e.config.HorizonDays)
	for offset := 1; offset <= e.config.HorizonDays; offset++ {
		ts := last.timestamp.UTC().AddDate(0, 0, offset)
		factor := factors.forWeekday(ts.Weekday())

		trendComponent := slope*float64(len(values)-1+offset) + intercept
		raw := trendComponent*e.config.TrendWeight + base*factor*e.config.BaseWeight + e.config.Noise()
		qualityIndex := statistics.Round1(statistics.Clamp(raw, 0, 100))

		m := margins[offset-1]
		forecasts = append(forecasts, models.ForecastPoint{
			Date:           ts.Format("2006-01-02"),
			Timestamp:      ts,
			QualityIndex:   qualityIndex,
			DayOffset:      offset,
			SeasonalFactor: factor,
			TrendComponent: trendComponent,
			BaseComponent:  base,
			ConfidenceInterval: models.ConfidenceInterval{
				Lower:           statistics.Round1(statistics.Clamp(qualityIndex-m.margin, 0, 100)),
				Upper:           statistics.Round1(statistics.Clamp(qualityIndex+m.margin, 0, 100)),
				ConfidenceLevel: m.level,
			},
		})
	}

	forecastValues := make([]float64, len(forecasts))
	for i, f := range forecasts {
		forecastValues[i] = f.QualityIndex
	}
	averageForecast := statistics.Mean(forecastValues)

	e.logger.WithFields(logrus.Fields{
		"region": region,
		"points": len(points),
		"slope":  slope,
	}).Debug("Generated forecast")

	return &models.ForecastResult{
		Success:              true,
		ForecastQualityIndex: forecasts,
		Trend:                e.trendLabel(values),
		Summary: &models.ForecastSummary{
			CurrentQualityIndex: last.value,
			AverageForecast:     statistics.Round1(averageForecast),
			ExpectedChange:      statistics.Round1(averageForecast - last.value),
			TrendStrength:       math.Abs(slope),
			Confidence:          statistics.Clamp(r2, 0, 1),
		},
		Metadata: &models.ForecastMetadata{
			ForecastID:     uuid.NewString(),
			Region:         regionLabel(region),
			ModelVersion:   modelVersion,
			DataPointsUsed: len(points),
			GeneratedAt:    e.config.Clock.Now().UTC(),
		},
	}
}

// ForecastAllRegions runs one forecast per distinct region present in the
// readings (first-seen order determines nothing here; the result is a map)
// plus an unscoped "overall" forecast.
func (e *Engine) ForecastAllRegions(readings []models.Reading) map[string]*models.ForecastResult {
	results := make(map[string]*models.ForecastResult)
	for _, r := range readings {
		if _, seen := results[r.Region]; seen {
			continue
		}
		results[r.Region] = e.Forecast(readings, r.Region)
	}
	results["overall"] = e.Forecast(readings, "")
	return results
}

// trendLabel classifies the overall direction from a short fit over the
// last seven window values: slope magnitude under the stable threshold (in
// index points per step) reads as stable.
func (e *Engine) trendLabel(values []float64) string {
	tail := values
	if len(tail) > 7 {
		tail = tail[len(tail)-7:]
	}

	xs := make([]float64, len(tail))
	for i := range xs {
		xs[i] = float64(i)
	}
	slope, _, _ := statistics.LinearRegression(xs, tail)

	switch {
	case math.Abs(slope) < e.config.StableSlopeThreshold:
		return models.TrendStable
	case slope > 0:
		return models.TrendImproving
	default:
		return models.TrendDeclining
	}
}

func (e *Engine) failure(message string) *models.ForecastResult {
	return &models.ForecastResult{
		Success:              false,
		Error:                message,
		ForecastQualityIndex: []models.ForecastPoint{},
		Trend:                models.TrendUnknown,
	}
}

// usablePoints filters by region, drops readings without a quality index
// and returns the rest sorted ascending by timestamp.
func usablePoints(readings []models.Reading, region string) []point {
	points := make([]point, 0, len(readings))
	for _, r := range readings {
		if region != "" && r.Region != region {
			continue
		}
		if r.RegionAvgQualityIndex == nil {
			continue
		}
		points = append(points, point{timestamp: r.Timestamp, value: *r.RegionAvgQualityIndex})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].timestamp.Before(points[j].timestamp)
	})
	return points
}

// smoothedBase is the most recent 3-point moving-average value over the
// last seven window values; shorter tails fall back to their plain mean.
func smoothedBase(values []float64) float64 {
	tail := values
	if len(tail) > 7 {
		tail = tail[len(tail)-7:]
	}
	smoothed := statistics.MovingAverage(tail, 3)
	if len(smoothed) == 0 {
		return statistics.Mean(tail)
	}
	return smoothed[len(smoothed)-1]
}

func regionLabel(region string) string {
	if region == "" {
		return "overall"
	}
	return region
}
