package models

import (
	"time"
)

// Reading is a single time-stamped water-quality observation supplied by the
// caller. Numeric fields are pointers: a nil field is excluded from the
// statistics for that parameter but the reading still participates in
// region/sensor grouping. The engine never mutates readings.
type Reading struct {
	Timestamp             time.Time `json:"timestamp"`
	Region                string    `json:"region"`
	SensorID              string    `json:"sensor_id"`
	Temperature           *float64  `json:"temperature"`
	PH                    *float64  `json:"pH"`
	Turbidity             *float64  `json:"turbidity"`
	RegionAvgQualityIndex *float64  `json:"region_avg_quality_index"`
}

// StatSummary holds descriptive statistics over a numeric slice. The zero
// value is the defined result for empty input, not an error.
type StatSummary struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"stdDev"`
	Count   int     `json:"count"`
}

// QualityRating classifies a 0-100 quality index.
type QualityRating string

const (
	QualityExcellent QualityRating = "excellent"
	QualityGood      QualityRating = "good"
	QualityFair      QualityRating = "fair"
	QualityPoor      QualityRating = "poor"
)

// RateQuality maps a quality index to its rating. These breakpoints are the
// single source of truth for quality classification across the engine.
func RateQuality(index float64) QualityRating {
	switch {
	case index >= 80:
		return QualityExcellent
	case index >= 60:
		return QualityGood
	case index >= 40:
		return QualityFair
	default:
		return QualityPoor
	}
}

// QualityDistribution counts readings per quality rating bucket.
type QualityDistribution struct {
	Excellent   int                `json:"excellent"`
	Good        int                `json:"good"`
	Fair        int                `json:"fair"`
	Poor        int                `json:"poor"`
	Total       int                `json:"total"`
	Percentages map[string]float64 `json:"percentages"`
}

// DateRange is the observed timestamp span of a reading set.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// ReadingFrequency describes how often a sensor reports. With fewer than two
// readings every numeric field is zero and the timestamps are nil.
type ReadingFrequency struct {
	AverageIntervalHours   float64    `json:"average_interval_hours"`
	TotalReadings          int        `json:"total_readings"`
	FirstReading           *time.Time `json:"first_reading"`
	LastReading            *time.Time `json:"last_reading"`
	ExpectedReadingsPerDay float64    `json:"expected_readings_per_day"`
}

// SensorAggregate is the result of aggregating a slice of readings.
type SensorAggregate struct {
	Temperature           StatSummary          `json:"temperature"`
	PH                    StatSummary          `json:"pH"`
	Turbidity             StatSummary          `json:"turbidity"`
	RegionAvgQualityIndex float64              `json:"region_avg_quality_index"`
	TotalReadings         int                  `json:"total_readings"`
	Regions               []string             `json:"regions"`
	Sensors               []string             `json:"sensors"`
	DateRange             DateRange            `json:"date_range"`
	QualityDistribution   *QualityDistribution `json:"quality_distribution"`
}

// RegionAggregate is a SensorAggregate scoped to one region.
type RegionAggregate struct {
	SensorAggregate
	LatestReading *Reading `json:"latest_reading"`
}

// SensorGroupAggregate is a SensorAggregate scoped to one sensor.
type SensorGroupAggregate struct {
	SensorAggregate
	LatestReading    *Reading          `json:"latest_reading"`
	ReadingFrequency *ReadingFrequency `json:"reading_frequency"`
}

// AnomalousReading is a copy of a reading that violated at least one
// threshold, annotated with the offending parameter names. The original
// reading in the caller's slice is untouched.
type AnomalousReading struct {
	Reading
	Anomalies []string `json:"anomalies"`
}

// Trend classifications shared by the trend analyzer and the forecaster.
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendStable           = "stable"
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendUnknown          = "unknown"
	TrendInsufficientData = "insufficient_data"
)

// TrendResult describes the linear trend of one parameter over time.
type TrendResult struct {
	Trend            string  `json:"trend"`
	Slope            float64 `json:"slope"`
	Correlation      float64 `json:"correlation"`
	ChangePercentage float64 `json:"change_percentage"`
	FirstValue       float64 `json:"first_value"`
	LastValue        float64 `json:"last_value"`
	DataPoints       int     `json:"data_points"`
}

// BatchSummary is one fixed time bucket of readings with its statistics.
// Created fresh per generator call; never updated in place.
type BatchSummary struct {
	Timestamp                  time.Time     `json:"timestamp"`
	Interval                   string        `json:"interval"`
	PeriodStart                time.Time     `json:"period_start"`
	PeriodEnd                  time.Time     `json:"period_end"`
	TotalReadings              int           `json:"total_readings"`
	RegionsCount               int           `json:"regions_count"`
	SensorsCount               int           `json:"sensors_count"`
	DataCompletenessPercentage float64       `json:"data_completeness_percentage"`
	Temperature                StatSummary   `json:"temperature"`
	PH                         StatSummary   `json:"pH"`
	Turbidity                  StatSummary   `json:"turbidity"`
	RegionAvgQualityIndex      StatSummary   `json:"region_avg_quality_index"`
	OverallQualityRating       QualityRating `json:"overall_quality_rating"`
	Regions                    []string      `json:"regions"`
	Sensors                    []string      `json:"sensors"`
	GeneratedAt                time.Time     `json:"generated_at"`

	RegionalBreakdown   map[string]*RegionAggregate      `json:"regional_breakdown,omitempty"`
	SensorBreakdown     map[string]*SensorGroupAggregate `json:"sensor_breakdown,omitempty"`
	QualityDistribution *QualityDistribution             `json:"quality_distribution,omitempty"`
	Anomalies           []AnomalousReading               `json:"anomalies,omitempty"`
}

// ConfidenceInterval bounds a forecast point. Bounds are clamped to [0,100].
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// ForecastPoint is one predicted day of the quality-index forecast.
type ForecastPoint struct {
	Date               string             `json:"date"`
	Timestamp          time.Time          `json:"timestamp"`
	QualityIndex       float64            `json:"quality_index"`
	DayOffset          int                `json:"day_offset"`
	SeasonalFactor     float64            `json:"seasonal_factor"`
	TrendComponent     float64            `json:"trend_component"`
	BaseComponent      float64            `json:"base_component"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
}

// ForecastSummary condenses a forecast for dashboard headers.
type ForecastSummary struct {
	CurrentQualityIndex float64 `json:"current_quality_index"`
	AverageForecast     float64 `json:"average_forecast"`
	ExpectedChange      float64 `json:"expected_change"`
	TrendStrength       float64 `json:"trend_strength"`
	Confidence          float64 `json:"confidence"`
}

// ForecastMetadata records provenance for a forecast run.
type ForecastMetadata struct {
	ForecastID     string    `json:"forecast_id"`
	Region         string    `json:"region"`
	ModelVersion   string    `json:"model_version"`
	DataPointsUsed int       `json:"data_points_used"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// ForecastResult is the complete output of a forecast run. On failure
// Success is false, Error holds the reason, ForecastQualityIndex is empty
// and Trend is "unknown"; the engine never raises instead.
type ForecastResult struct {
	Success              bool              `json:"success"`
	Error                string            `json:"error,omitempty"`
	ForecastQualityIndex []ForecastPoint   `json:"forecast_quality_index"`
	Trend                string            `json:"trend"`
	Summary              *ForecastSummary  `json:"summary,omitempty"`
	Metadata             *ForecastMetadata `json:"metadata,omitempty"`
}
