package aggregation

import (
	"github.com/aquasense/hydrolens/pkg/models"
)

// Thresholds are the acceptable bounds per parameter. A reading outside any
// bound is flagged as anomalous for that parameter.
type Thresholds struct {
	TemperatureMin  float64 `json:"temperature_min"`
	TemperatureMax  float64 `json:"temperature_max"`
	PHMin           float64 `json:"ph_min"`
	PHMax           float64 `json:"ph_max"`
	TurbidityMax    float64 `json:"turbidity_max"`
	QualityIndexMin float64 `json:"quality_index_min"`
}

// ThresholdOverrides selectively replaces default thresholds; nil fields
// keep the default.
type ThresholdOverrides struct {
	TemperatureMin  *float64 `json:"temperature_min,omitempty"`
	TemperatureMax  *float64 `json:"temperature_max,omitempty"`
	PHMin           *float64 `json:"ph_min,omitempty"`
	PHMax           *float64 `json:"ph_max,omitempty"`
	TurbidityMax    *float64 `json:"turbidity_max,omitempty"`
	QualityIndexMin *float64 `json:"quality_index_min,omitempty"`
}

// DefaultThresholds returns the operational bounds for potable-water
// monitoring used when the caller supplies no overrides.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TemperatureMin:  10,
		TemperatureMax:  35,
		PHMin:           6.0,
		PHMax:           9.0,
		TurbidityMax:    10.0,
		QualityIndexMin: 20,
	}
}

func (t Thresholds) merge(overrides *ThresholdOverrides) Thresholds {
	if overrides == nil {
		return t
	}
	if overrides.TemperatureMin != nil {
		t.TemperatureMin = *overrides.TemperatureMin
	}
	if overrides.TemperatureMax != nil {
		t.TemperatureMax = *overrides.TemperatureMax
	}
	if overrides.PHMin != nil {
		t.PHMin = *overrides.PHMin
	}
	if overrides.PHMax != nil {
		t.PHMax = *overrides.PHMax
	}
	if overrides.TurbidityMax != nil {
		t.TurbidityMax = *overrides.TurbidityMax
	}
	if overrides.QualityIndexMin != nil {
		t.QualityIndexMin = *overrides.QualityIndexMin
	}
	return t
}

// cloneReading deep-copies a reading so annotated anomaly output never
// aliases the caller's data through the pointer fields.
func cloneReading(r models.Reading) models.Reading {
	clone := r
	clone.Temperature = clonePtr(r.Temperature)
	clone.PH = clonePtr(r.PH)
	clone.Turbidity = clonePtr(r.Turbidity)
	clone.RegionAvgQualityIndex = clonePtr(r.RegionAvgQualityIndex)
	return clone
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

// DetectAnomalies returns annotated copies of the readings that violate at
// least one threshold; the violated parameter names are listed on each copy.
// The input slice and its readings are never modified. Nil parameter values
// cannot violate their threshold.
func DetectAnomalies(readings []models.Reading, overrides *ThresholdOverrides) []models.AnomalousReading {
	thresholds := DefaultThresholds().merge(overrides)

	anomalies := make([]models.AnomalousReading, 0)
	for _, r := range readings {
		var violated []string

		if r.Temperature != nil && (*r.Temperature < thresholds.TemperatureMin || *r.Temperature > thresholds.TemperatureMax) {
			violated = append(violated, "temperature")
		}
		if r.PH != nil && (*r.PH < thresholds.PHMin || *r.PH > thresholds.PHMax) {
			violated = append(violated, "pH")
		}
		if r.Turbidity != nil && *r.Turbidity > thresholds.TurbidityMax {
			violated = append(violated, "turbidity")
		}
		if r.RegionAvgQualityIndex != nil && *r.RegionAvgQualityIndex < thresholds.QualityIndexMin {
			violated = append(violated, "region_avg_quality_index")
		}

		if len(violated) > 0 {
			anomalies = append(anomalies, models.AnomalousReading{
				Reading:   cloneReading(r),
				Anomalies: violated,
			})
		}
	}
	return anomalies
}
