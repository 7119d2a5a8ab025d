package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aquasense/hydrolens/cmd/cli/config"
	"github.com/aquasense/hydrolens/internal/aggregation"
	"github.com/aquasense/hydrolens/pkg/models"
)

type AggregateOptions struct {
	InputFile       string
	ByRegion        bool
	BySensor        bool
	DetectAnomalies bool
	OutputFile      string
}

// AggregateOutput is the JSON document the aggregate command emits.
type AggregateOutput struct {
	Overall   *models.SensorAggregate                    `json:"overall"`
	ByRegion  map[string]*models.RegionAggregate         `json:"by_region,omitempty"`
	BySensor  map[string]*models.SensorGroupAggregate    `json:"by_sensor,omitempty"`
	Anomalies []models.AnomalousReading                  `json:"anomalies,omitempty"`
}

func NewAggregateCmd(logger *logrus.Logger) *cobra.Command {
	opts := &AggregateOptions{}

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate water-quality readings into descriptive statistics",
		Long: `Aggregate a JSON array of sensor readings into per-parameter statistics,
quality distributions and optional region/sensor breakdowns.`,
		Example: `  # Overall statistics
  hydrolens-cli aggregate --input readings.json

  # Per-region and per-sensor breakdowns with anomaly detection
  hydrolens-cli aggregate --input readings.json --by-region --by-sensor --detect-anomalies`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(opts, logger)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input readings JSON file (required)")
	cmd.Flags().BoolVar(&opts.ByRegion, "by-region", false, "Include a per-region breakdown")
	cmd.Flags().BoolVar(&opts.BySensor, "by-sensor", false, "Include a per-sensor breakdown")
	cmd.Flags().BoolVar(&opts.DetectAnomalies, "detect-anomalies", false, "Flag readings outside the configured thresholds")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runAggregate(opts *AggregateOptions, logger *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	readings, err := loadReadings(opts.InputFile)
	if err != nil {
		return err
	}
	logger.WithField("readings", len(readings)).Debug("Loaded readings")

	output := &AggregateOutput{Overall: aggregation.Aggregate(readings)}
	if opts.ByRegion {
		output.ByRegion = aggregation.AggregateByRegion(readings)
	}
	if opts.BySensor {
		output.BySensor = aggregation.AggregateBySensor(readings)
	}
	if opts.DetectAnomalies {
		output.Anomalies = aggregation.DetectAnomalies(readings, thresholdOverrides(cfg))
	}

	return writeJSON(opts.OutputFile, output, cfg.Preferences.PrettyJSON)
}

func thresholdOverrides(cfg *config.CLIConfig) *aggregation.ThresholdOverrides {
	t := cfg.Thresholds
	if t.TemperatureMin == nil && t.TemperatureMax == nil && t.PHMin == nil &&
		t.PHMax == nil && t.TurbidityMax == nil && t.QualityIndexMin == nil {
		return nil
	}
	return &aggregation.ThresholdOverrides{
		TemperatureMin:  t.TemperatureMin,
		TemperatureMax:  t.TemperatureMax,
		PHMin:           t.PHMin,
		PHMax:           t.PHMax,
		TurbidityMax:    t.TurbidityMax,
		QualityIndexMin: t.QualityIndexMin,
	}
}
