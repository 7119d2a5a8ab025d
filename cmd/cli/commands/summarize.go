package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aquasense/hydrolens/cmd/cli/config"
	"github.com/aquasense/hydrolens/internal/batch"
)

type SummarizeOptions struct {
	InputFile             string
	Interval              string
	RegionalBreakdown     bool
	SensorBreakdown       bool
	NoQualityDistribution bool
	IncludeAnomalies      bool
	OutputFile            string
}

func NewSummarizeCmd(logger *logrus.Logger) *cobra.Command {
	opts := &SummarizeOptions{}

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Group readings into time buckets and emit one summary per bucket",
		Long: `Group readings into hourly, daily, weekly or monthly buckets and emit a
timestamped summary per bucket, newest first.`,
		Example: `  # Daily summaries
  hydrolens-cli summarize --input readings.json --interval daily

  # Weekly summaries with per-region breakdowns and anomaly lists
  hydrolens-cli summarize --input readings.json --interval weekly --regional-breakdown --anomalies`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(opts, logger)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input readings JSON file (required)")
	cmd.Flags().StringVar(&opts.Interval, "interval", "daily", "Bucket interval (hourly, daily, weekly, monthly)")
	cmd.Flags().BoolVar(&opts.RegionalBreakdown, "regional-breakdown", false, "Include per-region aggregates per bucket")
	cmd.Flags().BoolVar(&opts.SensorBreakdown, "sensor-breakdown", false, "Include per-sensor aggregates per bucket")
	cmd.Flags().BoolVar(&opts.NoQualityDistribution, "no-quality-distribution", false, "Omit the per-bucket quality distribution")
	cmd.Flags().BoolVar(&opts.IncludeAnomalies, "anomalies", false, "Include per-bucket anomaly lists")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runSummarize(opts *SummarizeOptions, logger *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	interval, err := batch.ParseInterval(opts.Interval)
	if err != nil {
		return err
	}

	readings, err := loadReadings(opts.InputFile)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"readings": len(readings),
		"interval": interval,
	}).Debug("Loaded readings")

	generator := batch.NewGenerator(logger, nil, nil)
	summaries := generator.Generate(readings, interval, &batch.Options{
		IncludeRegionalBreakdown:   opts.RegionalBreakdown,
		IncludeSensorBreakdown:     opts.SensorBreakdown,
		IncludeQualityDistribution: !opts.NoQualityDistribution,
		IncludeAnomalies:           opts.IncludeAnomalies,
		AnomalyThresholds:          thresholdOverrides(cfg),
	})

	return writeJSON(opts.OutputFile, summaries, cfg.Preferences.PrettyJSON)
}
