package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aquasense/hydrolens/cmd/cli/config"
	"github.com/aquasense/hydrolens/internal/forecast"
)

type ForecastOptions struct {
	InputFile  string
	Region     string
	AllRegions bool
	OutputFile string
}

func NewForecastCmd(logger *logrus.Logger) *cobra.Command {
	opts := &ForecastOptions{}

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Generate a 7-day quality-index forecast with confidence bounds",
		Long: `Fit a linear trend with day-of-week seasonal adjustment over recent
readings and predict the regional quality index for the next seven days.`,
		Example: `  # Forecast for one region
  hydrolens-cli forecast --input readings.json --region "North Coast"

  # One forecast per region plus an overall forecast
  hydrolens-cli forecast --input readings.json --all-regions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForecast(opts, logger)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Input readings JSON file (required)")
	cmd.Flags().StringVarP(&opts.Region, "region", "r", "", "Region to forecast (empty for all readings)")
	cmd.Flags().BoolVar(&opts.AllRegions, "all-regions", false, "Forecast every region plus an overall forecast")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runForecast(opts *ForecastOptions, logger *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	readings, err := loadReadings(opts.InputFile)
	if err != nil {
		return err
	}

	region := opts.Region
	if region == "" && !opts.AllRegions {
		region = cfg.DefaultRegion
	}
	logger.WithFields(logrus.Fields{
		"readings": len(readings),
		"region":   region,
	}).Debug("Loaded readings")

	engine := forecast.NewEngine(nil, logger)

	if opts.AllRegions {
		return writeJSON(opts.OutputFile, engine.ForecastAllRegions(readings), cfg.Preferences.PrettyJSON)
	}

	cache := forecastCache(cfg)
	key := forecast.Key(region, map[string]interface{}{"horizon_days": 7})
	result, ok := cache.Get(key)
	if !ok {
		result = engine.Forecast(readings, region)
		cache.Set(key, result)
	}

	return writeJSON(opts.OutputFile, result, cfg.Preferences.PrettyJSON)
}

var processCache *forecast.Cache

// forecastCache returns the process-wide forecast cache, constructing it on
// first use. Each CLI process owns exactly one cache instance; repeated
// runForecast calls within the process (tests, future REPL mode) share it.
func forecastCache(cfg *config.CLIConfig) *forecast.Cache {
	if processCache == nil {
		processCache = forecast.NewCache(cfg.CacheTTLMinutes, nil, nil)
	}
	return processCache
}
