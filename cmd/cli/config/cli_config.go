package config

import (
	"github.com/spf13/viper"
)

// CLIConfig holds user preferences read from the config file or
// HYDROLENS_*-prefixed environment variables.
type CLIConfig struct {
	DefaultRegion   string             `mapstructure:"default_region"`
	CacheTTLMinutes int                `mapstructure:"cache_ttl_minutes"`
	OutputFormat    string             `mapstructure:"output_format"`
	Thresholds      ThresholdConfig    `mapstructure:"thresholds"`
	Preferences     PreferencesConfig  `mapstructure:"preferences"`
}

// ThresholdConfig overrides the engine's default anomaly bounds. Nil fields
// keep the built-in defaults.
type ThresholdConfig struct {
	TemperatureMin  *float64 `mapstructure:"temperature_min"`
	TemperatureMax  *float64 `mapstructure:"temperature_max"`
	PHMin           *float64 `mapstructure:"ph_min"`
	PHMax           *float64 `mapstructure:"ph_max"`
	TurbidityMax    *float64 `mapstructure:"turbidity_max"`
	QualityIndexMin *float64 `mapstructure:"quality_index_min"`
}

// PreferencesConfig holds display preferences.
type PreferencesConfig struct {
	PrettyJSON bool   `mapstructure:"pretty_json"`
	TimeZone   string `mapstructure:"timezone"`
}

// Load returns the CLI configuration with defaults applied; viper must have
// been initialized (config path, env prefix) by the root command first.
func Load() (*CLIConfig, error) {
	cfg := &CLIConfig{
		CacheTTLMinutes: 10,
		OutputFormat:    "json",
		Preferences: PreferencesConfig{
			PrettyJSON: true,
			TimeZone:   "UTC",
		},
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
