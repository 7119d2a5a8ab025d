package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aquasense/hydrolens/cmd/cli/commands"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	logger := logrus.New()

	rootCmd := &cobra.Command{
		Use:   "hydrolens-cli",
		Short: "Water-quality analytics CLI",
		Long: `A command-line interface for aggregating, summarizing and forecasting
water-quality sensor readings.`,
		Version: "0.1.0",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hydrolens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Initialize Viper
	cobra.OnInitialize(initConfig)

	// Add commands
	rootCmd.AddCommand(commands.NewAggregateCmd(logger))
	rootCmd.AddCommand(commands.NewSummarizeCmd(logger))
	rootCmd.AddCommand(commands.NewForecastCmd(logger))

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home + "/.hydrolens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HYDROLENS")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
