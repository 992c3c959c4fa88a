// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rxndb CLI.
// Implements: prd001-ingestion, prd002-preprocess, prd003-export,
//             prd004-dashboard (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rxndb CLI.
var rootCmd = &cobra.Command{
	Use:   "rxndb",
	Short: "Thermodynamic reaction database tooling",
	Long: `rxndb manages a database of experimentally derived phase boundaries
and melting curves for mineral systems. Records live as YAML files, one
reaction per file, each carrying a polynomial fit of pressure as a
function of temperature plus the calibration window the fit is valid in.

Each pipeline stage is a subcommand: preprocess converts raw source
databases into record files, load validates and tabulates them, sample
evaluates fitted curves, export snapshots the table, and serve runs the
plotting dashboard.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rxndb.yaml or ~/.config/rxndb/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory of YAML record files (overrides config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rxndb")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rxndb"))
		}
	}

	viper.SetDefault("dataset.data_dir", "data")
	viper.SetDefault("dataset.sample_resolution", 100)
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("export.output_dir", "exports")

	viper.SetEnvPrefix("RXNDB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
