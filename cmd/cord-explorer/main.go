// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cord-explorer CLI.
//
// The analyze command produces the static chart images, explore serves the
// interactive year-range explorer and summarize prints the aggregates as
// YAML or JSON.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "cord-explorer/0.1"

// logger is replaced in PersistentPreRunE once flags are parsed.
var logger = zap.NewNop()

// rootCmd is the base command for the cord-explorer CLI.
var rootCmd = &cobra.Command{
	Use:   "cord-explorer",
	Short: "Explore the CORD-19 paper metadata",
	Long: `cord-explorer loads a CORD-19 style metadata CSV, drops incomplete rows,
and summarizes the remaining papers by publication year, journal and title
vocabulary.

Use analyze to write the chart images, explore to browse the dataset by year
range in a browser, and summarize to print the aggregates as YAML or JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./cord-explorer.yaml or ~/.config/cord-explorer/config.yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("data", "", "metadata CSV path or http(s) URL (default data/metadata.csv)")
	pf.Int("top-n", 0, "number of journals in the ranking (default 10)")
	pf.Int("preview-rows", 0, "number of records in previews (default 10)")
	pf.Duration("http-timeout", 0, "timeout for URL sources (default 5m)")

	_ = viper.BindPFlag("data", pf.Lookup("data"))
	_ = viper.BindPFlag("top_n", pf.Lookup("top-n"))
	_ = viper.BindPFlag("preview_rows", pf.Lookup("preview-rows"))
	_ = viper.BindPFlag("http.timeout", pf.Lookup("http-timeout"))
}

func initConfig() {
	viper.SetDefault("data", filepath.Join("data", "metadata.csv"))
	viper.SetDefault("output_dir", "output")
	viper.SetDefault("top_n", 10)
	viper.SetDefault("preview_rows", 10)
	viper.SetDefault("addr", "localhost:8501")
	viper.SetDefault("default_min_year", 2020)
	viper.SetDefault("default_max_year", 2021)
	viper.SetDefault("format", "yaml")
	viper.SetDefault("wordcloud.width", 800)
	viper.SetDefault("wordcloud.height", 400)
	viper.SetDefault("wordcloud.max_words", 200)
	viper.SetDefault("http.timeout", 5*time.Minute)
	viper.SetDefault("http.max_retries", 3)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cord-explorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cord-explorer"))
		}
	}

	viper.SetEnvPrefix("CORD_EXPLORER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zap.NewDevelopmentEncoderConfig().EncodeTime
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// httpConfig reads the settings used for URL sources.
func httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:    viper.GetDuration("http.timeout"),
		MaxRetries: viper.GetInt("http.max_retries"),
		UserAgent:  defaultUserAgent,
	}
}

func loadOptions(cfg types.HTTPConfig) dataset.Options {
	return dataset.Options{
		Client: &http.Client{Timeout: cfg.Timeout},
		HTTP:   cfg,
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
