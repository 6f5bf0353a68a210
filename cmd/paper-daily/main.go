// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-daily CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Carolzhangzz/paper-daily/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paper-daily CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-daily",
	Short: "Daily research-paper snapshots from arXiv and HuggingFace",
	Long: `paper-daily fetches research-paper metadata from arXiv and the HuggingFace
Daily Papers API, merges and deduplicates the two feeds, and writes a dated
JSON snapshot plus a dates index for a static frontend. Snapshots older than
the retention window are pruned on every run.

The fetch subcommand is the scheduled entry point and needs no arguments;
the remaining subcommands inspect the data directory and the local archive.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-daily.yaml or ~/.config/paper-daily/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-daily")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-daily"))
		}
	}

	viper.SetEnvPrefix("PAPER_DAILY")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers the recognized options so a missing config file
// still yields a runnable pipeline.
func setDefaults() {
	viper.SetDefault("fetch.categories", []string{"cs.HC", "cs.AI", "cs.CL", "cs.LG"})
	viper.SetDefault("fetch.max_results", 200)
	viper.SetDefault("fetch.retry_count", 3)
	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.user_agent", "paper-daily/1.0")
	viper.SetDefault("fetch.enrich_categories", true)
	viper.SetDefault("snapshot.data_dir", "data")
	viper.SetDefault("snapshot.retention_days", 30)
	viper.SetDefault("snapshot.timezone", "America/Los_Angeles")
	viper.SetDefault("archive.enabled", true)
}

// loadConfig materializes the pipeline configuration from viper.
func loadConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("fetch.timeout"),
				UserAgent: viper.GetString("fetch.user_agent"),
			},
			Categories:       viper.GetStringSlice("fetch.categories"),
			MaxResults:       viper.GetInt("fetch.max_results"),
			RetryCount:       viper.GetInt("fetch.retry_count"),
			EnrichCategories: viper.GetBool("fetch.enrich_categories"),
		},
		Snapshot: types.SnapshotConfig{
			DataDir:       viper.GetString("snapshot.data_dir"),
			RetentionDays: viper.GetInt("snapshot.retention_days"),
			Timezone:      viper.GetString("snapshot.timezone"),
		},
		Archive: types.ArchiveConfig{
			Enabled: viper.GetBool("archive.enabled"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
