// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the paper-daily configuration file",
}

// defaultConfigYAML mirrors the defaults registered in setDefaults.
const defaultConfigYAML = `fetch:
  categories: [cs.HC, cs.AI, cs.CL, cs.LG]
  max_results: 200
  retry_count: 3
  timeout: 30s
  user_agent: paper-daily/1.0
  enrich_categories: true
snapshot:
  data_dir: data
  retention_days: 30
  timezone: America/Los_Angeles
archive:
  enabled: true
`

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a paper-daily.yaml with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "paper-daily.yaml"
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
