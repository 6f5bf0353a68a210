// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Carolzhangzz/paper-daily/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print one date's snapshot as YAML or JSON",
	Long: `Export reads a stored snapshot and writes it to stdout, for piping
into other tooling or eyeballing a day's haul without the frontend.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = snapshot.Today(cfg.Snapshot.Timezone)
	}

	store, err := snapshot.NewStore(cfg.Snapshot)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml":
		return store.ExportYAML(date, os.Stdout)
	case "json":
		return store.ExportJSON(date, os.Stdout)
	default:
		return fmt.Errorf("unknown format %q: use yaml or json", format)
	}
}

func init() {
	exportCmd.Flags().String("date", "", "snapshot date to export (default: today)")
	exportCmd.Flags().String("format", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(exportCmd)
}
