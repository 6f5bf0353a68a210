// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Carolzhangzz/paper-daily/internal/snapshot"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List the dates that have a snapshot",
	Long: `Dates prints the dates index, newest first — the same list the
frontend uses for its navigation controls.`,
	RunE: runDates,
}

func runDates(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	store, err := snapshot.NewStore(cfg.Snapshot)
	if err != nil {
		return err
	}

	dates, err := store.Dates()
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(dates)
	}

	if len(dates) == 0 {
		fmt.Println("No snapshots yet.")
		return nil
	}
	for _, d := range dates {
		fmt.Println(d)
	}
	return nil
}

func init() {
	datesCmd.Flags().Bool("json", false, "output the index as JSON")

	rootCmd.AddCommand(datesCmd)
}
