// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Carolzhangzz/paper-daily/internal/archive"
	"github.com/Carolzhangzz/paper-daily/internal/snapshot"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive counts for one run date",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = snapshot.Today(cfg.Snapshot.Timezone)
	}

	arch, err := archive.Open(cfg.Snapshot.DataDir)
	if err != nil {
		return err
	}
	defer arch.Close()

	// Per-category counts cover the configured categories plus "trending".
	tags := append([]string{}, cfg.Fetch.Categories...)
	tags = append(tags, "trending")

	st, err := arch.Stats(context.Background(), date, tags)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	fmt.Printf("%s: %d papers\n", date, st.Total)
	for _, tag := range tags {
		fmt.Printf("  %-10s %d\n", tag, st.Categories[tag])
	}
	fmt.Printf("starred (all time): %d\n", st.Starred)
	return nil
}

func init() {
	statsCmd.Flags().String("date", "", "run date to summarize (default: today)")
	statsCmd.Flags().Bool("json", false, "output stats as JSON")

	rootCmd.AddCommand(statsCmd)
}
