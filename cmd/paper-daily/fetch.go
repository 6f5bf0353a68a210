// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Carolzhangzz/paper-daily/internal/archive"
	"github.com/Carolzhangzz/paper-daily/internal/fetch"
	"github.com/Carolzhangzz/paper-daily/internal/snapshot"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch today's papers and write the daily snapshot",
	Long: `Fetch pulls paper metadata from arXiv and the HuggingFace Daily Papers
API, merges and deduplicates the feeds, writes the date's JSON snapshot,
updates the dates index, and prunes snapshots past the retention window.

One source failing is a warning; the run still writes a snapshot from the
other and exits 0. If both sources fail, nothing is written and the exit
status is non-zero so the scheduler can flag the run.`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = snapshot.Today(cfg.Snapshot.Timezone)
	}

	store, err := snapshot.NewStore(cfg.Snapshot)
	if err != nil {
		return err
	}

	// Archive failures never block the snapshot.
	var arch *archive.Archive
	if cfg.Archive.Enabled {
		arch, err = archive.Open(cfg.Snapshot.DataDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: archive unavailable: %v\n", err)
			arch = nil
		} else {
			defer arch.Close()
		}
	}

	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	sources := fetch.NewSources(client, os.Stdout)

	fmt.Printf("fetching papers for %s ...\n", date)
	res, err := fetch.Run(context.Background(), date, sources, store, arch, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if len(res.SourceErrors) > 0 {
		fmt.Printf("completed with warnings: %d source(s) failed\n", len(res.SourceErrors))
	}
	fmt.Printf("done: %d papers stored (%d duplicates merged, %d dropped)\n",
		res.Stored, res.DupsRemoved, res.Dropped)
	return nil
}

func init() {
	fetchCmd.Flags().String("date", "", "snapshot date to write (YYYY-MM-DD, default: today in the configured timezone)")

	rootCmd.AddCommand(fetchCmd)
}
