// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Carolzhangzz/paper-daily/internal/archive"
)

var starCmd = &cobra.Command{
	Use:   "star <arxiv-id>",
	Short: "Toggle the star on an archived paper",
	Args:  cobra.ExactArgs(1),
	RunE:  runStar,
}

func runStar(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	arch, err := archive.Open(cfg.Snapshot.DataDir)
	if err != nil {
		return err
	}
	defer arch.Close()

	starred, err := arch.ToggleStar(context.Background(), args[0])
	if err != nil {
		return err
	}
	if starred {
		fmt.Printf("starred %s\n", args[0])
	} else {
		fmt.Printf("unstarred %s\n", args[0])
	}
	return nil
}

func init() {
	rootCmd.AddCommand(starCmd)
}
