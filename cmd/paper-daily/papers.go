// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Carolzhangzz/paper-daily/internal/archive"
	"github.com/Carolzhangzz/paper-daily/internal/snapshot"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Browse the local archive",
	Long: `Papers queries the local SQLite archive by date, category, full-text
substring, or starred flag. The archive accumulates every paper ever
fetched, unlike snapshots, which are pruned past the retention window.`,
	RunE: runPapers,
}

func runPapers(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	arch, err := archive.Open(cfg.Snapshot.DataDir)
	if err != nil {
		return err
	}
	defer arch.Close()

	opts := archive.QueryOptions{}
	opts.Date, _ = cmd.Flags().GetString("date")
	opts.Category, _ = cmd.Flags().GetString("category")
	opts.Search, _ = cmd.Flags().GetString("search")
	opts.StarredOnly, _ = cmd.Flags().GetBool("starred")
	if opts.Date == "" && !opts.StarredOnly {
		opts.Date = snapshot.Today(cfg.Snapshot.Timezone)
	}

	papers, err := arch.Papers(context.Background(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Println("No papers found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-2s  %-14s  %-58s  %-20s  %s\n", "", "ID", "Title", "Categories", "Published")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 104))
	for _, p := range papers {
		star := " "
		if p.Starred {
			star = "*"
		}
		title := p.Title
		if len(title) > 58 {
			title = title[:55] + "..."
		}
		cats := strings.Join(p.Categories, ",")
		if len(cats) > 20 {
			cats = cats[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-2s  %-14s  %-58s  %-20s  %s\n", star, p.ArxivID, title, cats, p.Published)
	}
	fmt.Fprintf(os.Stdout, "\n%d papers\n", len(papers))
	return nil
}

func init() {
	papersCmd.Flags().String("date", "", "filter by run date (default: today unless --starred)")
	papersCmd.Flags().String("category", "", "filter by category tag (e.g. cs.HC or trending)")
	papersCmd.Flags().String("search", "", "substring match on title or abstract")
	papersCmd.Flags().Bool("starred", false, "show starred papers from any date")
	papersCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(papersCmd)
}
