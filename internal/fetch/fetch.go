// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch pulls paper metadata from the upstream APIs, merges the
// feeds, and hands the day's snapshot to the retention store.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Carolzhangzz/paper-daily/internal/archive"
	"github.com/Carolzhangzz/paper-daily/internal/snapshot"
	"github.com/Carolzhangzz/paper-daily/pkg/types"
)

// Source fetches raw paper records from one upstream API.
type Source interface {
	Name() string
	Fetch(ctx context.Context, cfg types.FetchConfig) ([]types.Paper, error)
}

// Result summarizes one pipeline run.
type Result struct {
	// Date is the snapshot date the run wrote.
	Date string
	// PerSource maps source name to the number of raw records it returned.
	PerSource map[string]int
	// SourceErrors lists sources that failed entirely, with their errors.
	SourceErrors []string
	// Dropped counts records failing validation; DupsRemoved counts
	// duplicates folded into an earlier record.
	Dropped     int
	DupsRemoved int
	// Stored is the number of records in the written snapshot.
	Stored int
	// Archived is the number of rows newly inserted into the archive.
	Archived int
	// IndexDates is the dates index after pruning, newest first.
	IndexDates []string
}

// Run executes the daily pipeline for one date: fetch each source in order,
// merge, write the snapshot, update the dates index, and archive best-effort.
//
// A single source failing produces a warning and an empty contribution; the
// run still succeeds. If every source fails, or nothing survives the merge,
// Run returns an error and writes nothing, leaving existing snapshots
// untouched. arch may be nil to skip archiving.
func Run(ctx context.Context, date string, sources []Source, store *snapshot.Store, arch *archive.Archive, cfg types.PipelineConfig, w io.Writer) (Result, error) {
	res := Result{Date: date, PerSource: make(map[string]int)}

	if len(sources) == 0 {
		return res, fmt.Errorf("no sources configured")
	}

	var raw []types.Paper
	for _, src := range sources {
		papers, err := src.Fetch(ctx, cfg.Fetch)
		if err != nil {
			res.SourceErrors = append(res.SourceErrors, fmt.Sprintf("%s: %v", src.Name(), err))
			fmt.Fprintf(w, "warning: source %s failed: %v\n", src.Name(), err)
			continue
		}
		res.PerSource[src.Name()] = len(papers)
		fmt.Fprintf(w, "%s: %d papers\n", src.Name(), len(papers))
		raw = append(raw, papers...)
	}

	if len(res.SourceErrors) == len(sources) {
		return res, fmt.Errorf("all sources failed: %v", res.SourceErrors)
	}

	merged, dropped, removed := Merge(raw, w)
	res.Dropped = dropped
	res.DupsRemoved = removed
	res.Stored = len(merged)

	if len(merged) == 0 {
		return res, fmt.Errorf("no records from any source for %s", date)
	}

	if err := store.WriteSnapshot(date, merged); err != nil {
		return res, fmt.Errorf("writing snapshot for %s: %w", date, err)
	}
	fmt.Fprintf(w, "saved %d papers for %s\n", len(merged), date)

	dates, err := store.UpdateIndex(date)
	if err != nil {
		return res, fmt.Errorf("updating dates index: %w", err)
	}
	res.IndexDates = dates
	fmt.Fprintf(w, "dates index updated: %d days\n", len(dates))

	if arch != nil {
		n, err := arch.InsertPapers(ctx, date, merged)
		if err != nil {
			fmt.Fprintf(w, "warning: archive insert failed: %v\n", err)
		} else {
			res.Archived = n
			fmt.Fprintf(w, "archived %d new papers\n", n)
		}
	}

	return res, nil
}

// NewSources builds the production source list in fetch order: arXiv first,
// so its richer metadata wins first-seen merges, then HuggingFace.
func NewSources(client *http.Client, w io.Writer) []Source {
	return []Source{
		&ArxivSource{Client: client},
		&HuggingFaceSource{Client: client, Log: w},
	}
}
