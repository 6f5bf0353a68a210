// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"io"

	"github.com/Carolzhangzz/paper-daily/pkg/types"
)

// Merge validates, deduplicates, and merges raw records from all sources
// into one snapshot list.
//
// Merge policy: the dedup key is the arXiv ID. The first occurrence wins
// the slot and its scalar fields; a later duplicate unions its category
// tags in (first-seen order preserved) and fills any fields the winner
// left empty. Records missing a title or identifier are dropped with a
// warning on w, never fixed up.
func Merge(papers []types.Paper, w io.Writer) ([]types.Paper, int, int) {
	seen := make(map[string]int) // arXiv ID → index in merged
	var merged []types.Paper
	dropped, removed := 0, 0

	for _, p := range papers {
		if !p.Valid() {
			dropped++
			fmt.Fprintf(w, "warning: dropping %s record with missing identifier or title (id=%q)\n", p.Source, p.ArxivID)
			continue
		}

		if idx, ok := seen[p.ArxivID]; ok {
			mergeInto(&merged[idx], p)
			removed++
			continue
		}

		seen[p.ArxivID] = len(merged)
		merged = append(merged, p)
	}
	return merged, dropped, removed
}

// mergeInto folds a duplicate record into the first-seen one.
func mergeInto(dst *types.Paper, src types.Paper) {
	dst.Categories = unionCategories(dst.Categories, src.Categories)

	if dst.Abstract == "" {
		dst.Abstract = src.Abstract
	}
	if len(dst.Authors) == 0 {
		dst.Authors = src.Authors
	}
	if dst.Published == "" {
		dst.Published = src.Published
	}
	if dst.URL == "" {
		dst.URL = src.URL
	}
	if dst.PDFURL == "" {
		dst.PDFURL = src.PDFURL
	}
}

// unionCategories appends tags from b that a does not already hold,
// preserving order of first appearance.
func unionCategories(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	present := make(map[string]bool, len(a)+len(b))
	for _, set := range [][]string{a, b} {
		for _, c := range set {
			if c == "" || present[c] {
				continue
			}
			present[c] = true
			out = append(out, c)
		}
	}
	return out
}
