// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Carolzhangzz/paper-daily/internal/httputil"
	"github.com/Carolzhangzz/paper-daily/pkg/types"
)

// hfAPIBase is the HuggingFace Daily Papers endpoint. Declared as a var so
// tests can substitute an httptest server.
var hfAPIBase = "https://huggingface.co/api/daily_papers"

// trendingTag marks papers surfaced by the HuggingFace daily list.
const trendingTag = "trending"

// HuggingFaceSource queries the HuggingFace Daily Papers API. Every record
// is tagged "trending"; when enrichment is enabled, real arXiv subject tags
// are resolved with one batch lookup after the fetch.
type HuggingFaceSource struct {
	Client *http.Client

	// Log receives enrichment progress and warnings; nil discards them.
	Log io.Writer
}

func (s *HuggingFaceSource) log() io.Writer {
	if s.Log == nil {
		return io.Discard
	}
	return s.Log
}

// Name returns the source identifier.
func (s *HuggingFaceSource) Name() string { return "huggingface" }

// Fetch returns the current daily-papers list.
func (s *HuggingFaceSource) Fetch(ctx context.Context, cfg types.FetchConfig) ([]types.Paper, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hfAPIBase, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, cfg.RetryCount)
	if err != nil {
		return nil, fmt.Errorf("HuggingFace API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HuggingFace API returned HTTP %d", resp.StatusCode)
	}

	var items []hfItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing HuggingFace response: %w", err)
	}

	limit := cfg.MaxResults
	if limit <= 0 {
		limit = 200
	}

	var papers []types.Paper
	for _, item := range items {
		if len(papers) >= limit {
			break
		}
		id := strings.TrimSpace(item.Paper.ID)
		if id == "" {
			continue
		}

		p := types.Paper{
			ArxivID:    id,
			Title:      collapseWhitespace(item.Paper.Title),
			Abstract:   collapseWhitespace(item.Paper.Summary),
			Categories: []string{trendingTag},
			URL:        "https://arxiv.org/abs/" + id,
			PDFURL:     "https://arxiv.org/pdf/" + id,
			Source:     "huggingface",
		}
		for _, a := range item.Paper.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				p.Authors = append(p.Authors, name)
			}
		}
		if len(item.Paper.PublishedAt) >= 10 {
			p.Published = item.Paper.PublishedAt[:10]
		}
		papers = append(papers, p)
	}

	// Resolve real subject tags; a lookup failure leaves "trending" alone.
	if cfg.EnrichCategories && len(papers) > 0 {
		n, err := EnrichCategories(ctx, s.Client, papers, cfg)
		if err != nil {
			fmt.Fprintf(s.log(), "warning: arXiv category enrichment failed: %v\n", err)
		} else {
			fmt.Fprintf(s.log(), "enriched %d/%d trending papers with arXiv categories\n", n, len(papers))
		}
	}

	return papers, nil
}

// EnrichCategories resolves real arXiv subject tags for the given papers
// with one batch id_list query and merges them after the "trending" tag.
// It returns the number of papers that gained at least one tag. Papers are
// modified in place; an API failure leaves them untouched.
func EnrichCategories(ctx context.Context, client *http.Client, papers []types.Paper, cfg types.FetchConfig) (int, error) {
	if len(papers) == 0 {
		return 0, nil
	}

	ids := make([]string, len(papers))
	for i, p := range papers {
		ids[i] = p.ArxivID
	}

	url := fmt.Sprintf("%s?id_list=%s&max_results=%d", arxivAPIBase, strings.Join(ids, ","), len(papers))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.RetryCount)
	if err != nil {
		return 0, fmt.Errorf("arXiv id_list request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("arXiv id_list returned HTTP %d", resp.StatusCode)
	}

	feed, err := decodeArxivFeed(resp.Body)
	if err != nil {
		return 0, err
	}

	catsByID := make(map[string][]string)
	for _, entry := range feed.Entries {
		id := extractArxivID(entry.ID)
		if id == "" {
			continue
		}
		catsByID[id] = csCategories(entry.Categories)
	}

	enriched := 0
	for i := range papers {
		real := catsByID[papers[i].ArxivID]
		if len(real) == 0 {
			continue
		}
		papers[i].Categories = unionCategories([]string{trendingTag}, real)
		enriched++
	}
	return enriched, nil
}

// HuggingFace daily_papers JSON structures.
type hfItem struct {
	Paper hfPaper `json:"paper"`
}

type hfPaper struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	PublishedAt string     `json:"publishedAt"`
	Authors     []hfAuthor `json:"authors"`
}

type hfAuthor struct {
	Name string `json:"name"`
}
