// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Carolzhangzz/paper-daily/internal/httputil"
	"github.com/Carolzhangzz/paper-daily/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// arxivPageSize is the number of entries requested per page.
const arxivPageSize = 100

// ArxivSource queries the arXiv API for the most recent submissions in the
// configured category set.
type ArxivSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *ArxivSource) Name() string { return "arxiv" }

// Fetch pages through the arXiv search results, newest submissions first,
// until the per-source cap or a short page.
func (s *ArxivSource) Fetch(ctx context.Context, cfg types.FetchConfig) ([]types.Paper, error) {
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("no arXiv categories configured")
	}

	limit := cfg.MaxResults
	if limit <= 0 {
		limit = 200
	}

	catQuery := buildCategoryQuery(cfg.Categories)

	var papers []types.Paper
	for start := 0; start < limit; start += arxivPageSize {
		pageSize := arxivPageSize
		if remaining := limit - start; remaining < pageSize {
			pageSize = remaining
		}

		// The arXiv query syntax uses literal "+" separators, so the URL is
		// assembled by hand rather than with url.Values.
		url := fmt.Sprintf("%s?search_query=%s&sortBy=submittedDate&sortOrder=descending&start=%d&max_results=%d",
			arxivAPIBase, catQuery, start, pageSize)

		feed, err := s.fetchFeed(ctx, url, cfg)
		if err != nil {
			return nil, err
		}

		for _, entry := range feed.Entries {
			if p, ok := paperFromArxivEntry(entry); ok {
				papers = append(papers, p)
			}
		}

		// Short page means the result set is exhausted.
		if len(feed.Entries) < pageSize {
			break
		}
	}
	return papers, nil
}

// fetchFeed issues one request against the arXiv API and decodes the Atom feed.
func (s *ArxivSource) fetchFeed(ctx context.Context, url string, cfg types.FetchConfig) (*arxivFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, cfg.RetryCount)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	return decodeArxivFeed(resp.Body)
}

func decodeArxivFeed(r io.Reader) (*arxivFeed, error) {
	var feed arxivFeed
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return &feed, nil
}

// buildCategoryQuery joins categories into "cat:A+OR+cat:B+...".
func buildCategoryQuery(categories []string) string {
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = "cat:" + c
	}
	return strings.Join(parts, "+OR+")
}

// paperFromArxivEntry maps one Atom entry to a Paper. Entries with no
// extractable arXiv ID fail closed.
func paperFromArxivEntry(entry arxivEntry) (types.Paper, bool) {
	id := extractArxivID(entry.ID)
	if id == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ArxivID:  id,
		Title:    collapseWhitespace(entry.Title),
		Abstract: collapseWhitespace(entry.Summary),
		URL:      "https://arxiv.org/abs/" + id,
		Source:   "arxiv",
	}

	for _, a := range entry.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	p.Categories = csCategories(entry.Categories)

	for _, link := range entry.Links {
		if link.Title == "pdf" {
			p.PDFURL = link.Href
			break
		}
	}
	if p.PDFURL == "" {
		p.PDFURL = "https://arxiv.org/pdf/" + id
	}

	if len(entry.Published) >= 10 {
		p.Published = entry.Published[:10]
	}

	return p, true
}

// csCategories keeps only computer-science subject tags.
func csCategories(cats []arxivCategory) []string {
	var out []string
	for _, c := range cats {
		if strings.HasPrefix(c.Term, "cs.") {
			out = append(out, c.Term)
		}
	}
	return out
}

// collapseWhitespace trims and squeezes internal runs of whitespace, which
// the arXiv feed uses freely inside titles and abstracts.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
	Links      []arxivLink     `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
