// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carolzhangzz/paper-daily/pkg/types"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func samplePapers() []types.Paper {
	return []types.Paper{
		{ArxivID: "2608.00001", Title: "Adaptive Interfaces", Abstract: "A study of adaptive UIs.",
			Authors: []string{"Ada Lovelace"}, Categories: []string{"cs.HC", "cs.AI"},
			URL: "https://arxiv.org/abs/2608.00001", PDFURL: "https://arxiv.org/pdf/2608.00001",
			Published: "2026-08-20", Source: "arxiv"},
		{ArxivID: "2608.00002", Title: "Trending Transformers", Abstract: "Attention everywhere.",
			Authors: []string{"Alan Turing"}, Categories: []string{"trending", "cs.LG"},
			Published: "2026-08-19", Source: "huggingface"},
	}
}

func TestInsertPapersAndQuery(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	n, err := a.InsertPapers(ctx, "2026-08-21", samplePapers())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	papers, err := a.Papers(ctx, QueryOptions{Date: "2026-08-21"})
	require.NoError(t, err)
	require.Len(t, papers, 2)

	// source DESC puts huggingface rows first.
	assert.Equal(t, "2608.00002", papers[0].ArxivID)
	assert.Equal(t, []string{"trending", "cs.LG"}, papers[0].Categories)
	assert.Equal(t, []string{"Alan Turing"}, papers[0].Authors)
	assert.Equal(t, "2026-08-21", papers[0].FetchedDate)
	assert.False(t, papers[0].Starred)
}

func TestInsertPapersIgnoresDuplicates(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	n, err := a.InsertPapers(ctx, "2026-08-21", samplePapers())
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// A rerun (even under a later date) keeps the first-seen rows.
	n, err = a.InsertPapers(ctx, "2026-08-22", samplePapers())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	papers, err := a.Papers(ctx, QueryOptions{Date: "2026-08-21"})
	require.NoError(t, err)
	assert.Len(t, papers, 2)
}

func TestQueryFilters(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()
	_, err := a.InsertPapers(ctx, "2026-08-21", samplePapers())
	require.NoError(t, err)

	byCat, err := a.Papers(ctx, QueryOptions{Date: "2026-08-21", Category: "cs.HC"})
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "2608.00001", byCat[0].ArxivID)

	bySearch, err := a.Papers(ctx, QueryOptions{Date: "2026-08-21", Search: "Attention"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "2608.00002", bySearch[0].ArxivID)

	none, err := a.Papers(ctx, QueryOptions{Date: "2026-01-01"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestToggleStar(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()
	_, err := a.InsertPapers(ctx, "2026-08-21", samplePapers())
	require.NoError(t, err)

	starred, err := a.ToggleStar(ctx, "2608.00001")
	require.NoError(t, err)
	assert.True(t, starred)

	only, err := a.Papers(ctx, QueryOptions{StarredOnly: true})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "2608.00001", only[0].ArxivID)

	starred, err = a.ToggleStar(ctx, "2608.00001")
	require.NoError(t, err)
	assert.False(t, starred)

	_, err = a.ToggleStar(ctx, "9999.99999")
	assert.ErrorContains(t, err, "not in archive")
}

func TestStats(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()
	_, err := a.InsertPapers(ctx, "2026-08-21", samplePapers())
	require.NoError(t, err)
	_, err = a.ToggleStar(ctx, "2608.00002")
	require.NoError(t, err)

	st, err := a.Stats(ctx, "2026-08-21", []string{"cs.HC", "cs.AI", "cs.LG", "trending"})
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Categories["cs.HC"])
	assert.Equal(t, 1, st.Categories["cs.AI"])
	assert.Equal(t, 1, st.Categories["cs.LG"])
	assert.Equal(t, 1, st.Categories["trending"])
	assert.Equal(t, 1, st.Starred)
}

func TestDates(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	_, err := a.InsertPapers(ctx, "2026-08-20", samplePapers()[:1])
	require.NoError(t, err)
	_, err = a.InsertPapers(ctx, "2026-08-21", samplePapers()[1:])
	require.NoError(t, err)

	dates, err := a.Dates(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-21", "2026-08-20"}, dates)

	one, err := a.Dates(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-21"}, one)
}
