// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carolzhangzz/paper-daily/pkg/types"
)

func newTestStore(t *testing.T, retention int) *Store {
	t.Helper()
	store, err := NewStore(types.SnapshotConfig{DataDir: t.TempDir(), RetentionDays: retention})
	require.NoError(t, err)
	return store
}

func samplePapers() []types.Paper {
	return []types.Paper{
		{ArxivID: "2608.00001", Title: "A1", Authors: []string{"Ada"},
			Categories: []string{"cs.HC"}, Published: "2026-08-20", Source: "arxiv"},
		{ArxivID: "2608.00002", Title: "A2", Authors: []string{"Alan"},
			Categories: []string{"trending"}, Published: "2026-08-19", Source: "huggingface"},
	}
}

func TestWriteAndReadSnapshot(t *testing.T) {
	store := newTestStore(t, 30)

	require.NoError(t, store.WriteSnapshot("2026-08-21", samplePapers()))

	papers, err := store.ReadSnapshot("2026-08-21")
	require.NoError(t, err)
	assert.Equal(t, samplePapers(), papers)
}

func TestWriteSnapshotEmptyListIsArray(t *testing.T) {
	store := newTestStore(t, 30)

	require.NoError(t, store.WriteSnapshot("2026-08-21", nil))

	data, err := os.ReadFile(store.SnapshotPath("2026-08-21"))
	require.NoError(t, err)
	// The frontend expects a JSON array, never null.
	assert.Equal(t, "[]", string(data))
}

func TestWriteSnapshotRejectsBadDate(t *testing.T) {
	store := newTestStore(t, 30)
	err := store.WriteSnapshot("not-a-date", samplePapers())
	assert.ErrorContains(t, err, "invalid snapshot date")
}

func TestWriteSnapshotOverwrite(t *testing.T) {
	store := newTestStore(t, 30)

	require.NoError(t, store.WriteSnapshot("2026-08-21", samplePapers()))
	require.NoError(t, store.WriteSnapshot("2026-08-21", samplePapers()[:1]))

	papers, err := store.ReadSnapshot("2026-08-21")
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}

func TestUpdateIndexRequiresSnapshot(t *testing.T) {
	store := newTestStore(t, 30)
	_, err := store.UpdateIndex("2026-08-21")
	assert.ErrorContains(t, err, "no snapshot on disk")
}

func TestUpdateIndexOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t, 30)

	for _, date := range []string{"2026-08-19", "2026-08-21", "2026-08-20"} {
		require.NoError(t, store.WriteSnapshot(date, samplePapers()))
	}

	dates, err := store.UpdateIndex("2026-08-21")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-21", "2026-08-20", "2026-08-19"}, dates)

	read, err := store.Dates()
	require.NoError(t, err)
	assert.Equal(t, dates, read)
}

func TestUpdateIndexPrunesBeyondRetention(t *testing.T) {
	const retention = 30
	store := newTestStore(t, retention)

	// Simulate 35 consecutive daily runs.
	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	var last string
	for i := 0; i < 35; i++ {
		last = base.AddDate(0, 0, i).Format(dateLayout)
		require.NoError(t, store.WriteSnapshot(last, samplePapers()))
		_, err := store.UpdateIndex(last)
		require.NoError(t, err)
	}

	dates, err := store.Dates()
	require.NoError(t, err)
	require.Len(t, dates, retention)
	assert.Equal(t, last, dates[0])
	assert.Equal(t, base.AddDate(0, 0, 5).Format(dateLayout), dates[retention-1])

	// Index and files stay consistent: pruned dates lose their snapshot too.
	for i := 0; i < 5; i++ {
		old := base.AddDate(0, 0, i).Format(dateLayout)
		_, err := os.Stat(store.SnapshotPath(old))
		assert.True(t, os.IsNotExist(err), "snapshot for %s should be pruned", old)
	}
	for _, date := range dates {
		_, err := os.Stat(store.SnapshotPath(date))
		assert.NoError(t, err, "index date %s should have a snapshot", date)
	}
}

func TestUpdateIndexIgnoresForeignFiles(t *testing.T) {
	store := newTestStore(t, 30)

	require.NoError(t, store.WriteSnapshot("2026-08-21", samplePapers()))
	// dates.json itself and non-date files must not enter the index.
	require.NoError(t, os.WriteFile(filepath.Join(store.dataDir, "papers.db"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(store.dataDir, "notes.json"), []byte("{}"), 0o644))

	dates, err := store.UpdateIndex("2026-08-21")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-21"}, dates)

	dates, err = store.UpdateIndex("2026-08-21")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-21"}, dates)
}

func TestDatesMissingIndex(t *testing.T) {
	store := newTestStore(t, 30)
	dates, err := store.Dates()
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestTodayFallsBackToUTC(t *testing.T) {
	// A bogus zone must not break the run.
	date := Today("Not/AZone")
	_, err := time.Parse(dateLayout, date)
	assert.NoError(t, err)
}
