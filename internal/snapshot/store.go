// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot persists dated paper snapshots and the dates index the
// static frontend navigates with, pruning both past the retention window.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Carolzhangzz/paper-daily/pkg/types"
)

const (
	indexFile  = "dates.json"
	dateLayout = "2006-01-02"
)

// Store manages the snapshot data directory.
type Store struct {
	dataDir       string
	retentionDays int
}

// NewStore creates the data directory if needed and returns a Store.
// A non-positive retention falls back to 30 days.
func NewStore(cfg types.SnapshotConfig) (*Store, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("snapshot data directory not configured")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	retention := cfg.RetentionDays
	if retention <= 0 {
		retention = 30
	}
	return &Store{dataDir: cfg.DataDir, retentionDays: retention}, nil
}

// Today returns the current calendar date in the named timezone, falling
// back to UTC when the zone cannot be loaded. The Pacific date boundary
// keeps a late-evening run and the frontend's "today" in agreement.
func Today(timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format(dateLayout)
}

// SnapshotPath returns the file path for a date's snapshot.
func (s *Store) SnapshotPath(date string) string {
	return filepath.Join(s.dataDir, date+".json")
}

// WriteSnapshot persists the merged list for one date. The write goes to a
// temp file first and is renamed into place, so a rerun overwrites the
// previous snapshot whole or not at all. An empty list is written as [].
func (s *Store) WriteSnapshot(date string, papers []types.Paper) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", date, err)
	}
	if papers == nil {
		papers = []types.Paper{}
	}

	data, err := json.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	return writeFileAtomic(s.SnapshotPath(date), data)
}

// ReadSnapshot loads one date's snapshot.
func (s *Store) ReadSnapshot(date string) ([]types.Paper, error) {
	data, err := os.ReadFile(s.SnapshotPath(date))
	if err != nil {
		return nil, fmt.Errorf("reading snapshot for %s: %w", date, err)
	}
	var papers []types.Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil, fmt.Errorf("parsing snapshot for %s: %w", date, err)
	}
	return papers, nil
}

// UpdateIndex rebuilds dates.json from the snapshot files on disk and
// prunes snapshots beyond the retention window, deleting file and index
// entry together. The given date must already have a snapshot on disk;
// that keeps the index/file invariant checkable at the one point the
// index mutates. It returns the surviving dates, newest first.
func (s *Store) UpdateIndex(date string) ([]string, error) {
	if _, err := os.Stat(s.SnapshotPath(date)); err != nil {
		return nil, fmt.Errorf("no snapshot on disk for %s: %w", date, err)
	}

	dates, err := s.snapshotDates()
	if err != nil {
		return nil, err
	}

	// Newest first; everything past the window is pruned.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	for _, old := range dates[min(len(dates), s.retentionDays):] {
		if err := os.Remove(s.SnapshotPath(old)); err != nil {
			return nil, fmt.Errorf("pruning snapshot for %s: %w", old, err)
		}
	}
	dates = dates[:min(len(dates), s.retentionDays)]

	data, err := json.Marshal(dates)
	if err != nil {
		return nil, fmt.Errorf("marshaling dates index: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(s.dataDir, indexFile), data); err != nil {
		return nil, err
	}
	return dates, nil
}

// Dates reads the dates index, newest first. A missing index is an empty
// list, not an error.
func (s *Store) Dates() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading dates index: %w", err)
	}
	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, fmt.Errorf("parsing dates index: %w", err)
	}
	return dates, nil
}

// snapshotDates lists the dates that have a snapshot file on disk.
func (s *Store) snapshotDates() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("listing data directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == indexFile {
			continue
		}
		date := strings.TrimSuffix(name, ".json")
		if _, err := time.Parse(dateLayout, date); err != nil {
			continue
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
