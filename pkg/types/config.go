// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the source clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-daily/1.0"). Both upstreams ask clients to identify.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Categories is the arXiv category OR-set queried each run
	// (default cs.HC, cs.AI, cs.CL, cs.LG).
	Categories []string `json:"categories" yaml:"categories"`

	// MaxResults caps the number of entries fetched per source (default 200).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// RetryCount bounds retries per HTTP request on transient failure (default 3).
	RetryCount int `json:"retry_count" yaml:"retry_count"`

	// EnrichCategories controls the batch arXiv lookup that replaces the
	// bare "trending" tag on HuggingFace papers with real subject tags.
	EnrichCategories bool `json:"enrich_categories" yaml:"enrich_categories"`
}

// SnapshotConfig holds settings for the retention store.
type SnapshotConfig struct {
	// DataDir is the directory holding <date>.json snapshots and dates.json.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// RetentionDays is the number of most-recent snapshot dates kept (default 30).
	RetentionDays int `json:"retention_days" yaml:"retention_days"`

	// Timezone names the location whose calendar day keys a run
	// (default "America/Los_Angeles").
	Timezone string `json:"timezone" yaml:"timezone"`
}

// ArchiveConfig holds settings for the local SQLite archive.
type ArchiveConfig struct {
	// Enabled controls whether fetched papers are also written to the
	// archive database. The archive is best-effort; the snapshot is not.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// PipelineConfig groups all stage configurations for a run.
type PipelineConfig struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
}
