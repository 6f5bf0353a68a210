// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the paper record and configuration shared across stages.
package types

// Paper is one research-paper record in a daily snapshot.
//
// The JSON field names are the contract with the static frontend that reads
// the snapshot files directly; renaming any of them is a breaking change.
type Paper struct {
	// ArxivID is the bare arXiv identifier (version suffix stripped),
	// e.g. "2301.07041". It is the dedup key within a day's merged set.
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	Title    string   `json:"title" yaml:"title"`
	Authors  []string `json:"authors" yaml:"authors"`
	Abstract string   `json:"abstract" yaml:"abstract"`

	// Categories holds arXiv subject tags (e.g. "cs.HC") and/or the
	// synthetic "trending" tag for HuggingFace daily papers.
	Categories []string `json:"categories" yaml:"categories"`

	// URL is the abstract page, PDFURL the direct PDF link.
	URL    string `json:"url" yaml:"url"`
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Published is the publication date as YYYY-MM-DD.
	Published string `json:"published" yaml:"published"`

	// Source names the upstream the record first came from:
	// "arxiv" or "huggingface".
	Source string `json:"source" yaml:"source"`
}

// Valid reports whether the record carries the minimum fields required to
// appear in a snapshot. Records failing this check are dropped, not fixed up.
func (p Paper) Valid() bool {
	return p.ArxivID != "" && p.Title != ""
}

// HasCategory reports whether tag is in the record's category set.
func (p Paper) HasCategory(tag string) bool {
	for _, c := range p.Categories {
		if c == tag {
			return true
		}
	}
	return false
}
