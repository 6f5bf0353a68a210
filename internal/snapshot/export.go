// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes one date's snapshot to w as YAML, for ad-hoc reading
// outside the frontend.
func (s *Store) ExportYAML(date string, w io.Writer) error {
	papers, err := s.ReadSnapshot(date)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes one date's snapshot to w as indented JSON.
func (s *Store) ExportJSON(date string, w io.Writer) error {
	papers, err := s.ReadSnapshot(date)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}
