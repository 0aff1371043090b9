// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists snapshots as paired structured and readable files
// and reads prior snapshots back for comparison.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/HarleyCoops/SeeDream/pkg/types"
)

// fileStem prefixes every snapshot file; the rest of the name is the
// snapshot's timestamp stamp.
const fileStem = "seedream_scan_"

// Store writes snapshots under a single results directory.
type Store struct {
	Dir string
}

// Persist writes the snapshot's structured JSON dump and readable Markdown
// report, named from the snapshot timestamp. Each file is written to a
// temporary name and renamed into place, so a failed write never replaces
// a valid prior file. Any write error is fatal for the run.
func (s *Store) Persist(snap types.Snapshot) (jsonPath, mdPath string, err error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating results directory %s: %w", s.Dir, err)
	}

	stem := fileStem + snap.Stamp()
	jsonPath = filepath.Join(s.Dir, stem+".json")
	mdPath = filepath.Join(s.Dir, stem+".md")

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := writeAtomic(jsonPath, data); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	if err := writeAtomic(mdPath, Render(snap)); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", mdPath, err)
	}
	return jsonPath, mdPath, nil
}

// ListPrior returns the identifiers (timestamp stamps) of persisted
// snapshots, most recent first, from the durable store only.
func (s *Store) ListPrior() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading results directory %s: %w", s.Dir, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, fileStem) || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, fileStem), ".json"))
	}

	// Stamps sort lexically in chronological order; reverse for most recent first.
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// Load reads one persisted snapshot back by its identifier.
func (s *Store) Load(id string) (types.Snapshot, error) {
	path := filepath.Join(s.Dir, fileStem+id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("reading snapshot %s: %w", id, err)
	}
	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return types.Snapshot{}, fmt.Errorf("parsing snapshot %s: %w", id, err)
	}
	return snap, nil
}

// writeAtomic writes data to a temporary file in the destination directory
// and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".seedwatch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
