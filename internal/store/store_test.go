// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarleyCoops/SeeDream/pkg/types"
)

func sampleSnapshot(created time.Time) types.Snapshot {
	return types.Snapshot{
		CreatedAt: created,
		Terms:     []string{"SeedDream 3.0", "SeedDream-3.0"},
		Records: []types.ResultRecord{
			{
				Source:      types.SourceRepo,
				Title:       "ByteDance-Seed/seedream-3",
				URL:         "https://github.com/ByteDance-Seed/seedream-3",
				Identifier:  "ByteDance-Seed/seedream-3",
				Snippet:     "SeedDream 3.0 reference implementation",
				RetrievedAt: created,
				Extra:       map[string]string{"stars": "412"},
			},
			{
				Source:      types.SourcePaper,
				Title:       "SeedDream 3.0 Technical Report",
				URL:         "https://arxiv.org/abs/2504.11346",
				Identifier:  "2504.11346",
				RetrievedAt: created,
			},
		},
	}
}

func TestPersistWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Dir: dir}
	snap := sampleSnapshot(time.Date(2026, 8, 29, 14, 5, 1, 0, time.UTC))

	jsonPath, mdPath, err := s.Persist(snap)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "seedream_scan_2026-08-29_14-05-01.json"), jsonPath)
	assert.Equal(t, filepath.Join(dir, "seedream_scan_2026-08-29_14-05-01.md"), mdPath)

	loaded, err := s.Load("2026-08-29_14-05-01")
	require.NoError(t, err)
	assert.Equal(t, snap.Terms, loaded.Terms)
	assert.Equal(t, snap.Records, loaded.Records)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Repository Results")
	assert.Contains(t, string(md), "ByteDance-Seed/seedream-3")
}

func TestPersistCreatesResultsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "search_results")
	s := &Store{Dir: dir}

	_, _, err := s.Persist(sampleSnapshot(time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPersistTwiceDistinctStamps(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Dir: dir}

	first := sampleSnapshot(time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC))
	second := sampleSnapshot(time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC))

	_, _, err := s.Persist(first)
	require.NoError(t, err)
	_, _, err = s.Persist(second)
	require.NoError(t, err)

	// Both files exist and parse back into equivalent record sets.
	a, err := s.Load(first.Stamp())
	require.NoError(t, err)
	b, err := s.Load(second.Stamp())
	require.NoError(t, err)
	assert.Equal(t, a.Records[0].Identifier, b.Records[0].Identifier)
	assert.Len(t, a.Records, 2)
	assert.Len(t, b.Records, 2)
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Dir: dir}

	_, _, err := s.Persist(sampleSnapshot(time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
	assert.Len(t, entries, 2)
}

func TestListPrior(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Dir: dir}

	// Persist out of chronological order.
	for _, ts := range []time.Time{
		time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
	} {
		_, _, err := s.Persist(sampleSnapshot(ts))
		require.NoError(t, err)
	}

	ids, err := s.ListPrior()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2026-08-29_09-00-00",
		"2026-08-28_09-00-00",
		"2026-08-27_09-00-00",
	}, ids)
}

func TestListPriorMissingDir(t *testing.T) {
	s := &Store{Dir: filepath.Join(t.TempDir(), "never-created")}
	ids, err := s.ListPrior()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListPriorIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Dir: dir}

	_, _, err := s.Persist(sampleSnapshot(time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	ids, err := s.ListPrior()
	require.NoError(t, err)
	// The .md companion and foreign entries are excluded.
	assert.Equal(t, []string{"2026-08-29_09-00-00"}, ids)
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	_, err := s.Load("2026-01-01_00-00-00")
	assert.Error(t, err)
}
