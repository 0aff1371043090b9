// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the seedwatch pipeline.
package types

import "time"

// Source identifies which external search API produced a result.
type Source string

const (
	// SourceRepo is the code-host repository search (GitHub /search/repositories).
	SourceRepo Source = "repo"

	// SourceCode is the code-host code search (GitHub /search/code).
	SourceCode Source = "code"

	// SourcePaper is the preprint archive search (arXiv export API).
	SourcePaper Source = "paper"

	// SourceModel is the model-hub search (Hugging Face models API).
	SourceModel Source = "model"
)

// Sources lists all source categories in report order.
var Sources = []Source{SourceRepo, SourceCode, SourcePaper, SourceModel}

// QueryTerm is one literal search input, defined at configuration time.
type QueryTerm = string

// ResultRecord is one normalized hit from any source.
type ResultRecord struct {
	// Source is the category of the API that returned this hit.
	Source Source `json:"source" yaml:"source"`

	// Title is the display name of the hit (repo full name, paper title,
	// model id, or file path for code hits).
	Title string `json:"title" yaml:"title"`

	// URL points at the hit on the source site.
	URL string `json:"url" yaml:"url"`

	// Identifier is the source-native id, unique within one source
	// (repo full name, "repo/path" for code, arXiv id, model id).
	Identifier string `json:"identifier" yaml:"identifier"`

	// Snippet is free descriptive text, when the source provides one.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// RetrievedAt is when the record was fetched.
	RetrievedAt time.Time `json:"retrieved_at" yaml:"retrieved_at"`

	// Extra holds source-specific fields (stars, downloads, likes, ...).
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Snapshot is one immutable, timestamped aggregated result set.
type Snapshot struct {
	// CreatedAt stamps the run; the snapshot's on-disk name derives from it.
	CreatedAt time.Time `json:"timestamp" yaml:"timestamp"`

	// Terms lists the query terms the run used.
	Terms []QueryTerm `json:"terms" yaml:"terms"`

	// Records holds the deduplicated results in first-seen order.
	Records []ResultRecord `json:"records" yaml:"records"`
}

// Stamp returns the timestamp-derived name stem shared by the snapshot's
// structured and readable files (e.g. "2026-08-29_14-05-01").
func (s Snapshot) Stamp() string {
	return s.CreatedAt.Format("2006-01-02_15-04-05")
}

// BySource groups the snapshot's records by source category. Sources with
// no hits are absent from the map.
func (s Snapshot) BySource() map[Source][]ResultRecord {
	grouped := make(map[Source][]ResultRecord)
	for _, r := range s.Records {
		grouped[r.Source] = append(grouped[r.Source], r)
	}
	return grouped
}
