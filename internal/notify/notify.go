// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify decides whether a snapshot warrants a notification and
// renders the summary body handed to the external issue filer.
package notify

import (
	"github.com/HarleyCoops/SeeDream/internal/store"
	"github.com/HarleyCoops/SeeDream/pkg/types"
)

// FindingsSummary is a transient view over one snapshot. It is recomputed
// on demand and never persisted.
type FindingsSummary struct {
	// PerSource is true for each source category with at least one record.
	PerSource map[types.Source]bool

	// HasNewFindings is true when any source category has results. Any
	// non-empty category counts as new; no diff is made against prior
	// snapshots.
	HasNewFindings bool

	// Body is the rendered report text, embedding the readable snapshot
	// content for inclusion in an outbound notification.
	Body string
}

// Evaluate computes the findings summary for a snapshot.
func Evaluate(snap types.Snapshot) FindingsSummary {
	perSource := make(map[types.Source]bool, len(types.Sources))
	for _, src := range types.Sources {
		perSource[src] = false
	}

	hasNew := false
	for _, r := range snap.Records {
		perSource[r.Source] = true
		hasNew = true
	}

	return FindingsSummary{
		PerSource:      perSource,
		HasNewFindings: hasNew,
		Body:           string(store.Render(snap)),
	}
}
