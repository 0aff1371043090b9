// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/HarleyCoops/SeeDream/pkg/types"
)

func TestEvaluateEmptySnapshot(t *testing.T) {
	snap := types.Snapshot{
		CreatedAt: time.Date(2026, 8, 29, 14, 5, 1, 0, time.UTC),
		Terms:     []string{"SeedDream 3.0"},
	}

	summary := Evaluate(snap)

	if summary.HasNewFindings {
		t.Error("expected no new findings for empty snapshot")
	}
	for _, src := range types.Sources {
		if summary.PerSource[src] {
			t.Errorf("expected PerSource[%s] = false", src)
		}
	}
	for _, placeholder := range []string{
		"No repository results found.",
		"No code results found.",
		"No paper results found.",
		"No model results found.",
	} {
		if !strings.Contains(summary.Body, placeholder) {
			t.Errorf("body missing %q", placeholder)
		}
	}
}

func TestEvaluateSingleFinding(t *testing.T) {
	snap := types.Snapshot{
		CreatedAt: time.Date(2026, 8, 29, 14, 5, 1, 0, time.UTC),
		Records: []types.ResultRecord{
			{
				Source:     types.SourceRepo,
				Title:      "Foo Impl",
				URL:        "https://github.com/OrgX/foo-impl",
				Identifier: "OrgX/foo-impl",
			},
		},
	}

	summary := Evaluate(snap)

	if !summary.HasNewFindings {
		t.Error("expected new findings")
	}
	if !summary.PerSource[types.SourceRepo] {
		t.Error("expected PerSource[repo] = true")
	}
	for _, src := range []types.Source{types.SourceCode, types.SourcePaper, types.SourceModel} {
		if summary.PerSource[src] {
			t.Errorf("expected PerSource[%s] = false", src)
		}
	}
	if !strings.Contains(summary.Body, "Foo Impl") {
		t.Error("body missing finding title")
	}
}

func TestEvaluateCoversAllSources(t *testing.T) {
	var records []types.ResultRecord
	for i, src := range types.Sources {
		records = append(records, types.ResultRecord{
			Source:     src,
			Title:      "item",
			Identifier: string(src) + "-" + string(rune('a'+i)),
		})
	}
	snap := types.Snapshot{
		CreatedAt: time.Date(2026, 8, 29, 14, 5, 1, 0, time.UTC),
		Records:   records,
	}

	summary := Evaluate(snap)

	if !summary.HasNewFindings {
		t.Error("expected new findings")
	}
	for _, src := range types.Sources {
		if !summary.PerSource[src] {
			t.Errorf("expected PerSource[%s] = true", src)
		}
	}
}
