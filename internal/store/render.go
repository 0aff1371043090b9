// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HarleyCoops/SeeDream/pkg/types"
)

// sectionTitles maps each source category to its report section heading.
var sectionTitles = map[types.Source]string{
	types.SourceRepo:  "Repository Results",
	types.SourceCode:  "Code Results",
	types.SourcePaper: "Paper Results",
	types.SourceModel: "Model Results",
}

// sectionPlaceholders maps each source category to its empty-section text.
var sectionPlaceholders = map[types.Source]string{
	types.SourceRepo:  "No repository results found.",
	types.SourceCode:  "No code results found.",
	types.SourcePaper: "No paper results found.",
	types.SourceModel: "No model results found.",
}

// Render produces the readable Markdown report for a snapshot: one section
// per source category, each listing findings or stating that none were found.
func Render(snap types.Snapshot) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# SeedDream 3.0 Scan Results\n\n")
	fmt.Fprintf(&b, "**Scan date:** %s\n\n", snap.CreatedAt.Format("2006-01-02 15:04:05"))
	if len(snap.Terms) > 0 {
		fmt.Fprintf(&b, "**Query terms:** %s\n\n", strings.Join(snap.Terms, "; "))
	}

	grouped := snap.BySource()
	for _, src := range types.Sources {
		records := grouped[src]
		fmt.Fprintf(&b, "## %s (%d found)\n\n", sectionTitles[src], len(records))

		if len(records) == 0 {
			fmt.Fprintf(&b, "%s\n\n", sectionPlaceholders[src])
			continue
		}

		for _, r := range records {
			fmt.Fprintf(&b, "### [%s](%s)\n\n", r.Title, r.URL)
			if r.Snippet != "" {
				fmt.Fprintf(&b, "%s\n\n", r.Snippet)
			}
			for _, key := range sortedKeys(r.Extra) {
				fmt.Fprintf(&b, "**%s:** %s  \n", key, r.Extra[key])
			}
			fmt.Fprintf(&b, "\n---\n\n")
		}
	}

	fmt.Fprintf(&b, "Structured data: %s%s.json\n", fileStem, snap.Stamp())
	return []byte(b.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
