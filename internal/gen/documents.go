package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	language "github.com/hanpama/querygen/internal/language"
)

// LoadDocuments parses every file matching the given glob patterns and
// merges them into one query document. Files are visited in sorted path
// order so output is stable across runs. Patterns that match nothing are
// not an error; the caller decides what an empty document set means.
func LoadDocuments(patterns []string) (*language.QueryDocument, []string, error) {
	seen := map[string]bool{}
	var paths []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	merged := &language.QueryDocument{}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, nil, err
		}
		doc, err := language.ParseQuery(p, string(data))
		if err != nil {
			return nil, nil, err
		}
		merged.Operations = append(merged.Operations, doc.Operations...)
		merged.Fragments = append(merged.Fragments, doc.Fragments...)
	}
	return merged, paths, nil
}
