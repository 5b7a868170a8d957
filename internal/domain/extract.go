package domain

import (
	"log/slog"

	"k8s.io/apimachinery/pkg/util/sets"

	m "apicheck.dev/pkg/apicheck/internal/model"
)

// ExtractPaths returns the API paths touched by changes of the given category.
// Each change contributes the first element of its location, so the result is
// the set of top-level keys under "paths", sorted ascending.
func ExtractPaths(diff m.SpecDiff, category m.ChangeCategory) []m.APIPath {
	unique := sets.New[string]()

	for _, record := range diff.Records(category) {
		if len(record.Path) == 0 {
			continue
		}

		unique.Insert(record.Path[0])
	}

	sorted := sets.List(unique)

	paths := make([]m.APIPath, 0, len(sorted))
	for _, p := range sorted {
		paths = append(paths, m.APIPath(p))
	}

	slog.Info("fetched APIs from diff", "category", category, "count", len(paths))
	slog.Debug("kubernetes APIs", "category", category, "paths", paths)

	return paths
}
