// Package domain contains the api spec comparison pipeline and manifest scanning logic.
package domain

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	m "apicheck.dev/pkg/apicheck/internal/model"
)

const (
	// DefaultSpecKey is the top-level spec key holding the API paths.
	DefaultSpecKey = "paths"
	// DefaultIgnoredField changes on almost every release and carries no API shape.
	DefaultIgnoredField = "description"
)

// SpecDiffer computes the structural difference between two spec documents.
type SpecDiffer interface {
	Diff(lesser, greater m.SpecDocument) (m.SpecDiff, error)
}

type specDiffer struct {
	key     string
	ignored map[string]struct{}
}

// NewSpecDiffer creates a SpecDiffer comparing the subtree under key. Map
// entries named after any ignored field are skipped below the first level.
func NewSpecDiffer(key string, ignoredFields ...string) SpecDiffer {
	ignored := make(map[string]struct{}, len(ignoredFields))
	for _, field := range ignoredFields {
		ignored[field] = struct{}{}
	}

	return &specDiffer{key: key, ignored: ignored}
}

// NewDefaultSpecDiffer compares "paths" and ignores "description" fields.
func NewDefaultSpecDiffer() SpecDiffer {
	return NewSpecDiffer(DefaultSpecKey, DefaultIgnoredField)
}

func (d *specDiffer) Diff(lesser, greater m.SpecDocument) (m.SpecDiff, error) {
	slog.Info("validating OpenApi Swagger JSON", "key", d.key)

	lesserTree, ok := lesser[d.key]
	if !ok {
		return m.SpecDiff{}, fmt.Errorf("key [%s] in lesser spec: %w", d.key, ErrMissingSpecKey)
	}

	greaterTree, ok := greater[d.key]
	if !ok {
		return m.SpecDiff{}, fmt.Errorf("key [%s] in greater spec: %w", d.key, ErrMissingSpecKey)
	}

	slog.Info("generating OpenApi Swagger JSON diff", "key", d.key)

	var reporter changeReporter

	cmp.Equal(lesserTree, greaterTree,
		cmp.Reporter(&reporter),
		cmp.FilterPath(d.isIgnored, cmp.Ignore()),
		cmpopts.SortSlices(d.lessByValue),
	)

	diff := reporter.diff
	slog.Debug("generated api spec diff",
		"added", len(diff.Added), "removed", len(diff.Removed), "changed", len(diff.Changed))

	if diff.Empty() {
		return diff, ErrNoChanges
	}

	return diff, nil
}

// isIgnored matches paths that pass through an ignored map key at depth two
// or deeper. The first level holds the API paths themselves.
func (d *specDiffer) isIgnored(path cmp.Path) bool {
	depth := 0

	for _, step := range path {
		mi, ok := step.(cmp.MapIndex)
		if !ok {
			continue
		}

		depth++
		if depth < 2 {
			continue
		}

		if _, ignored := d.ignored[fmt.Sprintf("%v", mi.Key())]; ignored {
			return true
		}
	}

	return false
}

// lessByValue orders decoded JSON values by the printed form of their
// normalized copies, so elements differing only in ignored fields keep the
// same relative position on both sides.
func (d *specDiffer) lessByValue(a, b any) bool {
	return d.sortKey(a) < d.sortKey(b)
}

// sortKey prints v without ignored map entries and with nested lists sorted.
// fmt prints map keys sorted, so equal values always print the same.
func (d *specDiffer) sortKey(v any) string {
	return fmt.Sprintf("%v", d.normalize(v))
}

func (d *specDiffer) normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if _, ignored := d.ignored[k]; ignored {
				continue
			}

			out[k] = d.normalize(val)
		}

		return out
	case []any:
		keys := make([]string, len(t))
		for i, val := range t {
			keys[i] = d.sortKey(val)
		}

		sort.Strings(keys)

		return keys
	default:
		return v
	}
}

// changeReporter is a cmp reporter collecting unequal leaves into a SpecDiff.
type changeReporter struct {
	path cmp.Path
	diff m.SpecDiff
}

// PushStep implements the cmp reporter interface.
func (r *changeReporter) PushStep(ps cmp.PathStep) {
	r.path = append(r.path, ps)
}

// PopStep implements the cmp reporter interface.
func (r *changeReporter) PopStep() {
	r.path = r.path[:len(r.path)-1]
}

// Report implements the cmp reporter interface.
func (r *changeReporter) Report(rs cmp.Result) {
	if rs.Equal() {
		return
	}

	record := m.ChangeRecord{
		Category: categorize(r.path.Last()),
		Path:     pathToStringList(r.path),
	}

	switch record.Category {
	case m.ChangeAdded:
		r.diff.Added = append(r.diff.Added, record)
	case m.ChangeRemoved:
		r.diff.Removed = append(r.diff.Removed, record)
	case m.ChangeChanged:
		r.diff.Changed = append(r.diff.Changed, record)
	}
}

func categorize(step cmp.PathStep) m.ChangeCategory {
	if _, ok := step.(cmp.MapIndex); !ok {
		return m.ChangeChanged
	}

	vx, vy := step.Values()

	switch {
	case !vx.IsValid() && vy.IsValid():
		return m.ChangeAdded
	case vx.IsValid() && !vy.IsValid():
		return m.ChangeRemoved
	default:
		return m.ChangeChanged
	}
}

func pathToStringList(path cmp.Path) []string {
	var up []string

	for _, step := range path {
		switch t := step.(type) {
		case cmp.MapIndex:
			up = append(up, fmt.Sprintf("%v", t.Key()))
		case cmp.SliceIndex:
			ix, iy := t.SplitKeys()
			if ix < 0 {
				ix = iy
			}

			up = append(up, fmt.Sprintf("[%d]", ix))
		}
	}

	return up
}
