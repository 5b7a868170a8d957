// Package model defines the data structures shared by the api check pipeline.
package model

// Version is a Kubernetes minor release such as "1.22".
type Version string

// SpecDocument is a parsed OpenAPI (swagger) JSON document.
type SpecDocument map[string]any

// ChangeCategory classifies a single change between two spec documents.
type ChangeCategory string

const (
	// ChangeAdded is a map entry present only in the greater spec.
	ChangeAdded ChangeCategory = "added"
	// ChangeRemoved is a map entry present only in the lesser spec.
	ChangeRemoved ChangeCategory = "removed"
	// ChangeChanged covers value changes and list item changes.
	ChangeChanged ChangeCategory = "changed"
)

// ChangeRecord is one change location, as map keys and list indices from the
// root of the compared subtree.
type ChangeRecord struct {
	Category ChangeCategory
	Path     []string
}

// SpecDiff holds every change found between two spec documents.
type SpecDiff struct {
	Added   []ChangeRecord
	Removed []ChangeRecord
	Changed []ChangeRecord
}

// Empty reports whether the diff has neither added nor removed entries.
func (d SpecDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Records returns the records of the given category.
func (d SpecDiff) Records(category ChangeCategory) []ChangeRecord {
	switch category {
	case ChangeAdded:
		return d.Added
	case ChangeRemoved:
		return d.Removed
	case ChangeChanged:
		return d.Changed
	}

	return nil
}
