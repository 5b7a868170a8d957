package model

// Path represents a file system path.
type Path string

// MatchPolicy selects how strictly manifests are matched against deprecated APIs.
type MatchPolicy string

const (
	// MatchGroup flags files whose apiVersion equals a deprecated group.
	MatchGroup MatchPolicy = "group"
	// MatchKind additionally compares kinds against the group's resource types.
	MatchKind MatchPolicy = "kind"
)

// ParseMatchPolicy returns the policy named by value.
func ParseMatchPolicy(value string) (MatchPolicy, bool) {
	switch MatchPolicy(value) {
	case MatchGroup:
		return MatchGroup, true
	case MatchKind:
		return MatchKind, true
	}

	return "", false
}

// ManifestFile is a scanned manifest and the values declared in it.
type ManifestFile struct {
	Path        Path
	APIVersions []string
	Kinds       []string
}

// Finding is one deprecated API usage in a manifest.
type Finding struct {
	File       Path    `json:"file" yaml:"file"`
	APIVersion string  `json:"apiVersion" yaml:"apiVersion"`
	Kind       string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Resource   string  `json:"resourceType,omitempty" yaml:"resourceType,omitempty"`
	Similarity float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

// Report is the result of a full check run.
type Report struct {
	Summary      DiffSummary `json:"summary" yaml:"summary"`
	Policy       MatchPolicy `json:"policy" yaml:"policy"`
	FilesScanned int         `json:"filesScanned" yaml:"filesScanned"`
	Findings     []Finding   `json:"findings" yaml:"findings"`
}
