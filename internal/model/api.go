package model

// APIPath is a Kubernetes API path such as /apis/apps/v1/deployments.
type APIPath string

// APIPathInfo is the parsed form of an APIPath.
type APIPathInfo struct {
	Path APIPath
	// Legacy is true for core group paths under /api.
	Legacy bool
	// Group is the API group for named paths and the version segment's follower
	// for legacy paths (e.g. "namespaces" in /api/v1/namespaces).
	Group    string
	Version  string
	Resource string
}

// GroupVersion returns GROUP/VERSION for named paths and VERSION/SEGMENT for
// legacy ones.
func (i APIPathInfo) GroupVersion() string {
	if i.Legacy {
		return i.Version + "/" + i.Group
	}

	return i.Group + "/" + i.Version
}

// ApiGroupDescriptor groups the resource types known for one group/version.
//
//nolint:revive // Name mirrors the upstream terminology.
type ApiGroupDescriptor struct {
	GroupVersion  string   `json:"apiGroup" yaml:"apiGroup"`
	ResourceTypes []string `json:"resourceTypes" yaml:"resourceTypes"`
}

// Classification is the outcome of classifying a list of API paths.
type Classification struct {
	CoreGroups  []string             `json:"coreGroups" yaml:"coreGroups"`
	NamedGroups []string             `json:"namedGroups" yaml:"namedGroups"`
	Descriptors []ApiGroupDescriptor `json:"descriptors" yaml:"descriptors"`
}

// DiffSummary is everything the diff stage learned about two versions.
type DiffSummary struct {
	Lesser       Version        `json:"lesserVersion" yaml:"lesserVersion"`
	Greater      Version        `json:"greaterVersion" yaml:"greaterVersion"`
	PathsAdded   []APIPath      `json:"pathsAdded" yaml:"pathsAdded"`
	PathsRemoved []APIPath      `json:"pathsRemoved" yaml:"pathsRemoved"`
	Added        Classification `json:"added" yaml:"added"`
	Removed      Classification `json:"removed" yaml:"removed"`
}
