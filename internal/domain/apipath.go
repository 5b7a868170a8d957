package domain

import (
	"log/slog"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	m "apicheck.dev/pkg/apicheck/internal/model"
)

var (
	// /api/VERSION/SEGMENT
	legacyPathPattern = regexp.MustCompile(`^/api/([^/]+)/([^/]+)`)
	// /apis/GROUP/VERSION, the version ends in a digit.
	namedPathPattern = regexp.MustCompile(`^/apis/([^/]+)/([^/]*\d)(?:/|$)`)
	// RESOURCETYPE following /apis/GROUP/VERSION/
	resourcePattern = regexp.MustCompile(`^\w+`)
)

// excludedResourceSubstrings filter out path templates ({name}, {namespace})
// and sub-actions that are not resource types.
var excludedResourceSubstrings = []string{"namespace", "name", "watch", "create", "update"}

// ParseAPIPath splits an API path into its group, version and resource type.
// It returns false when the path is neither a legacy nor a named group path.
func ParseAPIPath(path m.APIPath) (m.APIPathInfo, bool) {
	raw := string(path)

	if match := namedPathPattern.FindStringSubmatchIndex(raw); match != nil {
		info := m.APIPathInfo{
			Path:    path,
			Group:   raw[match[2]:match[3]],
			Version: raw[match[4]:match[5]],
		}

		rest := strings.TrimPrefix(raw[match[5]:], "/")
		if resource := resourcePattern.FindString(rest); resource != "" {
			if !containsAny(info.GroupVersion()+"/"+resource, excludedResourceSubstrings) {
				info.Resource = resource
			}
		}

		return info, true
	}

	if match := legacyPathPattern.FindStringSubmatch(raw); match != nil {
		return m.APIPathInfo{
			Path:    path,
			Legacy:  true,
			Version: match[1],
			Group:   match[2],
		}, true
	}

	return m.APIPathInfo{}, false
}

// CoreGroups returns the sorted VERSION/SEGMENT pairs of legacy /api paths.
func CoreGroups(paths []m.APIPath) []string {
	groups := sets.New[string]()

	for _, path := range paths {
		if info, ok := ParseAPIPath(path); ok && info.Legacy {
			groups.Insert(info.GroupVersion())
		}
	}

	result := sets.List(groups)
	slog.Debug("core api groups", "groups", result)
	slog.Info("total kubernetes core API groups", "count", len(result))

	return result
}

// NamedGroups returns the sorted GROUP/VERSION pairs of named /apis paths.
func NamedGroups(paths []m.APIPath) []string {
	groups := sets.New[string]()

	for _, path := range paths {
		if info, ok := ParseAPIPath(path); ok && !info.Legacy {
			groups.Insert(info.GroupVersion())
		}
	}

	result := sets.List(groups)
	slog.Debug("named api groups", "groups", result)
	slog.Info("total kubernetes named API groups", "count", len(result))

	return result
}

// ResourceTypes returns the sorted GROUP/VERSION/RESOURCETYPE strings of named paths.
func ResourceTypes(paths []m.APIPath) []string {
	resources := sets.New[string]()

	for _, path := range paths {
		info, ok := ParseAPIPath(path)
		if !ok || info.Legacy || info.Resource == "" {
			continue
		}

		resources.Insert(info.GroupVersion() + "/" + info.Resource)
	}

	result := sets.List(resources)
	slog.Debug("named api resources", "resources", result)
	slog.Info("total kubernetes named API resource types", "count", len(result))

	return result
}

// Classify builds the core and named group lists and one descriptor per named
// group holding the resource types seen under it.
func Classify(paths []m.APIPath) m.Classification {
	named := NamedGroups(paths)

	byGroup := make(map[string]sets.Set[string], len(named))
	for _, group := range named {
		byGroup[group] = sets.New[string]()
	}

	for _, resource := range ResourceTypes(paths) {
		idx := strings.LastIndex(resource, "/")
		group, name := resource[:idx], resource[idx+1:]

		if types, ok := byGroup[group]; ok {
			types.Insert(name)
		}
	}

	descriptors := make([]m.ApiGroupDescriptor, 0, len(named))
	for _, group := range named {
		descriptors = append(descriptors, m.ApiGroupDescriptor{
			GroupVersion:  group,
			ResourceTypes: sets.List(byGroup[group]),
		})
	}

	slog.Debug("api list", "descriptors", descriptors)

	return m.Classification{
		CoreGroups:  CoreGroups(paths),
		NamedGroups: named,
		Descriptors: descriptors,
	}
}

// DeprecatedGroups returns the group strings a manifest apiVersion is matched
// against. Core groups are only included on request.
func DeprecatedGroups(c m.Classification, includeCore bool) []string {
	groups := sets.New(c.NamedGroups...)
	if includeCore {
		groups.Insert(c.CoreGroups...)
	}

	return sets.List(groups)
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
