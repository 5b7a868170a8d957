package domain

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"apicheck.dev/pkg/apicheck/internal/adapter"
	m "apicheck.dev/pkg/apicheck/internal/model"
	"apicheck.dev/pkg/apicheck/pkg"
)

// DefaultFilePatterns are scanned when no patterns are configured.
var DefaultFilePatterns = []string{"*.yaml", "*.yml", "*.tpl"}

var (
	apiVersionLinePattern = regexp.MustCompile(`apiVersion: (.+)`)
	kindLinePattern       = regexp.MustCompile(`kind: ["']?(\w+)`)
)

// ScanArgs configures a manifest scan.
type ScanArgs struct {
	Root     m.Path
	Patterns []string
	Policy   m.MatchPolicy
	// Groups are the deprecated apiVersion strings to look for.
	Groups []string
	// Descriptors provide the resource types used by the kind policy.
	Descriptors []m.ApiGroupDescriptor
}

// ScanResult is the outcome of a manifest scan.
type ScanResult struct {
	Files    []m.Path
	Findings []m.Finding
}

// ManifestScanner looks for deprecated API usages in manifest files.
type ManifestScanner interface {
	Files(root m.Path, patterns []string) ([]m.Path, error)
	Parse(path m.Path) (m.ManifestFile, error)
	Scan(ctx context.Context, args ScanArgs) (ScanResult, error)
}

type manifestScanner struct {
	adapter.ManifestFSAdapter
}

// NewManifestScanner creates a ManifestScanner backed by the provided filesystem adapter.
func NewManifestScanner(fsAdapter adapter.ManifestFSAdapter) ManifestScanner {
	return &manifestScanner{ManifestFSAdapter: fsAdapter}
}

// Files lists files under root matching any of patterns, deduplicated and sorted.
func (s *manifestScanner) Files(root m.Path, patterns []string) ([]m.Path, error) {
	info, err := s.FileInfo(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: not a directory", root)
	}

	if len(patterns) == 0 {
		patterns = DefaultFilePatterns
	}

	files := sets.New[m.Path]()

	for _, pattern := range sets.List(sets.New(patterns...)) {
		matches, err := s.Glob(root, pattern)
		if err != nil {
			return nil, err
		}

		slog.Info("tracking files", "extension", pattern, "count", len(matches))
		files.Insert(matches...)
	}

	result := sets.List(files)
	slog.Debug("files", "files", result)

	return result, nil
}

// Parse extracts the apiVersion and kind values declared in a manifest.
func (s *manifestScanner) Parse(path m.Path) (m.ManifestFile, error) {
	lines, err := s.ReadLines(path)
	if err != nil {
		return m.ManifestFile{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	file := m.ManifestFile{Path: path}
	file.APIVersions, file.Kinds = ExtractManifestValues(lines)

	return file, nil
}

// Scan parses every matching file and reports deprecated API usages.
func (s *manifestScanner) Scan(ctx context.Context, args ScanArgs) (ScanResult, error) {
	files, err := s.Files(args.Root, args.Patterns)
	if err != nil {
		return ScanResult{}, err
	}

	deprecated := sets.New(args.Groups...)

	descriptors := make(map[string]m.ApiGroupDescriptor, len(args.Descriptors))
	for _, d := range args.Descriptors {
		descriptors[d.GroupVersion] = d
	}

	result := ScanResult{Files: files}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		manifest, err := s.Parse(path)
		if err != nil {
			return result, err
		}

		result.Findings = append(result.Findings, matchManifest(manifest, args.Policy, deprecated, descriptors)...)
	}

	return result, nil
}

func matchManifest(
	manifest m.ManifestFile,
	policy m.MatchPolicy,
	deprecated sets.Set[string],
	descriptors map[string]m.ApiGroupDescriptor,
) []m.Finding {
	var findings []m.Finding

	seen := sets.New[string]()

	for _, apiVersion := range manifest.APIVersions {
		if !deprecated.Has(apiVersion) || seen.Has(apiVersion) {
			continue
		}

		seen.Insert(apiVersion)
		slog.Warn("deprecated api group", "group", apiVersion, "file", manifest.Path)
		findings = append(findings, m.Finding{File: manifest.Path, APIVersion: apiVersion})

		if policy != m.MatchKind {
			continue
		}

		findings = append(findings, matchKinds(manifest, apiVersion, descriptors[apiVersion])...)
	}

	return findings
}

func matchKinds(manifest m.ManifestFile, apiVersion string, descriptor m.ApiGroupDescriptor) []m.Finding {
	var findings []m.Finding

	for _, kind := range manifest.Kinds {
		for _, resource := range descriptor.ResourceTypes {
			ratio, ok := pkg.KindMatchesResource(kind, resource)
			if !ok {
				continue
			}

			slog.Warn("deprecated api kind",
				"kind", kind, "group", apiVersion, "resource", resource, "file", manifest.Path)

			findings = append(findings, m.Finding{
				File:       manifest.Path,
				APIVersion: apiVersion,
				Kind:       kind,
				Resource:   resource,
				Similarity: ratio,
			})
		}
	}

	return findings
}

// ExtractManifestValues returns the apiVersion and kind values found in lines,
// in file order. apiVersion values are trimmed of whitespace and quotes.
func ExtractManifestValues(lines []string) (apiVersions []string, kinds []string) {
	for _, line := range lines {
		if match := apiVersionLinePattern.FindStringSubmatch(line); match != nil {
			value := strings.Trim(strings.TrimSpace(match[1]), `'"`)
			if value != "" {
				apiVersions = append(apiVersions, value)
			}
		}

		if match := kindLinePattern.FindStringSubmatch(line); match != nil {
			kinds = append(kinds, match[1])
		}
	}

	return apiVersions, kinds
}
