// Package pkg is a package that provides utilities for apicheck.
package pkg

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultSimilarityThreshold is the ratio a kind must exceed to match a resource type.
const DefaultSimilarityThreshold = 0.8

// Similarity returns the ratio of matching characters between a and b, based on
// the longest contiguous matching subsequences. 1.0 means identical.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}

	matcher := difflib.NewMatcher(splitChars(a), splitChars(b))

	return matcher.Ratio()
}

// Similar reports whether a and b are more alike than threshold.
func Similar(a, b string, threshold float64) bool {
	return Similarity(a, b) > threshold
}

// KindMatchesResource compares a manifest kind (usually singular, e.g.
// "Deployment") against a resource type path segment (usually plural, e.g.
// "deployments"). The kind is compared case-insensitively.
func KindMatchesResource(kind, resource string) (float64, bool) {
	ratio := Similarity(strings.ToLower(kind), resource)

	return ratio, ratio > DefaultSimilarityThreshold
}

func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}

	return chars
}
