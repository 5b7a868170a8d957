package domain

import "errors"

var (
	// ErrMissingSpecKey is returned when a spec document lacks the compared key.
	ErrMissingSpecKey = errors.New("key is missing in the kubernetes api specification")
	// ErrNoChanges is returned when two specs have no added or removed entries.
	ErrNoChanges = errors.New("no changes in OpenApi spec detected")
	// ErrDeprecatedAPIsFound is returned when scanned manifests use deprecated APIs.
	ErrDeprecatedAPIsFound = errors.New("deprecated kubernetes apis found")
)
