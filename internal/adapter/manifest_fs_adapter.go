// Package adapter contains the infrastructure adapters for the apicheck CLI.
package adapter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "apicheck.dev/pkg/apicheck/internal/model"
)

const maxManifestLineSize = 1024 * 1024

// ManifestFSAdapter abstracts the filesystem operations the scanner relies on
// when looking for manifests. It hides direct `os` access so the domain logic
// can be tested without touching the disk.
type ManifestFSAdapter interface {
	// Glob returns the files under root whose name matches pattern, at any
	// depth. Results are sorted.
	Glob(root m.Path, pattern string) ([]m.Path, error)

	// ReadLines loads a text file and returns its lines without terminators.
	ReadLines(path m.Path) ([]string, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// LocalManifestFSAdapter implements ManifestFSAdapter on the local disk.
type LocalManifestFSAdapter struct{}

// NewLocalManifestFSAdapter constructs a LocalManifestFSAdapter instance ready
// to be wired into the scanner.
func NewLocalManifestFSAdapter() *LocalManifestFSAdapter {
	return &LocalManifestFSAdapter{}
}

// Glob matches pattern recursively below root. A pattern without a leading
// "**/" is matched in every directory, so "*.yaml" behaves like "**/*.yaml".
func (a *LocalManifestFSAdapter) Glob(root m.Path, pattern string) ([]m.Path, error) {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	if !strings.HasPrefix(pattern, "**/") {
		pattern = "**/" + pattern
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern %q", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(string(root)), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", pattern, root, err)
	}

	paths := make([]m.Path, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, m.Path(filepath.Join(string(root), filepath.FromSlash(match))))
	}

	sort.Slice(paths, func(i, j int) bool {
		return paths[i] < paths[j]
	})

	return paths, nil
}

// ReadLines reads the file at path line by line.
func (a *LocalManifestFSAdapter) ReadLines(path m.Path) ([]string, error) {
	// #nosec G304 - path comes from the user-selected scan directory
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	var lines []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxManifestLineSize)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalManifestFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}
