package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apicheck.dev/pkg/apicheck/internal/adapter"
	adaptermocks "apicheck.dev/pkg/apicheck/internal/adapter/mocks"
	m "apicheck.dev/pkg/apicheck/internal/model"
)

const (
	deploymentManifest = `apiVersion: apps/v1beta1
kind: Deployment
metadata:
  name: web
`
	statefulSetTemplate = `apiVersion: "apps/v1beta1"
kind: StatefulSet
metadata:
  name: {{ .Release.Name }}
`
	serviceManifest = `apiVersion: v1
kind: Service
metadata:
  name: web
`
)

func TestExtractManifestValues(t *testing.T) {
	lines := []string{
		"# comment",
		"apiVersion: apps/v1beta1",
		"kind: Deployment",
		"---",
		`  apiVersion: "extensions/v1beta1"`,
		"kind: 'Ingress'",
		"apiVersion: ",
		"metadata:",
		"  name: web",
	}

	apiVersions, kinds := ExtractManifestValues(lines)

	assert.Equal(t, []string{"apps/v1beta1", "extensions/v1beta1"}, apiVersions)
	assert.Equal(t, []string{"Deployment", "Ingress"}, kinds)
}

func TestExtractManifestValues_Empty(t *testing.T) {
	apiVersions, kinds := ExtractManifestValues(nil)

	assert.Nil(t, apiVersions)
	assert.Nil(t, kinds)
}

func TestManifestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "deploy.yaml"), deploymentManifest)
	writeManifest(t, filepath.Join(root, "svc.yml"), serviceManifest)
	writeManifest(t, filepath.Join(root, "chart", "templates", "sts.tpl"), statefulSetTemplate)
	writeManifest(t, filepath.Join(root, "README.md"), "apiVersion: apps/v1beta1\n")

	deployPath := m.Path(filepath.Join(root, "deploy.yaml"))
	stsPath := m.Path(filepath.Join(root, "chart", "templates", "sts.tpl"))

	args := ScanArgs{
		Root:   m.Path(root),
		Groups: []string{"apps/v1beta1"},
		Descriptors: []m.ApiGroupDescriptor{
			{GroupVersion: "apps/v1beta1", ResourceTypes: []string{"deployments", "statefulsets"}},
		},
	}

	scanner := NewManifestScanner(adapter.NewLocalManifestFSAdapter())

	t.Run("group policy", func(t *testing.T) {
		args := args
		args.Policy = m.MatchGroup

		result, err := scanner.Scan(context.Background(), args)
		require.NoError(t, err)

		assert.Len(t, result.Files, 3)
		assert.Equal(t, []m.Finding{
			{File: stsPath, APIVersion: "apps/v1beta1"},
			{File: deployPath, APIVersion: "apps/v1beta1"},
		}, result.Findings)
	})

	t.Run("kind policy", func(t *testing.T) {
		args := args
		args.Policy = m.MatchKind

		result, err := scanner.Scan(context.Background(), args)
		require.NoError(t, err)
		require.Len(t, result.Findings, 4)

		assert.Equal(t, m.Finding{File: stsPath, APIVersion: "apps/v1beta1"}, result.Findings[0])

		assert.Equal(t, "StatefulSet", result.Findings[1].Kind)
		assert.Equal(t, "statefulsets", result.Findings[1].Resource)
		assert.InDelta(t, 22.0/23.0, result.Findings[1].Similarity, 1e-9)

		assert.Equal(t, m.Finding{File: deployPath, APIVersion: "apps/v1beta1"}, result.Findings[2])

		assert.Equal(t, "Deployment", result.Findings[3].Kind)
		assert.Equal(t, "deployments", result.Findings[3].Resource)
		assert.InDelta(t, 20.0/21.0, result.Findings[3].Similarity, 1e-9)
	})

	t.Run("only listed patterns", func(t *testing.T) {
		args := args
		args.Patterns = []string{"*.yml"}

		result, err := scanner.Scan(context.Background(), args)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "svc.yml"))}, result.Files)
		assert.Empty(t, result.Findings)
	})

	t.Run("no deprecated groups", func(t *testing.T) {
		result, err := scanner.Scan(context.Background(), ScanArgs{Root: m.Path(root), Policy: m.MatchKind})
		require.NoError(t, err)

		assert.Len(t, result.Files, 3)
		assert.Empty(t, result.Findings)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := scanner.Scan(ctx, args)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestManifestScanner_DuplicateAPIVersion(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "all.yaml"), deploymentManifest+"---\n"+deploymentManifest)

	result, err := NewManifestScanner(adapter.NewLocalManifestFSAdapter()).Scan(context.Background(), ScanArgs{
		Root:   m.Path(root),
		Policy: m.MatchGroup,
		Groups: []string{"apps/v1beta1"},
	})
	require.NoError(t, err)

	assert.Len(t, result.Findings, 1)
}

func TestManifestScanner_Files(t *testing.T) {
	t.Run("default patterns", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockManifestFSAdapter(t)
		scanner := NewManifestScanner(fsAdapter)

		info := dirInfo(t)
		fsAdapter.On("FileInfo", m.Path("/charts")).Return(info, nil).Once()
		fsAdapter.On("Glob", m.Path("/charts"), "*.tpl").Return([]m.Path{"/charts/a.tpl"}, nil).Once()
		fsAdapter.On("Glob", m.Path("/charts"), "*.yaml").Return([]m.Path{"/charts/b.yaml", "/charts/a.yaml"}, nil).Once()
		fsAdapter.On("Glob", m.Path("/charts"), "*.yml").Return(nil, nil).Once()

		files, err := scanner.Files("/charts", nil)
		require.NoError(t, err)
		assert.Equal(t, []m.Path{"/charts/a.tpl", "/charts/a.yaml", "/charts/b.yaml"}, files)
	})

	t.Run("duplicate patterns glob once", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockManifestFSAdapter(t)
		scanner := NewManifestScanner(fsAdapter)

		fsAdapter.On("FileInfo", m.Path("/charts")).Return(dirInfo(t), nil).Once()
		fsAdapter.On("Glob", m.Path("/charts"), "*.yaml").Return([]m.Path{"/charts/a.yaml"}, nil).Once()

		files, err := scanner.Files("/charts", []string{"*.yaml", "*.yaml"})
		require.NoError(t, err)
		assert.Equal(t, []m.Path{"/charts/a.yaml"}, files)
	})

	t.Run("missing root", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockManifestFSAdapter(t)
		scanner := NewManifestScanner(fsAdapter)

		fsAdapter.On("FileInfo", m.Path("/missing")).Return(nil, os.ErrNotExist).Once()

		_, err := scanner.Files("/missing", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "/missing")
	})

	t.Run("root is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "deploy.yaml")
		writeManifest(t, file, deploymentManifest)

		_, err := NewManifestScanner(adapter.NewLocalManifestFSAdapter()).Files(m.Path(file), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("glob error", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockManifestFSAdapter(t)
		scanner := NewManifestScanner(fsAdapter)
		globErr := errors.New("bad pattern")

		fsAdapter.On("FileInfo", m.Path("/charts")).Return(dirInfo(t), nil).Once()
		fsAdapter.On("Glob", m.Path("/charts"), "[").Return(nil, globErr).Once()

		_, err := scanner.Files("/charts", []string{"["})
		assert.ErrorIs(t, err, globErr)
	})
}

func TestManifestScanner_Parse(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockManifestFSAdapter(t)
		scanner := NewManifestScanner(fsAdapter)

		fsAdapter.On("ReadLines", m.Path("/charts/a.yaml")).
			Return([]string{"apiVersion: batch/v1beta1", "kind: CronJob"}, nil).Once()

		file, err := scanner.Parse("/charts/a.yaml")
		require.NoError(t, err)
		assert.Equal(t, m.ManifestFile{
			Path:        "/charts/a.yaml",
			APIVersions: []string{"batch/v1beta1"},
			Kinds:       []string{"CronJob"},
		}, file)
	})

	t.Run("read error", func(t *testing.T) {
		fsAdapter := adaptermocks.NewMockManifestFSAdapter(t)
		scanner := NewManifestScanner(fsAdapter)

		fsAdapter.On("ReadLines", m.Path("/charts/a.yaml")).Return(nil, os.ErrPermission).Once()

		_, err := scanner.Parse("/charts/a.yaml")
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Contains(t, err.Error(), "read manifest")
	})
}

func writeManifest(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}

func dirInfo(t *testing.T) os.FileInfo {
	t.Helper()

	info, err := os.Stat(t.TempDir())
	require.NoError(t, err)

	return info
}
