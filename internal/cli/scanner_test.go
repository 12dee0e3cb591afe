package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files below root, making parent directories as needed
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestParsePattern(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		raw       string
		root      string
		recursive bool
	}{
		{"./...", cwd, true},
		{"...", cwd, true},
		{".", cwd, false},
		{"store/...", filepath.Join(cwd, "store"), true},
		{"store", filepath.Join(cwd, "store"), false},
		{"/srv/app/...", filepath.FromSlash("/srv/app"), true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p, err := parsePattern(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.root, p.root)
			assert.Equal(t, tt.recursive, p.recursive)
		})
	}
}

func TestDirectoryScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":                     "package main\n",
		"store/store.go":              "package store\n",
		"store/store_test.go":         "package store\n",
		"store/cache/cache.go":        "package cache\n",
		"vendor/dep/dep.go":           "package dep\n",
		"App/Shapes.swift":            "protocol Shape {}\n",
		"App/Shapes+Decorator.swift":  "class ShapeDecorator {}\n",
		"App/Pods/Lib/Lib.swift":      "protocol Lib {}\n",
		"docs/README.md":              "# docs\n",
		"testdata/fixture/fixture.go": "package fixture\n",
	})
	scanner := NewDirectoryScanner(zerolog.Nop())

	t.Run("recursive", func(t *testing.T) {
		result, err := scanner.Scan([]string{filepath.Join(root, "...")}, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, []string{
			root,
			filepath.Join(root, "store"),
			filepath.Join(root, "store", "cache"),
		}, result.GoPackages)
		assert.Equal(t, []string{filepath.Join(root, "App", "Shapes.swift")}, result.SwiftFiles)
		assert.False(t, result.IsEmpty())
	})

	t.Run("single directory", func(t *testing.T) {
		result, err := scanner.Scan([]string{filepath.Join(root, "store")}, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "store")}, result.GoPackages)
		assert.Empty(t, result.SwiftFiles)
	})

	t.Run("dialect restricts the scan", func(t *testing.T) {
		config := DefaultConfig()
		config.Dialect = DialectSwift

		result, err := scanner.Scan([]string{filepath.Join(root, "...")}, config)
		require.NoError(t, err)
		assert.Empty(t, result.GoPackages)
		assert.Len(t, result.SwiftFiles, 1)
	})

	t.Run("file patterns", func(t *testing.T) {
		result, err := scanner.Scan([]string{
			filepath.Join(root, "store", "store.go"),
			filepath.Join(root, "App", "Shapes.swift"),
			filepath.Join(root, "store", "..."),
		}, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "store"), filepath.Join(root, "store", "cache")}, result.GoPackages)
		assert.Equal(t, []string{filepath.Join(root, "App", "Shapes.swift")}, result.SwiftFiles)
	})

	t.Run("unsupported file", func(t *testing.T) {
		_, err := scanner.Scan([]string{filepath.Join(root, "docs", "README.md")}, DefaultConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "neither a directory nor a Go or Swift file")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := scanner.Scan([]string{filepath.Join(root, "missing")}, DefaultConfig())
		assert.Error(t, err)
	})

	t.Run("nothing found", func(t *testing.T) {
		result, err := scanner.Scan([]string{filepath.Join(root, "docs")}, DefaultConfig())
		require.NoError(t, err)
		assert.True(t, result.IsEmpty())
	})
}
