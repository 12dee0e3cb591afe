package cli

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedGo = "// Code generated by decoratable. DO NOT EDIT.\n\npackage store\n"

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	setup := func(t *testing.T) string {
		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"store/store.go":                     "package store\n",
			"store/autogen_decorators.go":        generatedGo,
			"legacy/autogen_decorators.go":       "package legacy\n\n// written by hand\n",
			"App/Shapes.swift":                   "protocol Shape {}\n",
			"App/Shapes+Decorator.swift":         "// Code generated by decoratable. DO NOT EDIT.\n",
			"vendor/dep/autogen_decorators.go":   generatedGo,
			"store/nested/autogen_decorators.go": generatedGo,
		})
		return root
	}

	t.Run("removes only generated files", func(t *testing.T) {
		root := setup(t)
		cleaner := NewCleaner(DefaultConfig(), zerolog.Nop())

		removed, err := cleaner.CleanGeneratedFiles([]string{filepath.Join(root, "...")})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "App", "Shapes+Decorator.swift"),
			filepath.Join(root, "store", "autogen_decorators.go"),
			filepath.Join(root, "store", "nested", "autogen_decorators.go"),
		}, removed)

		assert.NoFileExists(t, filepath.Join(root, "store", "autogen_decorators.go"))
		assert.FileExists(t, filepath.Join(root, "legacy", "autogen_decorators.go"))
		assert.FileExists(t, filepath.Join(root, "vendor", "dep", "autogen_decorators.go"))
		assert.FileExists(t, filepath.Join(root, "App", "Shapes.swift"))
	})

	t.Run("non recursive", func(t *testing.T) {
		root := setup(t)
		cleaner := NewCleaner(DefaultConfig(), zerolog.Nop())

		removed, err := cleaner.CleanGeneratedFiles([]string{filepath.Join(root, "store")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "store", "autogen_decorators.go")}, removed)
		assert.FileExists(t, filepath.Join(root, "store", "nested", "autogen_decorators.go"))
	})

	t.Run("dry run keeps files", func(t *testing.T) {
		root := setup(t)
		config := DefaultConfig()
		config.DryRun = true

		removed, err := NewCleaner(config, zerolog.Nop()).CleanGeneratedFiles([]string{filepath.Join(root, "...")})
		require.NoError(t, err)
		assert.Len(t, removed, 3)
		assert.FileExists(t, filepath.Join(root, "store", "autogen_decorators.go"))
	})

	t.Run("dialect", func(t *testing.T) {
		root := setup(t)
		config := DefaultConfig()
		config.Dialect = DialectSwift

		removed, err := NewCleaner(config, zerolog.Nop()).CleanGeneratedFiles([]string{filepath.Join(root, "...")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "App", "Shapes+Decorator.swift")}, removed)
	})

	t.Run("missing directories are skipped", func(t *testing.T) {
		removed, err := NewCleaner(DefaultConfig(), zerolog.Nop()).CleanGeneratedFiles([]string{filepath.Join(t.TempDir(), "gone", "...")})
		require.NoError(t, err)
		assert.Empty(t, removed)
	})
}
