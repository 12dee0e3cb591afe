package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeSource = `package store

import "context"

//decoratable:generate
type Store interface {
	Get(ctx context.Context, key string) (string, error)
}
`

func setupModule(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["go.mod"] = "module example.com/app\n\ngo 1.22\n"
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	t.Chdir(root)
	return root
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	code := Execute(cmd, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestGenerateCommand(t *testing.T) {
	root := setupModule(t, map[string]string{
		"store/store.go":   storeSource,
		"App/Shapes.swift": "@Decoratable\nprotocol Shape {\n    func area() -> Double\n}\n",
	})

	code, stdout, stderr := run(t, "generate", "./...")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "decoratable: Generation complete!")
	assert.Contains(t, stdout, "Decorators emitted")

	assert.FileExists(t, filepath.Join(root, "store", "autogen_decorators.go"))
	assert.FileExists(t, filepath.Join(root, "App", "Shapes+Decorator.swift"))

	t.Run("clean removes the outputs", func(t *testing.T) {
		code, stdout, stderr := run(t, "clean", "./...")
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, "2 generated file(s) removed")
		assert.Regexp(t, `(?m)^  - removed .*Shapes\+Decorator\.swift$`, stdout)
		assert.NoFileExists(t, filepath.Join(root, "store", "autogen_decorators.go"))
		assert.NoFileExists(t, filepath.Join(root, "App", "Shapes+Decorator.swift"))
	})
}

func TestGenerateCommand_Flags(t *testing.T) {
	root := setupModule(t, map[string]string{
		"store/store.go":   storeSource,
		"App/Shapes.swift": "@Decoratable\nprotocol Shape {\n    func area() -> Double\n}\n",
	})

	t.Run("dry run", func(t *testing.T) {
		code, stdout, stderr := run(t, "generate", "--dry-run", "./...")
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, "type StoreDecorator struct")
		assert.NoFileExists(t, filepath.Join(root, "store", "autogen_decorators.go"))
	})

	t.Run("dialect and output", func(t *testing.T) {
		code, _, stderr := run(t, "generate", "--dialect", "go", "--output", "zz_decorators.go", "-q", "./...")
		require.Equal(t, 0, code, stderr)
		assert.FileExists(t, filepath.Join(root, "store", "zz_decorators.go"))
		assert.NoFileExists(t, filepath.Join(root, "App", "Shapes+Decorator.swift"))
	})

	t.Run("invalid configuration", func(t *testing.T) {
		code, _, stderr := run(t, "generate", "--dialect", "rust")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Error: ")
		assert.Contains(t, stderr, "unknown dialect")
	})
}

func TestGenerateCommand_ConfigFile(t *testing.T) {
	root := setupModule(t, map[string]string{
		"store/store.go":    storeSource,
		".decoratable.yaml": "output: decorators_gen.go\nheader: false\n",
	})

	code, _, stderr := run(t, "generate", "./...")
	require.Equal(t, 0, code, stderr)

	content, err := os.ReadFile(filepath.Join(root, "store", "decorators_gen.go"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "DO NOT EDIT")
}

func TestGenerateCommand_DefaultPattern(t *testing.T) {
	root := setupModule(t, map[string]string{"store/store.go": storeSource})
	t.Chdir(filepath.Join(root, "store"))

	code, _, stderr := run(t, "generate")
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(root, "store", "autogen_decorators.go"))
}

func TestGenerateCommand_Failure(t *testing.T) {
	root := setupModule(t, map[string]string{
		"shapes/shapes.go": "package shapes\n\n//decoratable:generate\ntype Point struct{ X, Y int }\n",
	})

	code, _, stderr := run(t, "generate", "./...")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "ERROR: Code Generation Failed")
	assert.Contains(t, stderr, "@Decoratable can only be applied to an interface.")
	assert.NotContains(t, stderr, "Error: ")
	assert.NoFileExists(t, filepath.Join(root, "shapes", "autogen_decorators.go"))
}

func TestExpandCommand(t *testing.T) {
	setupModule(t, map[string]string{
		"store/store.go": storeSource,
		"store/plain.go": "package store\n",
	})

	code, stdout, stderr := run(t, "expand", "store/store.go")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "// Code generated by decoratable. DO NOT EDIT.\n")
	assert.Contains(t, stdout, "func NewStoreDecorator(decoree Store) *StoreDecorator {")

	code, stdout, stderr = run(t, "expand", "store/plain.go")
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stdout, "package store")
	assert.Contains(t, stdout, "declares nothing to decorate")

	code, _, _ = run(t, "expand")
	assert.Equal(t, 1, code)
}

func TestVersionCommand(t *testing.T) {
	previous := version
	version = "v1.2.3"
	t.Cleanup(func() { version = previous })

	code, stdout, _ := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "decoratable v1.2.3\n", stdout)
}

func TestDefaultPatterns(t *testing.T) {
	assert.Equal(t, []string{"."}, defaultPatterns(nil))
	assert.Equal(t, []string{"./..."}, defaultPatterns([]string{"./..."}))
}
