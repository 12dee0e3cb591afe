package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}
}

func TestWalkFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"main.go",
		"main_test.go",
		"pkg/store/store.go",
		"pkg/store/store_test.go",
		"vendor/dep/dep.go",
		".git/hooks/hook.go",
		"_examples/demo.go",
		"testdata/fixture.go",
		"App/Shapes.swift",
		"App/Shapes+Decorator.swift",
		"App/Pods/Lib.swift",
	)

	t.Run("recursive go sources", func(t *testing.T) {
		files, err := WalkFiles(root, WalkOptions{
			FileFilter:      GoSourceFilter(),
			DirectoryFilter: DefaultDirectoryFilter(),
			Recursive:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "main.go"),
			filepath.Join(root, "pkg/store/store.go"),
		}, files)
	})

	t.Run("single directory", func(t *testing.T) {
		files, err := WalkFiles(root, WalkOptions{FileFilter: GoSourceFilter()})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "main.go")}, files)
	})

	t.Run("root is never filtered", func(t *testing.T) {
		files, err := WalkFiles(filepath.Join(root, "vendor", "dep"), WalkOptions{
			FileFilter:      GoSourceFilter(),
			DirectoryFilter: DefaultDirectoryFilter(),
			Recursive:       true,
		})
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("swift sources skip generated peers", func(t *testing.T) {
		files, err := WalkFiles(root, WalkOptions{
			FileFilter:      SwiftSourceFilter("+Decorator"),
			DirectoryFilter: DefaultDirectoryFilter(),
			Recursive:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "App/Shapes.swift")}, files)
	})

	t.Run("named and suffix filters", func(t *testing.T) {
		files, err := WalkFiles(root, WalkOptions{FileFilter: NamedFileFilter("store.go"), Recursive: true})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "pkg/store/store.go")}, files)

		files, err = WalkFiles(root, WalkOptions{
			FileFilter:      SuffixFileFilter("+Decorator.swift"),
			DirectoryFilter: DefaultDirectoryFilter(),
			Recursive:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "App/Shapes+Decorator.swift")}, files)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := WalkFiles(filepath.Join(root, "missing"), WalkOptions{})
		assert.Error(t, err)

		files, err := WalkFiles(filepath.Join(root, "missing"), WalkOptions{SkipErrors: true})
		assert.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestDirectoriesWithFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b/one.go", "b/two.go", "a/one.go", "c/readme.md")

	dirs, err := DirectoriesWithFiles([]string{root, filepath.Join(root, "a")}, WalkOptions{
		FileFilter: GoSourceFilter(),
		Recursive:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a"), filepath.Join(root, "b")}, dirs)
}

func TestGoModule(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte(`// comment
module example.com/shop

go 1.22

require github.com/rs/zerolog v1.34.0
`), 0644))
	touch(t, root, "internal/cart/cart.go")

	t.Run("find walks up", func(t *testing.T) {
		path, err := FindGoMod(filepath.Join(root, "internal", "cart"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "go.mod"), path)
	})

	t.Run("parse", func(t *testing.T) {
		module, err := ParseGoMod(filepath.Join(root, "go.mod"))
		require.NoError(t, err)
		assert.Equal(t, "example.com/shop", module.Path)
		assert.Equal(t, "1.22", module.GoVersion)
		assert.Equal(t, root, module.Dir)
	})

	t.Run("import paths", func(t *testing.T) {
		module := &GoModule{Path: "example.com/shop", Dir: root}

		path, err := module.ImportPath(filepath.Join(root, "internal", "cart"))
		require.NoError(t, err)
		assert.Equal(t, "example.com/shop/internal/cart", path)

		path, err = module.ImportPath(root)
		require.NoError(t, err)
		assert.Equal(t, "example.com/shop", path)

		_, err = module.ImportPath(filepath.Dir(root))
		assert.Error(t, err)
	})

	t.Run("invalid files", func(t *testing.T) {
		_, err := ParseGoMod(filepath.Join(root, "internal", "cart", "cart.go"))
		assert.Error(t, err)

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("go 1.22\n"), 0644))
		_, err = ParseGoMod(filepath.Join(dir, "go.mod"))
		assert.Error(t, err)
	})
}

func TestDiagnosticSystem(t *testing.T) {
	newSystem := func(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
		var out, errOut bytes.Buffer
		d := NewDiagnosticSystem(level)
		d.SetOutput(&out, &errOut)
		return d, &out, &errOut
	}

	t.Run("levels gate output", func(t *testing.T) {
		d, out, errOut := newSystem(DiagnosticWarn)
		d.Info("hidden")
		d.Verbose("hidden")
		d.Warn("careful %d", 1)
		d.Error("broken")

		assert.Equal(t, "[WARN] careful 1\n", out.String())
		assert.Equal(t, "[ERROR] broken\n", errOut.String())
	})

	t.Run("silent shows nothing", func(t *testing.T) {
		d, out, errOut := newSystem(DiagnosticSilent)
		d.Error("broken")
		d.Summary("Summary", map[string]interface{}{"a": 1})
		assert.Empty(t, out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("indentation and lists", func(t *testing.T) {
		d, out, _ := newSystem(DiagnosticInfo)
		d.Indent()
		d.Info("nested")
		d.List("item %s", "one")
		d.Unindent()
		d.Unindent()
		d.Success("done")

		assert.Equal(t, "  [INFO] nested\n  - item one\n[SUCCESS] done\n", out.String())
	})

	t.Run("summary is sorted", func(t *testing.T) {
		d, out, _ := newSystem(DiagnosticInfo)
		d.Summary("Summary", map[string]interface{}{"b": 2, "a": 1})
		assert.Equal(t, "\nSummary\n   a: 1\n   b: 2\n\n", out.String())
	})

	t.Run("phases", func(t *testing.T) {
		d, out, _ := newSystem(DiagnosticInfo)
		d.Header("Generating decorators")
		d.PhaseHeader("Writing")
		d.PhaseItem("parsed")
		d.PhaseWrite("store/autogen_decorators.go")
		d.GenerationComplete()

		assert.Equal(t, "decoratable: Generating decorators\nWriting:\n✓ parsed\n✏ store/autogen_decorators.go\n\ndecoratable: Generation complete!\n", out.String())
	})
}

func TestFormatGoSource(t *testing.T) {
	formatted, err := FormatGoSource("x.go", "package x\nimport \"fmt\"\nfunc  F( ) {}\n")
	require.NoError(t, err)
	assert.Equal(t, "package x\n\nfunc F() {}\n", formatted)

	_, err = FormatGoSource("x.go", "package x\nfunc {")
	assert.Error(t, err)
	assert.Error(t, ValidateGoCode("package"))
}

func TestImportPaths(t *testing.T) {
	paths, err := ImportPaths("package x\n\nimport (\n\t\"context\"\n\tstr \"strings\"\n)\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"context", "strings"}, paths)

	paths, err = ImportPaths("package x\n")
	require.NoError(t, err)
	assert.Empty(t, paths)

	_, err = ImportPaths("func")
	assert.Error(t, err)
}
