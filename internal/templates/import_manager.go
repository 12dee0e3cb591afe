package templates

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/toyz/decoratable/internal/models"
)

// ImportManager collects the imports of generated files and deduplicates them
type ImportManager struct {
	byPath map[string]models.Import
	byName map[string]string // effective package name -> path
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		byPath: make(map[string]models.Import),
		byName: make(map[string]string),
	}
}

// AddImport registers an import. Blank imports are skipped because generated
// code never depends on their side effects. Two different paths claiming
// the same package name cannot share one file and are reported as an error.
func (im *ImportManager) AddImport(imp models.Import) error {
	if imp.Path == "" || imp.Name == "_" {
		return nil
	}

	if existing, ok := im.byPath[imp.Path]; ok {
		if existing.Name != imp.Name {
			return fmt.Errorf("import %q is named both %q and %q", imp.Path, displayName(existing), displayName(imp))
		}
		return nil
	}

	name := effectiveName(imp)
	if name != "." {
		if other, ok := im.byName[name]; ok && other != imp.Path {
			return fmt.Errorf("imports %q and %q both use the name %q", other, imp.Path, name)
		}
		im.byName[name] = imp.Path
	}

	im.byPath[imp.Path] = imp
	return nil
}

// AddImports registers several imports, stopping at the first conflict
func (im *ImportManager) AddImports(imports ...models.Import) error {
	for _, imp := range imports {
		if err := im.AddImport(imp); err != nil {
			return err
		}
	}
	return nil
}

// Imports returns the registered imports sorted by path
func (im *ImportManager) Imports() []models.Import {
	result := make([]models.Import, 0, len(im.byPath))
	for _, imp := range im.byPath {
		result = append(result, imp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

// GenerateImports generates a Go import section
func (im *ImportManager) GenerateImports() string {
	imports := im.Imports()
	if len(imports) == 0 {
		return ""
	}

	specs := make([]string, len(imports))
	for i, imp := range imports {
		if imp.Name != "" {
			specs[i] = fmt.Sprintf("%s %q", imp.Name, imp.Path)
		} else {
			specs[i] = fmt.Sprintf("%q", imp.Path)
		}
	}

	if len(specs) == 1 {
		return fmt.Sprintf("import %s\n", specs[0])
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, spec := range specs {
		result.WriteString("\t" + spec + "\n")
	}
	result.WriteString(")\n")

	return result.String()
}

// GenerateSwiftImports generates Swift import statements, one module per line
func (im *ImportManager) GenerateSwiftImports() string {
	var result strings.Builder
	for _, imp := range im.Imports() {
		result.WriteString("import " + imp.Path + "\n")
	}
	return result.String()
}

// isEmpty checks if there are any imports to generate
func (im *ImportManager) isEmpty() bool {
	return len(im.byPath) == 0
}

// effectiveName guesses the identifier an import binds. The last path element
// is only an approximation of the package clause; the formatter fixes up the
// rest once the file is complete.
func effectiveName(imp models.Import) string {
	if imp.Name != "" {
		return imp.Name
	}
	base := path.Base(imp.Path)
	if strings.HasPrefix(base, "v") && len(base) > 1 && strings.Trim(base[1:], "0123456789") == "" {
		base = path.Base(path.Dir(imp.Path))
	}
	return base
}

func displayName(imp models.Import) string {
	if imp.Name == "" {
		return effectiveName(imp)
	}
	return imp.Name
}
