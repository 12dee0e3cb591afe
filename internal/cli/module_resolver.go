package cli

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/utils"
)

// ModuleResolver maps package directories to import paths using the go.mod
// that owns them. Parsed modules are cached by go.mod path.
type ModuleResolver struct {
	customModule string
	modules      *xsync.Map[string, *utils.GoModule]
}

// NewModuleResolver creates a new module resolver. A non-empty customModule
// replaces the module path declared in go.mod.
func NewModuleResolver(customModule string) *ModuleResolver {
	return &ModuleResolver{
		customModule: customModule,
		modules:      xsync.NewMap[string, *utils.GoModule](),
	}
}

// Module returns the module owning dir
func (r *ModuleResolver) Module(dir string) (*utils.GoModule, error) {
	goModPath, err := utils.FindGoMod(dir)
	if err != nil {
		return nil, errors.WrapModuleError(dir, err)
	}

	if module, ok := r.modules.Load(goModPath); ok {
		return module, nil
	}

	module, err := utils.ParseGoMod(goModPath)
	if err != nil {
		return nil, errors.WrapModuleError(dir, err)
	}
	if r.customModule != "" {
		module.Path = r.customModule
	}

	actual, _ := r.modules.LoadOrStore(goModPath, module)
	return actual, nil
}

// ImportPath returns the import path of the package in dir. Without a go.mod
// the custom module, when set, is joined with the path relative to the
// working directory.
func (r *ModuleResolver) ImportPath(dir string) (string, error) {
	module, err := r.Module(dir)
	if err == nil {
		return module.ImportPath(dir)
	}
	if r.customModule == "" {
		return "", err
	}

	cwd, cwdErr := os.Getwd()
	if cwdErr != nil {
		return r.customModule, nil
	}
	rel, relErr := filepath.Rel(cwd, dir)
	if relErr != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return r.customModule, nil
	}
	return path.Join(r.customModule, filepath.ToSlash(rel)), nil
}
