package parser

import (
	"fmt"
	"go/types"
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"

	"github.com/toyz/decoratable/internal/models"
)

const loadMode = packages.NeedName | packages.NeedTypes

// PackageLoader implements EmbedResolver with type information from
// golang.org/x/tools/go/packages. Loaded packages are cached, so one loader
// can serve every package of a run, including concurrently.
type PackageLoader struct {
	dir    string
	cache  *xsync.Map[string, *packages.Package]
	logger zerolog.Logger
}

// NewPackageLoader creates a loader resolving import paths relative to dir
func NewPackageLoader(dir string, logger zerolog.Logger) *PackageLoader {
	return &PackageLoader{
		dir:    dir,
		cache:  xsync.NewMap[string, *packages.Package](),
		logger: logger,
	}
}

// ResolveInterface returns the methods of the interface importPath.name in
// source order. Type names in the signatures are qualified by package name
// unless they belong to fromPath, and every package they mention is
// returned as an import.
func (l *PackageLoader) ResolveInterface(importPath, name, fromPath string) ([]models.MethodRequirement, []models.Import, error) {
	pkg, err := l.load(importPath)
	if err != nil {
		return nil, nil, err
	}

	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil, nil, fmt.Errorf("%s.%s is not declared", importPath, name)
	}
	typeName, ok := obj.(*types.TypeName)
	if !ok {
		return nil, nil, fmt.Errorf("%s.%s is not a type", importPath, name)
	}
	if named, ok := typeName.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
		return nil, nil, fmt.Errorf("%s.%s is generic", importPath, name)
	}
	iface, ok := typeName.Type().Underlying().(*types.Interface)
	if !ok {
		return nil, nil, fmt.Errorf("%s.%s is not an interface", importPath, name)
	}
	if !iface.IsMethodSet() {
		return nil, nil, fmt.Errorf("%s.%s is a constraint interface", importPath, name)
	}

	q := newQualifier(fromPath)
	funcs := make([]*types.Func, 0, iface.NumMethods())
	for i := 0; i < iface.NumMethods(); i++ {
		funcs = append(funcs, iface.Method(i))
	}
	sort.SliceStable(funcs, func(i, j int) bool {
		return funcs[i].Pos() < funcs[j].Pos()
	})

	methods := make([]models.MethodRequirement, 0, len(funcs))
	for _, fn := range funcs {
		if !fn.Exported() && fn.Pkg() != nil && fn.Pkg().Path() != fromPath {
			return nil, nil, fmt.Errorf("%s.%s has unexported method %s", importPath, name, fn.Name())
		}
		methods = append(methods, l.method(pkg, fn, q))
	}

	l.logger.Debug().
		Str("interface", importPath+"."+name).
		Int("methods", len(methods)).
		Msg("resolved embedded interface")

	return methods, q.imports(), nil
}

func (l *PackageLoader) load(importPath string) (*packages.Package, error) {
	if pkg, ok := l.cache.Load(importPath); ok {
		return pkg, nil
	}

	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  l.dir,
	}
	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", importPath, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package for %s, got %d", importPath, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		messages := make([]string, len(pkg.Errors))
		for i, e := range pkg.Errors {
			messages[i] = e.Error()
		}
		return nil, fmt.Errorf("failed to load package %s: %s", importPath, strings.Join(messages, "; "))
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("no type information for package %s", importPath)
	}

	l.cache.Store(importPath, pkg)
	return pkg, nil
}

func (l *PackageLoader) method(pkg *packages.Package, fn *types.Func, q *qualifier) models.MethodRequirement {
	sig := fn.Type().(*types.Signature)
	method := models.MethodRequirement{Name: fn.Name()}

	if pkg.Fset != nil && fn.Pos().IsValid() {
		position := pkg.Fset.Position(fn.Pos())
		method.Location = models.SourceLocation{File: position.Filename, Line: position.Line, Column: position.Column}
	}

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		param := models.Parameter{Label: models.Wildcard, Name: v.Name()}
		if param.Name == models.Wildcard {
			param.Name = ""
		}

		typ := v.Type()
		if sig.Variadic() && i == params.Len()-1 {
			if slice, ok := typ.(*types.Slice); ok {
				param.Variadic = true
				typ = slice.Elem()
			}
		}
		param.Type = types.TypeString(typ, q.qualify)
		method.Parameters = append(method.Parameters, param)
	}

	results := sig.Results()
	list := make([]string, results.Len())
	for i := 0; i < results.Len(); i++ {
		list[i] = types.TypeString(results.At(i).Type(), q.qualify)
	}
	switch len(list) {
	case 0:
	case 1:
		method.Returns = list[0]
	default:
		method.Returns = "(" + strings.Join(list, ", ") + ")"
	}

	return method
}

// qualifier names packages the way the generated file imports them
type qualifier struct {
	fromPath string
	seen     map[string]models.Import
}

func newQualifier(fromPath string) *qualifier {
	return &qualifier{fromPath: fromPath, seen: make(map[string]models.Import)}
}

func (q *qualifier) qualify(pkg *types.Package) string {
	if pkg.Path() == q.fromPath {
		return ""
	}
	if _, ok := q.seen[pkg.Path()]; !ok {
		imp := models.Import{Path: pkg.Path()}
		if packageNameGuess(pkg.Path()) != pkg.Name() {
			imp.Name = pkg.Name()
		}
		q.seen[pkg.Path()] = imp
	}
	return pkg.Name()
}

func (q *qualifier) imports() []models.Import {
	imports := make([]models.Import, 0, len(q.seen))
	for _, imp := range q.seen {
		imports = append(imports, imp)
	}
	sort.Slice(imports, func(i, j int) bool {
		return imports[i].Path < imports[j].Path
	})
	return imports
}
