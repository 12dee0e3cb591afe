package parser

import (
	"fmt"
	"go/ast"
	"go/types"

	"github.com/toyz/decoratable/internal/models"
)

// flattener collects the method set of an interface, expanding embedded
// interfaces in embedding order. The first method with a given name wins;
// Go only allows duplicates when their signatures are identical.
type flattener struct {
	parser  *Parser
	index   map[string]typeEntry
	info    models.PackageInfo
	seen    map[string]bool
	names   map[string]bool
	members []models.MemberRequirement
	imports []models.Import
}

func newFlattener(p *Parser, index map[string]typeEntry, info models.PackageInfo, file *sourceFile) *flattener {
	f := &flattener{
		parser: p,
		index:  index,
		info:   info,
		seen:   make(map[string]bool),
		names:  make(map[string]bool),
	}
	f.addImports(file.imports)
	return f
}

func (f *flattener) collect(iface *ast.InterfaceType, file *sourceFile) {
	if iface.Methods == nil {
		return
	}

	for _, field := range iface.Methods.List {
		if len(field.Names) > 0 {
			fn, ok := field.Type.(*ast.FuncType)
			if !ok {
				continue
			}
			for _, ident := range field.Names {
				f.addMethod(f.parser.method(ident.Name, fn, ident.Pos()))
			}
			continue
		}
		f.embed(field.Type, file)
	}
}

func (f *flattener) embed(expr ast.Expr, file *sourceFile) {
	switch t := expr.(type) {
	case *ast.ParenExpr:
		f.embed(t.X, file)

	case *ast.Ident:
		f.embedLocal(t, file)

	case *ast.SelectorExpr:
		f.embedForeign(t, file)

	case *ast.IndexExpr, *ast.IndexListExpr:
		f.unresolved(expr, "is an instantiated generic interface; embedding one is not supported")

	default:
		// unions, ~T and composite types only constrain type sets
		f.typeElement(expr)
	}
}

func (f *flattener) embedLocal(ident *ast.Ident, file *sourceFile) {
	entry, declared := f.index[ident.Name]
	if !declared {
		switch {
		case ident.Name == errorInterfaceName:
			f.addMethod(models.MethodRequirement{
				Name:     errorMethodName,
				Returns:  errorMethodReturns,
				Location: f.parser.location(ident.Pos()),
			})
		case ident.Name == "any":
			// empty method set
		case typeSetIdents[ident.Name]:
			f.typeElement(ident)
		default:
			f.unresolved(ident, "is not declared in this package")
		}
		return
	}

	embedded, ok := entry.spec.Type.(*ast.InterfaceType)
	if !ok {
		f.typeElement(ident)
		return
	}
	if entry.spec.TypeParams != nil {
		f.unresolved(ident, "is a generic interface; embedding one is not supported")
		return
	}
	if f.seen[ident.Name] {
		return
	}
	f.seen[ident.Name] = true

	if entry.file != file {
		f.addImports(entry.file.imports)
	}
	f.collect(embedded, entry.file)
}

func (f *flattener) embedForeign(sel *ast.SelectorExpr, file *sourceFile) {
	pkgIdent, ok := sel.X.(*ast.Ident)
	if !ok {
		f.unresolved(sel, "cannot be resolved")
		return
	}

	imp, found := lookupImport(file.imports, pkgIdent.Name)
	if !found {
		f.unresolved(sel, fmt.Sprintf("refers to package %s, which this file does not import", pkgIdent.Name))
		return
	}

	if f.parser.resolver == nil {
		f.unresolved(sel, "is declared in another package and no package loader is configured")
		return
	}

	methods, imports, err := f.parser.resolver.ResolveInterface(imp.Path, sel.Sel.Name, f.info.ImportPath)
	if err != nil {
		f.unresolved(sel, fmt.Sprintf("could not be loaded: %v", err))
		return
	}

	f.addImports(imports)
	for _, method := range methods {
		f.addMethod(method)
	}
}

func (f *flattener) addMethod(method models.MethodRequirement) {
	if f.names[method.Name] {
		return
	}
	f.names[method.Name] = true
	f.members = append(f.members, models.NewMethodMember(method))
}

func (f *flattener) addImports(imports []models.Import) {
	for _, imp := range imports {
		duplicate := false
		for _, existing := range f.imports {
			if existing == imp {
				duplicate = true
				break
			}
		}
		if !duplicate {
			f.imports = append(f.imports, imp)
		}
	}
}

func (f *flattener) typeElement(expr ast.Expr) {
	f.members = append(f.members, models.MemberRequirement{
		Kind:     models.MemberTypeElement,
		Name:     types.ExprString(expr),
		Location: f.parser.location(expr.Pos()),
	})
}

func (f *flattener) unresolved(expr ast.Expr, detail string) {
	f.members = append(f.members, models.MemberRequirement{
		Kind:     models.MemberUnresolvedEmbed,
		Name:     types.ExprString(expr),
		Detail:   detail,
		Location: f.parser.location(expr.Pos()),
	})
}

// lookupImport finds the import a qualified identifier refers to
func lookupImport(imports []models.Import, name string) (models.Import, bool) {
	for _, imp := range imports {
		if imp.Name == name {
			return imp, true
		}
	}
	for _, imp := range imports {
		if imp.Name == "" && packageNameGuess(imp.Path) == name {
			return imp, true
		}
	}
	return models.Import{}, false
}
