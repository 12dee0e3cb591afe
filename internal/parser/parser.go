package parser

import (
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/toyz/decoratable/internal/annotations"
	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/models"
)

// Package is the parsed view of one Go package directory
type Package struct {
	Name       string
	Dir        string
	ImportPath string
	Files      []string // hand written files that were searched for markers
	Contracts  []*models.ContractDeclaration
}

// Parser implements the ContractParser interface
type Parser struct {
	fileSet  *token.FileSet
	markers  *annotations.ParticipleParser
	resolver EmbedResolver
	logger   zerolog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithResolver sets the resolver used for interfaces embedded from other
// packages. Without one, such embeddings are reported as unsupported.
func WithResolver(resolver EmbedResolver) Option {
	return func(p *Parser) {
		p.resolver = resolver
	}
}

// WithLogger sets the debug logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a new Go contract parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		fileSet: token.NewFileSet(),
		markers: annotations.NewParticipleParser(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// sourceFile is a parsed file together with its import table
type sourceFile struct {
	path      string
	ast       *ast.File
	imports   []models.Import
	generated bool
}

func newSourceFile(path string, file *ast.File) *sourceFile {
	sf := &sourceFile{path: path, ast: file, generated: ast.IsGenerated(file)}
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := models.Import{Path: importPath}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}
		sf.imports = append(sf.imports, imp)
	}
	return sf
}

// ParseSource parses a single file given as a string
func (p *Parser) ParseSource(filename, source string) (*Package, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(filename, err)
	}
	return p.parsePackage(filepath.Dir(filename), "", []*sourceFile{newSourceFile(filename, file)})
}

// ParseDirectory parses the non-test Go files of dir that match the current
// build context. Generated files are indexed for embedded interfaces but
// never searched for markers.
func (p *Parser) ParseDirectory(dir, importPath string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	var (
		files       []*sourceFile
		packageName string
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if match, err := build.Default.MatchFile(dir, name); err != nil || !match {
			continue
		}

		filePath := filepath.Join(dir, name)
		file, err := parser.ParseFile(p.fileSet, filePath, nil, parser.ParseComments)
		if err != nil {
			return nil, errors.WrapParseError(filePath, err)
		}

		if packageName == "" {
			packageName = file.Name.Name
		} else if file.Name.Name != packageName {
			return nil, fmt.Errorf("multiple packages found in directory %s: %s and %s", dir, packageName, file.Name.Name)
		}
		files = append(files, newSourceFile(filePath, file))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files found in directory %s", dir)
	}

	return p.parsePackage(dir, importPath, files)
}

func (p *Parser) parsePackage(dir, importPath string, files []*sourceFile) (*Package, error) {
	pkg := &Package{
		Name:       files[0].ast.Name.Name,
		Dir:        dir,
		ImportPath: importPath,
	}
	info := models.PackageInfo{Name: pkg.Name, ImportPath: importPath, Dir: dir}
	index := indexTypes(files)

	var problems *errors.MultipleErrors
	for _, file := range files {
		if file.generated {
			continue
		}
		pkg.Files = append(pkg.Files, file.path)

		contracts, err := p.extractContracts(file, index, info)
		if err != nil {
			errors.Collect(&problems, err)
			continue
		}
		pkg.Contracts = append(pkg.Contracts, contracts...)
	}

	if err := problems.ErrOrNil(); err != nil {
		return nil, err
	}
	return pkg, nil
}

// typeEntry is a package level type declaration
type typeEntry struct {
	spec *ast.TypeSpec
	file *sourceFile
}

func indexTypes(files []*sourceFile) map[string]typeEntry {
	index := make(map[string]typeEntry)
	for _, file := range files {
		for _, decl := range file.ast.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					index[ts.Name.Name] = typeEntry{spec: ts, file: file}
				}
			}
		}
	}
	return index
}

// extractContracts finds every marked declaration of a file
func (p *Parser) extractContracts(file *sourceFile, index map[string]typeEntry, info models.PackageInfo) ([]*models.ContractDeclaration, error) {
	var contracts []*models.ContractDeclaration

	for _, decl := range file.ast.Decls {
		switch node := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range node.Specs {
				doc := specDoc(node, spec)
				marker, err := p.findMarker(doc)
				if err != nil {
					return nil, err
				}
				if marker == nil {
					continue
				}

				switch s := spec.(type) {
				case *ast.TypeSpec:
					contracts = append(contracts, p.contract(file, s, index, info))
				case *ast.ValueSpec:
					contracts = append(contracts, &models.ContractDeclaration{
						Name:       s.Names[0].Name,
						Kind:       models.KindVariable,
						Visibility: visibilityOf(s.Names[0].Name),
						Location:   p.location(s.Pos()),
						Package:    info,
					})
				}
			}
		case *ast.FuncDecl:
			marker, err := p.findMarker(node.Doc)
			if err != nil {
				return nil, err
			}
			if marker != nil {
				contracts = append(contracts, &models.ContractDeclaration{
					Name:       node.Name.Name,
					Kind:       models.KindFunction,
					Visibility: visibilityOf(node.Name.Name),
					Location:   p.location(node.Pos()),
					Package:    info,
				})
			}
		}
	}

	for _, contract := range contracts {
		p.logger.Debug().
			Str("file", file.path).
			Str("declaration", contract.Name).
			Str("kind", contract.Kind.String()).
			Msg("found annotated declaration")
	}
	return contracts, nil
}

// specDoc returns the doc comment of a spec. An ungrouped declaration keeps
// its comment on the GenDecl.
func specDoc(decl *ast.GenDecl, spec ast.Spec) *ast.CommentGroup {
	var doc *ast.CommentGroup
	switch s := spec.(type) {
	case *ast.TypeSpec:
		doc = s.Doc
	case *ast.ValueSpec:
		doc = s.Doc
	}
	if doc == nil && !decl.Lparen.IsValid() {
		doc = decl.Doc
	}
	return doc
}

func (p *Parser) findMarker(doc *ast.CommentGroup) (*annotations.Marker, error) {
	if doc == nil {
		return nil, nil
	}
	lines := make([]string, len(doc.List))
	for i, comment := range doc.List {
		lines[i] = comment.Text
	}
	return p.markers.FindMarker(lines, p.location(doc.Pos()))
}

func (p *Parser) contract(file *sourceFile, spec *ast.TypeSpec, index map[string]typeEntry, info models.PackageInfo) *models.ContractDeclaration {
	name := spec.Name.Name
	decl := &models.ContractDeclaration{
		Name:       name,
		Visibility: visibilityOf(name),
		Location:   p.location(spec.Name.Pos()),
		Package:    info,
		Imports:    file.imports,
	}

	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			for _, ident := range field.Names {
				decl.TypeParameters = append(decl.TypeParameters, ident.Name)
			}
		}
	}

	iface, ok := spec.Type.(*ast.InterfaceType)
	if !ok {
		decl.Kind = kindOf(spec)
		return decl
	}

	decl.Kind = models.KindInterface
	f := newFlattener(p, index, info, file)
	f.seen[name] = true
	f.collect(iface, file)
	decl.Members = f.members
	decl.Imports = f.imports
	return decl
}

func kindOf(spec *ast.TypeSpec) models.DeclarationKind {
	if spec.Assign.IsValid() {
		return models.KindAlias
	}
	switch spec.Type.(type) {
	case *ast.StructType:
		return models.KindStruct
	case *ast.FuncType:
		return models.KindFunction
	default:
		return models.KindUnknown
	}
}

// method converts an interface method into a requirement. Go parameters
// have no external labels, so every parameter is positional.
func (p *Parser) method(name string, fn *ast.FuncType, pos token.Pos) models.MethodRequirement {
	method := models.MethodRequirement{
		Name:     name,
		Location: p.location(pos),
	}

	if fn.Params != nil {
		for _, field := range fn.Params.List {
			typ := field.Type
			variadic := false
			if ellipsis, ok := typ.(*ast.Ellipsis); ok {
				variadic = true
				typ = ellipsis.Elt
			}
			text := types.ExprString(typ)

			if len(field.Names) == 0 {
				method.Parameters = append(method.Parameters, models.Parameter{
					Label:    models.Wildcard,
					Type:     text,
					Variadic: variadic,
				})
				continue
			}
			for _, ident := range field.Names {
				paramName := ident.Name
				if paramName == models.Wildcard {
					paramName = ""
				}
				method.Parameters = append(method.Parameters, models.Parameter{
					Label:    models.Wildcard,
					Name:     paramName,
					Type:     text,
					Variadic: variadic,
				})
			}
		}
	}

	method.Returns = results(fn.Results)
	return method
}

// results renders a result list without names. Names are dropped because the
// wrapper only passes the values through and they could shadow its receiver.
func results(fields *ast.FieldList) string {
	if fields == nil {
		return ""
	}

	var list []string
	for _, field := range fields.List {
		text := types.ExprString(field.Type)
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			list = append(list, text)
		}
	}

	switch len(list) {
	case 0:
		return ""
	case 1:
		return list[0]
	default:
		return "(" + strings.Join(list, ", ") + ")"
	}
}

func (p *Parser) location(pos token.Pos) models.SourceLocation {
	position := p.fileSet.Position(pos)
	return models.SourceLocation{File: position.Filename, Line: position.Line, Column: position.Column}
}

// visibilityOf maps Go's export rule onto access levels
func visibilityOf(name string) models.Visibility {
	if ast.IsExported(name) {
		return models.VisibilityPublic
	}
	return models.VisibilityDefault
}

// packageNameGuess returns the name an unaliased import most likely binds
func packageNameGuess(importPath string) string {
	base := path.Base(importPath)
	if len(base) > 1 && base[0] == 'v' && strings.Trim(base[1:], "0123456789") == "" {
		base = path.Base(path.Dir(importPath))
	}
	if i := strings.Index(base, ".v"); i > 0 {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	return strings.ReplaceAll(base, "-", "_")
}
