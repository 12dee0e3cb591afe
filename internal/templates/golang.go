package templates

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/decoratable/internal/generator"
	"github.com/toyz/decoratable/internal/models"
	"github.com/toyz/decoratable/internal/utils"
)

// GoEmitter renders decorators as Go structs forwarding every method to a
// wrapped interface value
type GoEmitter struct {
	header bool
}

// NewGoEmitter creates a Go emitter. header controls the generated file banner.
func NewGoEmitter(header bool) *GoEmitter {
	return &GoEmitter{header: header}
}

// Dialect implements generator.Emitter
func (e *GoEmitter) Dialect() string {
	return "go"
}

// Rules implements generator.Emitter
func (e *GoEmitter) Rules() generator.Rules {
	return generator.Rules{
		ContractTerm:      "interface",
		ForwardsVariadics: true,
	}
}

type goDecoratorData struct {
	TypeName     string
	ContractName string
	FieldName    string
	Constructor  string
	Receiver     string
	Methods      []models.ForwardingMethod
}

// EmitDeclaration implements generator.Emitter
func (e *GoEmitter) EmitDeclaration(plan *models.DecoratorPlan) (string, error) {
	for _, method := range plan.Methods {
		if method.Name == plan.FieldName {
			return "", fmt.Errorf("method %s collides with the %s field of %s", method.Name, plan.FieldName, plan.TypeName)
		}
	}

	data := goDecoratorData{
		TypeName:     plan.TypeName,
		ContractName: plan.ContractName,
		FieldName:    plan.FieldName,
		Constructor:  constructorName(plan.TypeName, plan.Access.Initializer),
		Receiver:     receiverName(plan.Methods),
		Methods:      plan.Methods,
	}
	return executeTemplate(GoDecoratorTemplate, data)
}

type goFileData struct {
	Header       bool
	SourceFiles  []string
	PackageName  string
	Imports      string
	Declarations []string
}

// EmitFile implements generator.Emitter. The result is run through the
// goimports formatter, which drops the imports no wrapper refers to. When
// some were dropped the file is rendered again with the survivors only, so
// a lone import is written without parentheses.
func (e *GoEmitter) EmitFile(unit *models.SourceUnit, decls []*models.GeneratedDeclaration) (string, error) {
	if unit.PackageName == "" {
		return "", fmt.Errorf("package name is required for %s", unit.OutputPath)
	}

	imports := NewImportManager()
	if err := imports.AddImports(unit.Imports...); err != nil {
		return "", err
	}

	content, err := e.renderFile(unit, decls, imports)
	if err != nil {
		return "", err
	}

	used, err := utils.ImportPaths(content)
	if err != nil || len(used) >= len(imports.Imports()) {
		return content, err
	}

	kept := NewImportManager()
	for _, path := range used {
		imp, ok := imports.byPath[path]
		if !ok {
			return content, nil
		}
		if err := kept.AddImport(imp); err != nil {
			return "", err
		}
	}
	return e.renderFile(unit, decls, kept)
}

func (e *GoEmitter) renderFile(unit *models.SourceUnit, decls []*models.GeneratedDeclaration, imports *ImportManager) (string, error) {
	data := goFileData{
		Header:       e.header,
		SourceFiles:  baseNames(unit.SourceFiles),
		PackageName:  unit.PackageName,
		Declarations: declarationTexts(decls),
	}
	if !imports.isEmpty() {
		data.Imports = imports.GenerateImports()
	}

	content, err := executeTemplate(GoFileTemplate, data)
	if err != nil {
		return "", err
	}

	return utils.FormatGoSource(unit.OutputPath, content)
}

// constructorName returns NewFooDecorator for exported wrappers and
// newFooDecorator for package-private ones
func constructorName(typeName string, access models.Visibility) string {
	if access.IsExported() {
		return "New" + upperFirst(typeName)
	}
	return "new" + upperFirst(typeName)
}

// receiverName picks a receiver that no parameter shadows
func receiverName(methods []models.ForwardingMethod) string {
	taken := make(map[string]bool)
	for _, method := range methods {
		for _, param := range method.Parameters {
			taken[param.Name] = true
		}
	}
	for _, candidate := range []string{"d", "dec", "decorator"} {
		if !taken[candidate] {
			return candidate
		}
	}
	name := "d"
	for taken[name] {
		name += "_"
	}
	return name
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
