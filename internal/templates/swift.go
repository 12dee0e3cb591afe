package templates

import (
	"path/filepath"
	"strings"

	"github.com/toyz/decoratable/internal/generator"
	"github.com/toyz/decoratable/internal/models"
)

// SwiftEmitter renders decorators as Swift peer classes
type SwiftEmitter struct {
	header bool
}

// NewSwiftEmitter creates a Swift emitter. header controls the generated
// file banner.
func NewSwiftEmitter(header bool) *SwiftEmitter {
	return &SwiftEmitter{header: header}
}

// Dialect implements generator.Emitter
func (e *SwiftEmitter) Dialect() string {
	return "swift"
}

// Rules implements generator.Emitter. A Swift variadic parameter arrives as
// an array that cannot be splatted into another variadic call.
func (e *SwiftEmitter) Rules() generator.Rules {
	return generator.Rules{
		ContractTerm:      "protocol",
		ForwardsVariadics: false,
	}
}

type swiftDecoratorData struct {
	TypeName     string
	ContractName string
	FieldName    string
	MutableField bool
	TypeAccess   models.Visibility
	InitAccess   models.Visibility
	MemberAccess models.Visibility
	Methods      []models.ForwardingMethod
}

// EmitDeclaration implements generator.Emitter
func (e *SwiftEmitter) EmitDeclaration(plan *models.DecoratorPlan) (string, error) {
	data := swiftDecoratorData{
		TypeName:     plan.TypeName,
		ContractName: plan.ContractName,
		FieldName:    plan.FieldName,
		MutableField: plan.MutableField,
		TypeAccess:   plan.Access.Type,
		InitAccess:   plan.Access.Initializer,
		MemberAccess: plan.Access.Members,
		Methods:      plan.Methods,
	}
	return executeTemplate(SwiftDecoratorTemplate, data)
}

type swiftFileData struct {
	Header       bool
	SourceFiles  []string
	Imports      string
	Declarations []string
}

// EmitFile implements generator.Emitter
func (e *SwiftEmitter) EmitFile(unit *models.SourceUnit, decls []*models.GeneratedDeclaration) (string, error) {
	imports := NewImportManager()
	if err := imports.AddImports(unit.Imports...); err != nil {
		return "", err
	}

	data := swiftFileData{
		Header:       e.header,
		SourceFiles:  baseNames(unit.SourceFiles),
		Imports:      imports.GenerateSwiftImports(),
		Declarations: declarationTexts(decls),
	}
	return executeTemplate(SwiftFileTemplate, data)
}

// SwiftOutputPath returns the path of the file generated next to source,
// e.g. Shapes.swift -> Shapes+Decorator.swift for suffix "+Decorator"
func SwiftOutputPath(source, suffix string) string {
	ext := filepath.Ext(source)
	return strings.TrimSuffix(source, ext) + suffix + ext
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func declarationTexts(decls []*models.GeneratedDeclaration) []string {
	texts := make([]string, len(decls))
	for i, decl := range decls {
		texts[i] = decl.Text
	}
	return texts
}
