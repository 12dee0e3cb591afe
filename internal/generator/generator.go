package generator

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/models"
)

// Expand runs the full pipeline on one declaration: validate, extract,
// resolve access, emit. A contract without members yields (nil, nil).
func Expand(decl *models.ContractDeclaration, emitter Emitter) (*models.GeneratedDeclaration, error) {
	if emitter == nil {
		return nil, fmt.Errorf("emitter cannot be nil")
	}

	if err := Validate(decl, emitter.Rules()); err != nil {
		return nil, err
	}

	methods := Extract(decl)
	if len(methods) == 0 {
		return nil, nil
	}

	plan := BuildPlan(decl, methods, ResolveAccess(decl.Visibility))

	text, err := emitter.EmitDeclaration(plan)
	if err != nil {
		return nil, errors.WrapGenerateError(emitter.Dialect(), plan.TypeName, err)
	}

	return &models.GeneratedDeclaration{Plan: plan, Text: text}, nil
}

// Generator implements the CodeGenerator interface for one dialect
type Generator struct {
	emitter Emitter
	logger  zerolog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the debug logger
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a new code generator instance
func NewGenerator(emitter Emitter, opts ...Option) *Generator {
	g := &Generator{
		emitter: emitter,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dialect returns the dialect of the underlying emitter
func (g *Generator) Dialect() string {
	return g.emitter.Dialect()
}

// Expand expands a single declaration
func (g *Generator) Expand(decl *models.ContractDeclaration) (*models.GeneratedDeclaration, error) {
	generated, err := Expand(decl, g.emitter)
	if err != nil {
		return nil, err
	}

	if generated == nil {
		g.logger.Debug().
			Str("contract", decl.Name).
			Str("location", decl.Location.String()).
			Msg("contract has no members, nothing generated")
		return nil, nil
	}

	g.logger.Debug().
		Str("contract", decl.Name).
		Str("decorator", generated.Plan.TypeName).
		Int("methods", len(generated.Plan.Methods)).
		Msg("expanded contract")
	return generated, nil
}

// GenerateFile expands every contract of the unit and assembles the output
// file. Failures of individual contracts are collected so that one run
// reports all of them. It returns (nil, nil) when no contract produced code.
func (g *Generator) GenerateFile(unit *models.SourceUnit) (*models.GeneratedFile, error) {
	if unit == nil {
		return nil, fmt.Errorf("source unit cannot be nil")
	}

	var collected *errors.MultipleErrors
	decls := make([]*models.GeneratedDeclaration, 0, len(unit.Contracts))

	for _, contract := range unit.Contracts {
		generated, err := g.Expand(contract)
		if err != nil {
			errors.Collect(&collected, err)
			continue
		}
		if generated != nil {
			decls = append(decls, generated)
		}
	}

	if err := collected.ErrOrNil(); err != nil {
		return nil, err
	}

	if len(decls) == 0 {
		return nil, nil
	}

	content, err := g.emitter.EmitFile(unit, decls)
	if err != nil {
		return nil, errors.WrapGenerateError(g.emitter.Dialect(), unit.OutputPath, err)
	}

	names := make([]string, len(decls))
	for i, decl := range decls {
		names[i] = decl.Plan.TypeName
	}

	return &models.GeneratedFile{
		Path:         unit.OutputPath,
		PackageName:  unit.PackageName,
		Content:      content,
		Declarations: names,
	}, nil
}
