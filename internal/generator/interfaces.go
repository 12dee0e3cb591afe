package generator

import "github.com/toyz/decoratable/internal/models"

// Emitter renders decorator plans in one target language
type Emitter interface {
	// Dialect names the target language ("go", "swift")
	Dialect() string
	// Rules returns the validation knobs of the target language
	Rules() Rules
	// EmitDeclaration renders a single wrapper declaration
	EmitDeclaration(plan *models.DecoratorPlan) (string, error)
	// EmitFile assembles rendered declarations into a complete output file
	EmitFile(unit *models.SourceUnit, decls []*models.GeneratedDeclaration) (string, error)
}

// CodeGenerator expands annotated contracts into decorator source
type CodeGenerator interface {
	Expand(decl *models.ContractDeclaration) (*models.GeneratedDeclaration, error)
	GenerateFile(unit *models.SourceUnit) (*models.GeneratedFile, error)
}
