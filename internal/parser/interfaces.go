package parser

import "github.com/toyz/decoratable/internal/models"

// ContractParser extracts annotated interface declarations from Go packages
type ContractParser interface {
	ParseDirectory(dir, importPath string) (*Package, error)
	ParseSource(filename, source string) (*Package, error)
}

// EmbedResolver looks up interfaces declared in other packages. It returns
// the method set of the interface and the imports its signatures need.
type EmbedResolver interface {
	ResolveInterface(importPath, name, fromPath string) ([]models.MethodRequirement, []models.Import, error)
}
