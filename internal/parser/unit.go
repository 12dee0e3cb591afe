package parser

import (
	"path/filepath"

	"github.com/toyz/decoratable/internal/models"
)

// Unit groups the package's contracts into one output file named outputName
// inside the package directory
func (p *Package) Unit(outputName string) *models.SourceUnit {
	unit := &models.SourceUnit{
		OutputPath:  filepath.Join(p.Dir, outputName),
		PackageName: p.Name,
		Contracts:   p.Contracts,
	}

	seenFiles := make(map[string]bool)
	seenImports := make(map[models.Import]bool)
	for _, contract := range p.Contracts {
		if file := contract.Location.File; file != "" && !seenFiles[file] {
			seenFiles[file] = true
			unit.SourceFiles = append(unit.SourceFiles, file)
		}
		for _, imp := range contract.Imports {
			if !seenImports[imp] {
				seenImports[imp] = true
				unit.Imports = append(unit.Imports, imp)
			}
		}
	}

	return unit
}
