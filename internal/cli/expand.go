package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/models"
	"github.com/toyz/decoratable/internal/parser"
)

// ExpandFile returns the code generated for the annotated declarations of a
// single Go or Swift file without writing anything. A Go file is parsed
// together with its package so that embedded interfaces resolve. The result
// is empty when the file declares nothing to decorate.
func (g *Generator) ExpandFile(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", errors.WrapWithOperation("resolve", "path "+path, err)
	}

	var file *models.GeneratedFile
	switch filepath.Ext(absPath) {
	case ".go":
		file, err = g.expandGoFile(absPath)
	case ".swift":
		result := g.expandSwiftFile(absPath)
		file, err = result.file, result.err
	default:
		return "", errors.Newf(errors.FileSystemErrorCode, "%s is neither a Go nor a Swift file", path)
	}
	if err != nil || file == nil {
		return "", err
	}
	return file.Content, nil
}

func (g *Generator) expandGoFile(path string) (*models.GeneratedFile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapFileSystemError("stat", path, err)
	}

	dir := filepath.Dir(path)
	importPath, _ := g.modules.ImportPath(dir)

	opts := []parser.Option{parser.WithLogger(g.logger)}
	if loader := g.loaderFor(dir); loader != nil {
		opts = append(opts, parser.WithResolver(loader))
	}

	pkg, err := parser.NewParser(opts...).ParseDirectory(dir, importPath)
	if err != nil {
		return nil, err
	}

	var contracts []*models.ContractDeclaration
	for _, contract := range pkg.Contracts {
		if contract.Location.File == path {
			contracts = append(contracts, contract)
		}
	}
	if len(contracts) == 0 {
		return nil, nil
	}
	pkg.Contracts = contracts

	return g.goGen.GenerateFile(pkg.Unit(g.config.Output))
}
