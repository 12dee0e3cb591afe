package utils

import (
	"fmt"
	"go/parser"
	"go/token"
	"strconv"

	"golang.org/x/tools/imports"
)

// FormatGoSource formats generated Go source like goimports does: imports
// that the file does not use are removed and the rest are grouped and sorted.
// filename decides which package the file belongs to; it does not need to exist.
func FormatGoSource(filename string, source string) (string, error) {
	opts := &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: false,
	}

	formatted, err := imports.Process(filename, []byte(source), opts)
	if err != nil {
		// Report the syntax error rather than the formatter's
		if parseErr := ValidateGoCode(source); parseErr != nil {
			return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
		}
		return source, err
	}
	return string(formatted), nil
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}

// ImportPaths returns the import paths declared by Go source, in order
func ImportPaths(source string) ([]string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", source, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(file.Imports))
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
