// Package decoratable expands annotated Go interfaces and Swift protocols
// into forwarding decorators without going through the command line tool.
//
// A decorator holds a value implementing the contract and forwards every
// method to it. Wrappers embed (Go) or subclass (Swift) the generated type
// and override only the methods whose behavior they change:
//
//	//decoratable:generate
//	type Store interface {
//		Get(key string) ([]byte, error)
//	}
//
//	type loggingStore struct {
//		*StoreDecorator
//	}
//
//	func (s loggingStore) Get(key string) ([]byte, error) {
//		log.Printf("get %s", key)
//		return s.StoreDecorator.Get(key)
//	}
package decoratable

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/toyz/decoratable/internal/generator"
	"github.com/toyz/decoratable/internal/models"
	"github.com/toyz/decoratable/internal/parser"
	"github.com/toyz/decoratable/internal/swift"
	"github.com/toyz/decoratable/internal/templates"
)

// Dialect selects the language of the input and the generated code
type Dialect string

const (
	Go    Dialect = "go"
	Swift Dialect = "swift"
)

// DefaultGoOutput is the file name used for generated Go code
const DefaultGoOutput = "autogen_decorators.go"

// Contract is the parsed form of an annotated declaration
type Contract = models.ContractDeclaration

type options struct {
	header bool
	logger zerolog.Logger
}

// Option configures an expansion
type Option func(*options)

// WithHeader controls the "Code generated" banner of whole-file expansions
func WithHeader(header bool) Option {
	return func(o *options) {
		o.header = header
	}
}

// WithLogger sets the debug logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{header: true, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ExpandGo returns the generated file for the annotated interfaces of one Go
// source file. Interfaces embedded from other packages cannot be resolved
// from a single file and are reported as errors. The result is empty when
// nothing is annotated or every annotated interface is empty.
func ExpandGo(filename string, src []byte, opts ...Option) (string, error) {
	o := buildOptions(opts)

	pkg, err := parser.NewParser(parser.WithLogger(o.logger)).ParseSource(filename, string(src))
	if err != nil {
		return "", err
	}
	if len(pkg.Contracts) == 0 {
		return "", nil
	}

	gen := generator.NewGenerator(templates.NewGoEmitter(o.header), generator.WithLogger(o.logger))
	file, err := gen.GenerateFile(pkg.Unit(DefaultGoOutput))
	if err != nil || file == nil {
		return "", err
	}
	return file.Content, nil
}

// ExpandSwift returns the peer file for the @Decoratable protocols of one
// Swift source file
func ExpandSwift(filename string, src []byte, opts ...Option) (string, error) {
	o := buildOptions(opts)

	file, err := swift.NewParser(swift.WithLogger(o.logger)).ParseFile(filename, src)
	if err != nil {
		return "", err
	}
	if len(file.Contracts) == 0 {
		return "", nil
	}

	output := templates.SwiftOutputPath(filepath.Clean(filename), "+Decorator")
	gen := generator.NewGenerator(templates.NewSwiftEmitter(o.header), generator.WithLogger(o.logger))
	generated, err := gen.GenerateFile(file.Unit(output))
	if err != nil || generated == nil {
		return "", err
	}
	return generated.Content, nil
}

// Expand returns the decorator declaration for a single contract. An empty
// contract yields an empty string and no error.
func Expand(decl *Contract, dialect Dialect) (string, error) {
	emitter, err := emitterFor(dialect)
	if err != nil {
		return "", err
	}

	generated, err := generator.Expand(decl, emitter)
	if err != nil || generated == nil {
		return "", err
	}
	return generated.Text, nil
}

func emitterFor(dialect Dialect) (generator.Emitter, error) {
	switch dialect {
	case Go:
		return templates.NewGoEmitter(false), nil
	case Swift:
		return templates.NewSwiftEmitter(false), nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}
}
