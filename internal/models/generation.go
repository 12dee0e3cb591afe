package models

// DecoratorFieldName is the name of the field holding the wrapped instance
const DecoratorFieldName = "decoree"

// DecoratorSuffix is appended to the contract name to name the wrapper
const DecoratorSuffix = "Decorator"

// Argument is one argument of a forwarding call
type Argument struct {
	Label    string // empty for positional arguments
	Value    string // the bound parameter name
	Inout    bool
	Variadic bool
}

// ForwardingMethod is a wrapper method delegating to the decoree
type ForwardingMethod struct {
	Name          string
	Parameters    []Parameter // bindings are always non-empty here
	Returns       string
	Async         bool
	Throws        string
	GenericClause string
	WhereClause   string
	Attributes    []string
	Arguments     []Argument
}

// HasReturn reports whether the forwarded call produces a value
func (f ForwardingMethod) HasReturn() bool {
	return f.Returns != ""
}

// DecoratorPlan is the dialect neutral description of a wrapper type
type DecoratorPlan struct {
	TypeName     string
	ContractName string
	FieldName    string
	MutableField bool // some requirement needs exclusive access to the decoree
	Access       AccessResolution
	Methods      []ForwardingMethod
	Contract     *ContractDeclaration
}

// GeneratedDeclaration is the result of a successful expansion
type GeneratedDeclaration struct {
	Plan *DecoratorPlan
	Text string
}

// GeneratedFile is a file written by the CLI
type GeneratedFile struct {
	Path         string
	PackageName  string
	Content      string
	Declarations []string // names of the generated wrapper types, in order
}

// SourceUnit groups the contracts whose wrappers land in one output file.
// For Go this is a package directory, for Swift a single source file.
type SourceUnit struct {
	OutputPath  string
	PackageName string // Go only
	SourceFiles []string
	Contracts   []*ContractDeclaration
	Imports     []Import // union of the imports of SourceFiles, Go only
}
