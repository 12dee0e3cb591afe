package models

import "fmt"

// DeclarationKind identifies what sort of declaration carried the marker
type DeclarationKind int

const (
	KindUnknown DeclarationKind = iota
	KindInterface
	KindStruct
	KindClass
	KindEnum
	KindActor
	KindExtension
	KindAlias
	KindFunction
	KindVariable
)

// String returns the source-level spelling of the kind
func (k DeclarationKind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	case KindActor:
		return "actor"
	case KindExtension:
		return "extension"
	case KindAlias:
		return "alias"
	case KindFunction:
		return "function"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// SourceLocation points at a declaration in its source file
type SourceLocation struct {
	File   string // file path
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns file:line:column, omitting the parts that are unknown
func (l SourceLocation) String() string {
	switch {
	case l.File == "":
		return "unknown location"
	case l.Line == 0:
		return l.File
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
}

// PackageInfo describes the Go package declaring a contract
type PackageInfo struct {
	Name       string // package clause name
	ImportPath string // full import path, empty when unknown
	Dir        string // directory on disk
}

// Import is a single import spec of the file declaring a contract
type Import struct {
	Name string // explicit alias, empty when none
	Path string // unquoted import path
}

// ContractDeclaration is the parsed shape of an annotated declaration.
// It is built by a front end and consumed by a single expansion.
type ContractDeclaration struct {
	Name           string
	Kind           DeclarationKind
	Visibility     Visibility
	Members        []MemberRequirement
	TypeParameters []string
	Location       SourceLocation

	// Go only
	Package PackageInfo
	Imports []Import
}

// IsInterface reports whether the declaration is interface-like
func (c *ContractDeclaration) IsInterface() bool {
	return c.Kind == KindInterface
}

// IsGeneric reports whether the contract declares type parameters
func (c *ContractDeclaration) IsGeneric() bool {
	return len(c.TypeParameters) > 0
}

// MemberKind discriminates MemberRequirement
type MemberKind int

const (
	MemberMethod MemberKind = iota
	MemberProperty
	MemberSubscript
	MemberInitializer
	MemberAssociatedType
	MemberTypeAlias
	MemberStaticMethod
	MemberTypeElement
	MemberUnresolvedEmbed
)

// String returns a human readable description of the member kind
func (k MemberKind) String() string {
	switch k {
	case MemberMethod:
		return "method"
	case MemberProperty:
		return "property"
	case MemberSubscript:
		return "subscript"
	case MemberInitializer:
		return "initializer"
	case MemberAssociatedType:
		return "associated type"
	case MemberTypeAlias:
		return "type alias"
	case MemberStaticMethod:
		return "static method"
	case MemberTypeElement:
		return "type set element"
	case MemberUnresolvedEmbed:
		return "embedded interface"
	default:
		return "member"
	}
}

// IsPropertyLike reports whether the member forwards state rather than behavior
func (k MemberKind) IsPropertyLike() bool {
	return k == MemberProperty || k == MemberSubscript
}

// MemberRequirement is one entry of a contract's member list.
// Method is set only when Kind is MemberMethod.
type MemberRequirement struct {
	Kind     MemberKind
	Name     string
	Method   *MethodRequirement
	Detail   string // free text used in diagnostics for unsupported members
	Location SourceLocation
}

// NewMethodMember wraps a method requirement as a member
func NewMethodMember(m MethodRequirement) MemberRequirement {
	return MemberRequirement{
		Kind:     MemberMethod,
		Name:     m.Name,
		Method:   &m,
		Location: m.Location,
	}
}

// MethodRequirement is a single operation of the contract
type MethodRequirement struct {
	Name       string
	Parameters []Parameter
	Returns    string // opaque return type text, empty when nothing is returned
	Mutating   bool
	Async      bool
	Throws     string // "throws", "rethrows" or empty

	GenericClause string // verbatim, including angle brackets
	WhereClause   string // verbatim, including the where keyword

	Attributes []string // verbatim, e.g. "@discardableResult"

	Location SourceLocation
}

// HasReturn reports whether the method produces a value
func (m MethodRequirement) HasReturn() bool {
	return m.Returns != ""
}

// Wildcard is the label meaning "no external label"
const Wildcard = "_"

// Parameter of a method requirement. Type is passed through verbatim.
type Parameter struct {
	Label    string // external label, Wildcard for none
	Name     string // internal binding, empty when the source omitted it
	Type     string
	Inout    bool
	Variadic bool
}

// IsPositional reports whether callers pass the argument without a label
func (p Parameter) IsPositional() bool {
	return p.Label == Wildcard || p.Label == ""
}

// Binding returns the name the parameter is bound to inside the method body
func (p Parameter) Binding() string {
	if p.Name != "" {
		return p.Name
	}
	if p.IsPositional() {
		return ""
	}
	return p.Label
}
