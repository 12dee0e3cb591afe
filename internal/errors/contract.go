package errors

import (
	"fmt"
	"strings"
)

// NotAnInterfaceError is returned when the marker is attached to a
// declaration that is not an interface or protocol
type NotAnInterfaceError struct {
	*BaseError
	Name string // declaration name
	Kind string // what was found instead
}

// NewNotAnInterfaceError creates an error for a misplaced marker.
// term is the dialect's word for a contract ("protocol", "interface").
func NewNotAnInterfaceError(name, kind, term string, loc SourceLocation) *NotAnInterfaceError {
	base := New(NotAnInterfaceErrorCode, fmt.Sprintf("@Decoratable can only be applied to %s.", withArticle(term))).
		WithLocation(loc).
		WithContext("type_name", name).
		WithContext("declaration_kind", kind).
		WithSuggestions(
			fmt.Sprintf("Remove the marker from %s %s", kind, name),
			"Declare the operations to forward in an interface and annotate that instead",
		)
	return &NotAnInterfaceError{BaseError: base, Name: name, Kind: kind}
}

// InterfaceHasPropertyRequirementsError is returned when a contract declares
// property requirements. Rejection covers the whole contract.
type InterfaceHasPropertyRequirementsError struct {
	*BaseError
	Contract   string
	Properties []string
}

// NewInterfaceHasPropertyRequirementsError creates an error naming every offending member
func NewInterfaceHasPropertyRequirementsError(contract, term string, properties []string, loc SourceLocation) *InterfaceHasPropertyRequirementsError {
	base := New(PropertyRequirementErrorCode, fmt.Sprintf("@Decoratable can only be applied to %s without variable requirements.", withArticle(term))).
		WithLocation(loc).
		WithContext("type_name", contract).
		WithContext("properties", strings.Join(properties, ", ")).
		WithSuggestions(
			"Replace each property requirement with accessor methods",
			fmt.Sprintf("Move the properties to a separate %s that is not annotated", term),
		)
	return &InterfaceHasPropertyRequirementsError{BaseError: base, Contract: contract, Properties: properties}
}

// UnsupportedContractError is returned for contract shapes that cannot be
// forwarded: generics, associated types, static or initializer requirements
type UnsupportedContractError struct {
	*BaseError
	Contract string
	Member   string
	Reason   string
}

// NewUnsupportedContractError creates an error for a contract shape outside the generator's scope
func NewUnsupportedContractError(contract, member, reason string, loc SourceLocation) *UnsupportedContractError {
	message := fmt.Sprintf("@Decoratable cannot decorate %s: %s", contract, reason)
	if member != "" {
		message = fmt.Sprintf("@Decoratable cannot decorate %s: %s %s", contract, member, reason)
	}
	base := New(UnsupportedContractErrorCode, message).
		WithLocation(loc).
		WithContext("type_name", contract)
	if member != "" {
		base.WithContext("member", member)
	}
	return &UnsupportedContractError{BaseError: base, Contract: contract, Member: member, Reason: reason}
}

// SyntaxError is returned when a front end cannot parse its input
type SyntaxError struct {
	*BaseError
}

// NewSyntaxError creates a syntax error at loc
func NewSyntaxError(message string, loc SourceLocation) *SyntaxError {
	return &SyntaxError{BaseError: New(SyntaxErrorCode, message).WithLocation(loc)}
}

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *SyntaxError {
	return &SyntaxError{
		BaseError: Wrapf(SyntaxErrorCode, cause, "failed to parse %s", item),
	}
}

// GenerationError is returned when rendering or formatting output fails
type GenerationError struct {
	*BaseError
	GenerationType string // "swift", "go", "template"
	Target         string // declaration or file being generated
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(generationType, target string, cause error) *GenerationError {
	return &GenerationError{
		BaseError:      Wrapf(GenerationErrorCode, cause, "failed to generate %s", target),
		GenerationType: generationType,
		Target:         target,
	}
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *GenerationError {
	return &GenerationError{
		BaseError:      Wrapf(TemplateErrorCode, cause, "failed to %s template '%s'", operation, templateName),
		GenerationType: "template",
		Target:         templateName,
	}
}

func withArticle(noun string) string {
	if noun != "" && strings.ContainsRune("aeiou", rune(noun[0])) {
		return "an " + noun
	}
	return "a " + noun
}
