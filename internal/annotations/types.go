package annotations

import (
	"fmt"

	"github.com/toyz/decoratable/internal/models"
)

// SwiftAttribute is the attribute name that marks a Swift protocol
const SwiftAttribute = "Decoratable"

// GoMarkerPrefix starts every marker comment in Go source
const GoMarkerPrefix = "//decoratable:"

// MarkerVerb is the action requested by a marker comment
type MarkerVerb int

const (
	GenerateVerb MarkerVerb = iota
)

// String returns the string representation of the verb
func (v MarkerVerb) String() string {
	switch v {
	case GenerateVerb:
		return "generate"
	default:
		return "unknown"
	}
}

// ParseMarkerVerb converts string to MarkerVerb
func ParseMarkerVerb(s string) (MarkerVerb, error) {
	switch s {
	case "generate":
		return GenerateVerb, nil
	default:
		return 0, fmt.Errorf("unknown marker verb: %s", s)
	}
}

// Marker is a parsed marker comment
type Marker struct {
	Verb     MarkerVerb
	Location models.SourceLocation
	Raw      string
}

// IsSwiftAttribute reports whether an attribute name (without the @) is the
// decorator marker
func IsSwiftAttribute(name string) bool {
	return name == SwiftAttribute
}
