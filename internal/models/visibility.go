package models

import "fmt"

// Visibility is the declared access level of a contract or generated member
type Visibility int

const (
	VisibilityDefault Visibility = iota // module internal, no modifier written
	VisibilityFilePrivate
	VisibilityPrivate
	VisibilityPublic
	VisibilityOpen
	VisibilityInternal // written out as internal
	VisibilityPackage
)

// String returns the keyword for the visibility; the default level has none
func (v Visibility) String() string {
	switch v {
	case VisibilityFilePrivate:
		return "fileprivate"
	case VisibilityPrivate:
		return "private"
	case VisibilityPublic:
		return "public"
	case VisibilityOpen:
		return "open"
	case VisibilityInternal:
		return "internal"
	case VisibilityPackage:
		return "package"
	default:
		return ""
	}
}

// Name returns a descriptive name, including one for the default level
func (v Visibility) Name() string {
	if v == VisibilityDefault {
		return "internal"
	}
	return v.String()
}

// IsExported reports whether code outside the defining module can see it
func (v Visibility) IsExported() bool {
	return v == VisibilityPublic || v == VisibilityOpen
}

// ParseVisibility converts an access modifier keyword. The empty string maps
// to the default level.
func ParseVisibility(keyword string) (Visibility, error) {
	switch keyword {
	case "":
		return VisibilityDefault, nil
	case "internal":
		return VisibilityInternal, nil
	case "package":
		return VisibilityPackage, nil
	case "fileprivate":
		return VisibilityFilePrivate, nil
	case "private":
		return VisibilityPrivate, nil
	case "public":
		return VisibilityPublic, nil
	case "open":
		return VisibilityOpen, nil
	default:
		return VisibilityDefault, fmt.Errorf("unknown access modifier: %s", keyword)
	}
}

// AccessResolution holds the visibilities of the generated wrapper
type AccessResolution struct {
	Type        Visibility
	Initializer Visibility
	Members     Visibility
}
