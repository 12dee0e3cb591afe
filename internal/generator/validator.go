package generator

import (
	"fmt"

	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/models"
)

// Rules carries the dialect specific knobs of validation
type Rules struct {
	// ContractTerm is the dialect's word for a contract, used in diagnostics
	ContractTerm string
	// ForwardsVariadics is false when the target language cannot pass a
	// received variadic list on to another variadic call
	ForwardsVariadics bool
}

// Validate checks that decl can be decorated. Rejection is all or nothing:
// a single offending member fails the whole contract.
func Validate(decl *models.ContractDeclaration, rules Rules) error {
	if decl == nil {
		return fmt.Errorf("contract declaration cannot be nil")
	}

	if !decl.IsInterface() {
		return errors.NewNotAnInterfaceError(decl.Name, decl.Kind.String(), rules.ContractTerm, decl.Location)
	}

	var properties []string
	for _, member := range decl.Members {
		if member.Kind.IsPropertyLike() {
			properties = append(properties, member.Name)
		}
	}
	if len(properties) > 0 {
		return errors.NewInterfaceHasPropertyRequirementsError(decl.Name, rules.ContractTerm, properties, decl.Location)
	}

	if decl.IsGeneric() {
		return errors.NewUnsupportedContractError(decl.Name, "", "generic contracts are not supported", decl.Location)
	}

	for _, member := range decl.Members {
		if reason := unsupportedReason(member, rules); reason != "" {
			loc := member.Location
			if loc.File == "" {
				loc = decl.Location
			}
			return errors.NewUnsupportedContractError(decl.Name, member.Name, reason, loc)
		}
	}

	return nil
}

func unsupportedReason(member models.MemberRequirement, rules Rules) string {
	switch member.Kind {
	case models.MemberMethod:
		if member.Method == nil {
			return "has no signature"
		}
		if !rules.ForwardsVariadics {
			for _, param := range member.Method.Parameters {
				if param.Variadic {
					return "has a variadic parameter that cannot be forwarded"
				}
			}
		}
		return ""
	case models.MemberInitializer:
		return "is an initializer requirement and cannot be forwarded to an instance"
	case models.MemberStaticMethod:
		return "is a static requirement and cannot be forwarded to an instance"
	case models.MemberAssociatedType:
		return "is an associated type; contracts with associated types are not supported"
	case models.MemberTypeAlias:
		return "is a type alias requirement; only method requirements are supported"
	case models.MemberTypeElement:
		return "is a type set element; constraint interfaces cannot be decorated"
	case models.MemberUnresolvedEmbed:
		if member.Detail != "" {
			return member.Detail
		}
		return "is an embedded interface that could not be resolved"
	default:
		return fmt.Sprintf("is an unsupported %s", member.Kind)
	}
}
