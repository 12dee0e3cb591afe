package generator

import (
	"strconv"

	"github.com/toyz/decoratable/internal/models"
)

// BuildPlan turns the extracted methods and resolved access into a dialect
// neutral description of the wrapper
func BuildPlan(decl *models.ContractDeclaration, methods []models.MethodRequirement, access models.AccessResolution) *models.DecoratorPlan {
	plan := &models.DecoratorPlan{
		TypeName:     decl.Name + models.DecoratorSuffix,
		ContractName: decl.Name,
		FieldName:    models.DecoratorFieldName,
		Access:       access,
		Methods:      make([]models.ForwardingMethod, 0, len(methods)),
		Contract:     decl,
	}

	for _, method := range methods {
		if method.Mutating {
			plan.MutableField = true
		}
		plan.Methods = append(plan.Methods, forwardingMethod(method))
	}

	return plan
}

func forwardingMethod(method models.MethodRequirement) models.ForwardingMethod {
	params := bindParameters(method.Parameters)

	args := make([]models.Argument, len(params))
	for i, param := range params {
		arg := models.Argument{
			Value:    param.Name,
			Inout:    param.Inout,
			Variadic: param.Variadic,
		}
		if !param.IsPositional() {
			arg.Label = param.Label
		}
		args[i] = arg
	}

	return models.ForwardingMethod{
		Name:          method.Name,
		Parameters:    params,
		Returns:       method.Returns,
		Async:         method.Async,
		Throws:        method.Throws,
		GenericClause: method.GenericClause,
		WhereClause:   method.WhereClause,
		Attributes:    method.Attributes,
		Arguments:     args,
	}
}

// bindParameters gives every parameter a usable internal name. Parameters
// the source left unnamed (or named "_") get argN, skipping names already
// taken by their siblings.
func bindParameters(params []models.Parameter) []models.Parameter {
	taken := make(map[string]bool, len(params))
	for _, param := range params {
		if name := param.Binding(); name != "" && name != models.Wildcard {
			taken[name] = true
		}
	}

	bound := make([]models.Parameter, len(params))
	for i, param := range params {
		name := param.Binding()
		if name == "" || name == models.Wildcard {
			name = freshName("arg"+strconv.Itoa(i), taken)
			taken[name] = true
		}
		param.Name = name
		if param.Label == "" {
			param.Label = models.Wildcard
		}
		bound[i] = param
	}
	return bound
}

func freshName(base string, taken map[string]bool) string {
	name := base
	for n := 0; taken[name]; n++ {
		name = base + "_" + strconv.Itoa(n)
	}
	return name
}
