package templates

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/toyz/decoratable/internal/models"
)

var registry = NewTemplateRegistry()

// templateFuncs are shared by every dialect
var templateFuncs = template.FuncMap{
	"access":          accessPrefix,
	"join":            strings.Join,
	"swiftParams":     swiftParams,
	"swiftArgs":       swiftArgs,
	"swiftEffects":    swiftEffects,
	"swiftCallPrefix": swiftCallPrefix,
	"goParams":        goParams,
	"goArgs":          goArgs,
}

// accessPrefix renders a modifier followed by a space, or nothing for the
// default level
func accessPrefix(v models.Visibility) string {
	if keyword := v.String(); keyword != "" {
		return keyword + " "
	}
	return ""
}

// swiftParams renders a Swift parameter clause. A label equal to the binding
// is written once.
func swiftParams(params []models.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		typ := p.Type
		if p.Inout {
			typ = "inout " + typ
		}
		if p.Variadic {
			typ += "..."
		}

		switch {
		case p.IsPositional():
			parts[i] = fmt.Sprintf("_ %s: %s", p.Name, typ)
		case p.Label == p.Name:
			parts[i] = fmt.Sprintf("%s: %s", p.Name, typ)
		default:
			parts[i] = fmt.Sprintf("%s %s: %s", p.Label, p.Name, typ)
		}
	}
	return strings.Join(parts, ", ")
}

// swiftArgs renders the argument list of a forwarding call
func swiftArgs(args []models.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		value := a.Value
		if a.Inout {
			value = "&" + value
		}
		if a.Label != "" {
			value = a.Label + ": " + value
		}
		parts[i] = value
	}
	return strings.Join(parts, ", ")
}

// swiftEffects renders the effect specifiers between the parameter clause
// and the return arrow
func swiftEffects(m models.ForwardingMethod) string {
	var effects strings.Builder
	if m.Async {
		effects.WriteString(" async")
	}
	if m.Throws != "" {
		effects.WriteString(" " + m.Throws)
	}
	return effects.String()
}

// swiftCallPrefix marks the forwarded call with the keywords its effects need
func swiftCallPrefix(m models.ForwardingMethod) string {
	var prefix strings.Builder
	if m.Throws != "" {
		prefix.WriteString("try ")
	}
	if m.Async {
		prefix.WriteString("await ")
	}
	return prefix.String()
}

// goParams renders a Go parameter list. Every parameter is named because
// the body refers to each of them.
func goParams(params []models.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Variadic {
			parts[i] = fmt.Sprintf("%s ...%s", p.Name, p.Type)
		} else {
			parts[i] = fmt.Sprintf("%s %s", p.Name, p.Type)
		}
	}
	return strings.Join(parts, ", ")
}

// goArgs renders the argument list of a forwarding call
func goArgs(args []models.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Variadic {
			parts[i] = a.Value + "..."
		} else {
			parts[i] = a.Value
		}
	}
	return strings.Join(parts, ", ")
}

// executeTemplate executes a registered template with the given data
func executeTemplate(name string, data interface{}) (string, error) {
	templateStr, ok := registry.Get(name)
	if !ok {
		return "", fmt.Errorf("template %s is not registered", name)
	}
	return ExecuteTemplate(name, templateStr, data)
}

// ExecuteTemplate executes a Go template with the given data
func ExecuteTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
