package templates

// Template names
const (
	SwiftDecoratorTemplate = "swift-decorator"
	SwiftFileTemplate      = "swift-file"
	GoDecoratorTemplate    = "go-decorator"
	GoFileTemplate         = "go-file"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerSwiftTemplates()
	registry.registerGoTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// registerSwiftTemplates registers the peer class emitted next to a protocol
func (tr *TemplateRegistry) registerSwiftTemplates() {
	tr.templates[SwiftDecoratorTemplate] = `{{access .TypeAccess}}class {{.TypeName}}: {{.ContractName}} {
    private {{if .MutableField}}var{{else}}let{{end}} {{.FieldName}}: any {{.ContractName}}

    {{access .InitAccess}}init(_ {{.FieldName}}: any {{.ContractName}}) {
        self.{{.FieldName}} = {{.FieldName}}
    }
{{range .Methods}}
{{range .Attributes}}    {{.}}
{{end}}    {{access $.MemberAccess}}func {{.Name}}{{.GenericClause}}({{swiftParams .Parameters}}){{swiftEffects .}}{{with .Returns}} -> {{.}}{{end}}{{with .WhereClause}} {{.}}{{end}} {
        {{swiftCallPrefix .}}{{$.FieldName}}.{{.Name}}({{swiftArgs .Arguments}})
    }
{{end}}}
`

	tr.templates[SwiftFileTemplate] = `{{if .Header}}// Code generated by decoratable. DO NOT EDIT.
// Source: {{join .SourceFiles ", "}}

{{end}}{{.Imports}}{{if .Imports}}
{{end}}{{join .Declarations "\n"}}`
}

// registerGoTemplates registers the wrapper struct and its file layout
func (tr *TemplateRegistry) registerGoTemplates() {
	tr.templates[GoDecoratorTemplate] = `// {{.TypeName}} forwards every {{.ContractName}} call to the wrapped {{.ContractName}}.
// Embed *{{.TypeName}} to override individual methods.
type {{.TypeName}} struct {
	{{.FieldName}} {{.ContractName}}
}

var _ {{.ContractName}} = (*{{.TypeName}})(nil)

// {{.Constructor}} returns a {{.TypeName}} that forwards to {{.FieldName}}.
func {{.Constructor}}({{.FieldName}} {{.ContractName}}) *{{.TypeName}} {
	return &{{.TypeName}}{ {{- .FieldName}}: {{.FieldName -}} }
}
{{range .Methods}}
func ({{$.Receiver}} *{{$.TypeName}}) {{.Name}}({{goParams .Parameters}}){{with .Returns}} {{.}}{{end}} {
	{{if .HasReturn}}return {{end}}{{$.Receiver}}.{{$.FieldName}}.{{.Name}}({{goArgs .Arguments}})
}
{{end}}`

	tr.templates[GoFileTemplate] = `{{if .Header}}// Code generated by decoratable. DO NOT EDIT.
// Source: {{join .SourceFiles ", "}}

{{end}}package {{.PackageName}}

{{.Imports}}
{{join .Declarations "\n"}}`
}
