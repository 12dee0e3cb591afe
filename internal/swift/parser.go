package swift

import (
	"bytes"
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/rs/zerolog"

	"github.com/toyz/decoratable/internal/annotations"
	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/models"
)

// File is the result of parsing one Swift source file
type File struct {
	Path      string
	Imports   []models.Import
	Contracts []*models.ContractDeclaration
}

// Parser extracts @Decoratable declarations from Swift source
type Parser struct {
	header   *participle.Parser[declarationHeader]
	protocol *participle.Parser[protocolDecl]
	logger   zerolog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the debug logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a Swift parser
func NewParser(opts ...Option) *Parser {
	options := []participle.Option{
		participle.Lexer(swiftLexer),
		participle.Elide(elided...),
		participle.UseLookahead(2),
	}

	p := &Parser{
		header:   participle.MustBuild[declarationHeader](options...),
		protocol: participle.MustBuild[protocolDecl](options...),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// marker is an occurrence of the attribute in a token stream
type marker struct {
	pos lexer.Position
}

// ParseFile finds every declaration carrying the attribute in src and parses
// it into a contract. Declarations without the attribute are ignored.
func (p *Parser) ParseFile(filename string, src []byte) (*File, error) {
	markers, imports, err := p.scan(filename, src)
	if err != nil {
		return nil, err
	}

	file := &File{Path: filename, Imports: imports}
	for _, m := range markers {
		decl, err := p.parseAt(filename, src, m.pos)
		if err != nil {
			return nil, err
		}
		p.logger.Debug().
			Str("file", filename).
			Str("declaration", decl.Name).
			Str("kind", decl.Kind.String()).
			Msg("found annotated declaration")
		file.Contracts = append(file.Contracts, decl)
	}
	return file, nil
}

// ParseDeclaration parses a single declaration at the start of src. The
// attribute is optional, which lets callers expand a protocol directly.
func (p *Parser) ParseDeclaration(filename string, src []byte) (*models.ContractDeclaration, error) {
	return p.parseAt(filename, src, lexer.Position{Filename: filename, Line: 1, Column: 1})
}

// scan walks the token stream looking for the attribute and for top level
// import statements
func (p *Parser) scan(filename string, src []byte) ([]marker, []models.Import, error) {
	lex, err := swiftLexer.Lex(filename, bytes.NewReader(src))
	if err != nil {
		return nil, nil, errors.WrapParseError(filename, err)
	}

	symbols := swiftLexer.Symbols()
	skip := map[lexer.TokenType]bool{
		symbols["Comment"]:    true,
		symbols["Whitespace"]: true,
	}

	var tokens []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, nil, syntaxError(filename, err)
		}
		if tok.EOF() {
			break
		}
		if !skip[tok.Type] {
			tokens = append(tokens, tok)
		}
	}

	var (
		markers []marker
		imports []models.Import
		depth   int
	)
	for i, tok := range tokens {
		switch tok.Value {
		case "{":
			depth++
		case "}":
			depth--
		case "@":
			if i+1 < len(tokens) && annotations.IsSwiftAttribute(tokens[i+1].Value) {
				markers = append(markers, marker{pos: tok.Pos})
			}
		case "import":
			if depth == 0 && tok.Type == symbols["Keyword"] {
				if imp, ok := importAt(tokens[i+1:], symbols["Ident"]); ok {
					imports = append(imports, imp)
				}
			}
		}
	}
	return markers, imports, nil
}

// importAt reads the module name of an import statement, skipping the
// optional declaration kind of a scoped import
func importAt(rest []lexer.Token, ident lexer.TokenType) (models.Import, bool) {
	for _, tok := range rest {
		switch {
		case tok.Type == ident:
			return models.Import{Path: tok.Value}, true
		case tok.Value == "typealias", tok.Value == "struct", tok.Value == "class",
			tok.Value == "enum", tok.Value == "protocol", tok.Value == "let",
			tok.Value == "var", tok.Value == "func":
			continue
		default:
			return models.Import{}, false
		}
	}
	return models.Import{}, false
}

// parseAt parses the declaration starting at pos. Everything before pos is
// blanked out so that positions reported by the grammar stay file relative.
func (p *Parser) parseAt(filename string, src []byte, pos lexer.Position) (*models.ContractDeclaration, error) {
	text := maskBefore(src, pos.Offset)

	header, err := p.header.ParseString(filename, text, participle.AllowTrailing(true))
	if err != nil {
		return nil, syntaxError(filename, err)
	}

	if header.Kind != "protocol" {
		return &models.ContractDeclaration{
			Name:       header.Name,
			Kind:       declarationKind(header.Kind),
			Visibility: visibilityOf(header.Modifiers),
			Location:   location(filename, header.Pos),
		}, nil
	}

	decl, err := p.protocol.ParseString(filename, text, participle.AllowTrailing(true))
	if err != nil {
		return nil, syntaxError(filename, err)
	}

	return p.contract(filename, text, decl), nil
}

func (p *Parser) contract(filename, src string, decl *protocolDecl) *models.ContractDeclaration {
	contract := &models.ContractDeclaration{
		Name:       decl.Name,
		Kind:       models.KindInterface,
		Visibility: visibilityOf(decl.Modifiers),
		Location:   location(filename, decl.Pos),
	}

	if decl.Primary != nil {
		for _, primary := range strings.Split(strings.Trim(sourceText(src, decl.Primary.Pos, decl.Primary.EndPos), "<>"), ",") {
			if name := strings.TrimSpace(primary); name != "" {
				contract.TypeParameters = append(contract.TypeParameters, name)
			}
		}
	}

	for _, member := range decl.Members {
		contract.Members = append(contract.Members, p.member(filename, src, member))
	}
	return contract
}

func (p *Parser) member(filename, src string, m *protocolMember) models.MemberRequirement {
	loc := location(filename, m.Pos)

	switch {
	case m.Func != nil:
		if hasModifier(m.Modifiers, "static", "class") {
			return models.MemberRequirement{Kind: models.MemberStaticMethod, Name: m.Func.Name, Location: loc}
		}
		return models.NewMethodMember(p.method(src, m, loc))
	case m.Property != nil:
		return models.MemberRequirement{Kind: models.MemberProperty, Name: m.Property.Name, Location: loc}
	case m.Subscript != nil:
		return models.MemberRequirement{Kind: models.MemberSubscript, Name: "subscript", Location: loc}
	case m.Init != nil:
		return models.MemberRequirement{Kind: models.MemberInitializer, Name: "init", Location: loc}
	case m.AssociatedType != nil:
		return models.MemberRequirement{Kind: models.MemberAssociatedType, Name: m.AssociatedType.Name, Location: loc}
	default:
		return models.MemberRequirement{Kind: models.MemberTypeAlias, Name: m.TypeAlias.Name, Location: loc}
	}
}

func (p *Parser) method(src string, m *protocolMember, loc models.SourceLocation) models.MethodRequirement {
	fn := m.Func
	method := models.MethodRequirement{
		Name:     fn.Name,
		Mutating: hasModifier(m.Modifiers, "mutating"),
		Async:    fn.Async,
		Throws:   fn.Throws,
		Location: loc,
	}

	if fn.ThrowsType != nil {
		method.Throws += "(" + sourceText(src, fn.ThrowsType.Pos, fn.ThrowsType.EndPos) + ")"
	}
	if fn.Returns != nil {
		method.Returns = sourceText(src, fn.Returns.Pos, fn.Returns.EndPos)
	}
	if fn.Generic != nil {
		method.GenericClause = sourceText(src, fn.Generic.Pos, fn.Generic.EndPos)
	}
	if fn.Where != nil {
		method.WhereClause = sourceText(src, fn.Where.Pos, fn.Where.EndPos)
	}

	for _, attr := range m.Attributes {
		method.Attributes = append(method.Attributes, sourceText(src, attr.Pos, attr.EndPos))
	}
	for _, prm := range fn.Params {
		method.Parameters = append(method.Parameters, parameter(src, prm))
	}
	return method
}

// parameter converts a parameter clause entry. A single name serves as both
// label and binding; "_" as the binding means the source left it unnamed.
func parameter(src string, prm *param) models.Parameter {
	name := prm.Name
	if name == "" && prm.Label != models.Wildcard {
		name = prm.Label
	}
	if name == models.Wildcard {
		name = ""
	}

	return models.Parameter{
		Label:    prm.Label,
		Name:     name,
		Type:     sourceText(src, prm.Type.Pos, prm.Type.EndPos),
		Inout:    prm.Inout,
		Variadic: prm.Variadic,
	}
}

var lineBreak = regexp.MustCompile(`\s*\n\s*`)

// sourceText returns the source between two grammar positions on one line
func sourceText(src string, start, end lexer.Position) string {
	if start.Offset >= end.Offset || end.Offset > len(src) {
		return ""
	}
	return strings.TrimSpace(lineBreak.ReplaceAllString(src[start.Offset:end.Offset], " "))
}

// maskBefore replaces everything before offset with spaces, keeping line breaks
func maskBefore(src []byte, offset int) string {
	masked := make([]byte, len(src))
	for i, b := range src {
		if i < offset && b != '\n' {
			masked[i] = ' '
		} else {
			masked[i] = b
		}
	}
	return string(masked)
}

func visibilityOf(modifiers []string) models.Visibility {
	for _, modifier := range modifiers {
		switch modifier {
		case "public", "open", "internal", "package", "fileprivate", "private":
			v, _ := models.ParseVisibility(modifier)
			return v
		}
	}
	return models.VisibilityDefault
}

func declarationKind(keyword string) models.DeclarationKind {
	switch keyword {
	case "protocol":
		return models.KindInterface
	case "class":
		return models.KindClass
	case "struct":
		return models.KindStruct
	case "enum":
		return models.KindEnum
	case "actor":
		return models.KindActor
	case "extension":
		return models.KindExtension
	case "typealias":
		return models.KindAlias
	case "func":
		return models.KindFunction
	case "var", "let":
		return models.KindVariable
	default:
		return models.KindUnknown
	}
}

func hasModifier(modifiers []string, wanted ...string) bool {
	for _, modifier := range modifiers {
		for _, w := range wanted {
			if modifier == w {
				return true
			}
		}
	}
	return false
}

func location(filename string, pos lexer.Position) models.SourceLocation {
	return models.SourceLocation{File: filename, Line: pos.Line, Column: pos.Column}
}

// syntaxError converts lexer and grammar failures into positioned errors
func syntaxError(filename string, err error) error {
	var perr participle.Error
	if stderrors.As(err, &perr) {
		return errors.NewSyntaxError(perr.Message(), location(filename, perr.Position()))
	}
	return errors.WrapParseError(filename, err)
}

// Unit returns the file's contracts as one output unit written to outputPath
func (f *File) Unit(outputPath string) *models.SourceUnit {
	return &models.SourceUnit{
		OutputPath:  outputPath,
		SourceFiles: []string{f.Path},
		Contracts:   f.Contracts,
		Imports:     f.Imports,
	}
}
