package swift

import "github.com/alecthomas/participle/v2/lexer"

// declarationHeader is the part of a declaration up to its name. It is
// parsed with trailing input allowed to find out what kind of declaration
// carries the attribute before committing to the protocol grammar.
type declarationHeader struct {
	Pos        lexer.Position
	Attributes []*attribute `parser:"@@*"`
	Modifiers  []string     `parser:"@('public' | 'open' | 'internal' | 'fileprivate' | 'private' | 'package' | 'final' | 'indirect' | 'nonisolated')*"`
	Kind       string       `parser:"@('protocol' | 'class' | 'struct' | 'enum' | 'actor' | 'extension' | 'typealias' | 'func' | 'var' | 'let')"`
	Name       string       `parser:"@(Ident | Keyword)?"`
}

// protocolDecl is a complete protocol declaration
type protocolDecl struct {
	Pos         lexer.Position
	Attributes  []*attribute      `parser:"@@*"`
	Modifiers   []string          `parser:"@('public' | 'open' | 'internal' | 'fileprivate' | 'private' | 'package' | 'nonisolated')*"`
	Name        string            `parser:"'protocol' @Ident"`
	Primary     *angleClause      `parser:"@@?"`
	Inheritance []*typeRef        `parser:"(':' @@ (',' @@)*)?"`
	Where       *whereClause      `parser:"@@?"`
	Members     []*protocolMember `parser:"'{' @@* '}'"`
}

// protocolMember is one requirement of a protocol body
type protocolMember struct {
	Pos        lexer.Position
	Attributes []*attribute `parser:"@@*"`
	Modifiers  []string     `parser:"@('mutating' | 'nonmutating' | 'static' | 'class' | 'optional' | 'nonisolated' | 'public' | 'open' | 'internal' | 'fileprivate' | 'private' | 'package' | 'final' | 'override' | 'required' | 'convenience' | 'dynamic' | 'lazy' | 'weak' | 'unowned')*"`

	Func           *funcDecl           `parser:"(  @@"`
	Property       *propertyDecl       `parser:" | @@"`
	Subscript      *subscriptDecl      `parser:" | @@"`
	Init           *initDecl           `parser:" | @@"`
	AssociatedType *associatedTypeDecl `parser:" | @@"`
	TypeAlias      *typeAliasDecl      `parser:" | @@ ) ';'?"`
}

type funcDecl struct {
	Name       string       `parser:"'func' @(Ident | Keyword | (Operator | '=' | '<' | '>' | '!' | '&' | '?' | '.')+)"`
	Generic    *angleClause `parser:"@@?"`
	Params     []*param     `parser:"'(' (@@ (',' @@)*)? ')'"`
	Async      bool         `parser:"@'async'?"`
	Throws     string       `parser:"@('throws' | 'rethrows')?"`
	ThrowsType *typeRef     `parser:"('(' @@ ')')?"`
	Returns    *typeRef     `parser:"('->' @@)?"`
	Where      *whereClause `parser:"@@?"`
	Body       *block       `parser:"@@?"`
}

type param struct {
	Pos      lexer.Position
	Label    string     `parser:"@(Ident | Keyword)"`
	Name     string     `parser:"@(Ident | Keyword)?"`
	Inout    bool       `parser:"':' @'inout'?"`
	Type     *paramType `parser:"@@"`
	Variadic bool       `parser:"@'...'?"`
}

// paramType allows attributes such as @escaping and @Sendable in front of
// the type. Return types do not, because an attribute there would belong to
// the next member.
type paramType struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Attributes []string `parser:"('@' @Ident)*"`
	Type       *typeRef `parser:"@@"`
}

type propertyDecl struct {
	Keyword   string     `parser:"@('var' | 'let')"`
	Name      string     `parser:"@(Ident | Keyword)"`
	Type      *paramType `parser:"':' @@"`
	Accessors *block     `parser:"@@?"`
}

type subscriptDecl struct {
	Generic   *angleClause `parser:"'subscript' @@?"`
	Params    []*param     `parser:"'(' (@@ (',' @@)*)? ')'"`
	Returns   *typeRef     `parser:"'->' @@"`
	Where     *whereClause `parser:"@@?"`
	Accessors *block       `parser:"@@?"`
}

type initDecl struct {
	Failable string       `parser:"'init' @('?' | '!')?"`
	Generic  *angleClause `parser:"@@?"`
	Params   []*param     `parser:"'(' (@@ (',' @@)*)? ')'"`
	Async    bool         `parser:"@'async'?"`
	Throws   string       `parser:"@('throws' | 'rethrows')?"`
	Where    *whereClause `parser:"@@?"`
}

type associatedTypeDecl struct {
	Name        string       `parser:"'associatedtype' @Ident"`
	Inheritance []*typeRef   `parser:"(':' @@ (',' @@)*)?"`
	Default     *typeRef     `parser:"('=' @@)?"`
	Where       *whereClause `parser:"@@?"`
}

type typeAliasDecl struct {
	Name    string       `parser:"'typealias' @Ident"`
	Generic *angleClause `parser:"@@?"`
	Type    *typeRef     `parser:"'=' @@"`
}

// typeRef is a type written in a declaration. Only its source range is
// used; the parts exist to find where the type ends.
type typeRef struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Parts  []*typePart `parser:"@@+"`
}

type typePart struct {
	Group *group `parser:"  @@"`
	Token string `parser:"| @(Ident | '.' | '?' | '!' | '&' | '->' | 'async' | 'throws' | 'rethrows')"`
}

// group is a bracketed token run, nested brackets balanced
type group struct {
	Paren   []*balanced `parser:"  '(' @@* ')'"`
	Bracket []*balanced `parser:"| '[' @@* ']'"`
	Angle   []*balanced `parser:"| '<' @@* '>'"`
}

type block struct {
	Body []*balanced `parser:"'{' @@* '}'"`
}

type balanced struct {
	Group *group `parser:"  @@"`
	Block *block `parser:"| @@"`
	Token string `parser:"| @(Ident | Keyword | Number | String | MultiString | Arrow | Ellipsis | Operator | ',' | ':' | ';' | '.' | '?' | '!' | '&' | '=' | '@' | '#' | '\\\\')"`
}

// angleClause is a generic parameter clause kept verbatim
type angleClause struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Inner  []*balanced `parser:"'<' @@* '>'"`
}

// whereClause is kept verbatim
type whereClause struct {
	Pos          lexer.Position
	EndPos       lexer.Position
	Requirements []*requirement `parser:"'where' @@ (',' @@)*"`
}

type requirement struct {
	Subject    *typeRef `parser:"@@"`
	Conformant *typeRef `parser:"( ':' @@"`
	SameType   *typeRef `parser:"| '=' '=' @@ )"`
}

type attribute struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `parser:"'@' @Ident"`
	Args   *group `parser:"@@?"`
}
