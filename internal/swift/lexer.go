package swift

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// keywords are lexed apart from identifiers so that a type or name never
// runs into the declaration that follows it
var keywords = []string{
	"associatedtype", "actor", "async", "case", "class", "convenience",
	"deinit", "dynamic", "enum", "extension", "fileprivate", "final", "func",
	"import", "indirect", "init", "inout", "internal", "lazy", "let",
	"mutating", "nonisolated", "nonmutating", "open", "operator", "optional",
	"override", "package", "private", "protocol", "public", "required",
	"rethrows", "static", "struct", "subscript", "throws", "typealias",
	"unowned", "var", "weak", "where",
}

// swiftLexer tokenizes complete Swift source files, not just declarations,
// so that markers inside comments and string literals are never matched
var swiftLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "MultiString", Pattern: `#*"""(?s:.*?)"""#*`},
	{Name: "String", Pattern: `#*"(?:\\.|[^"\\\n])*"#*`},
	{Name: "Keyword", Pattern: `(?:` + strings.Join(keywords, "|") + `)\b`},
	{Name: "Ident", Pattern: "`[^`\\n]+`|[\\p{L}_$][\\p{L}\\p{N}_]*"},
	{Name: "Number", Pattern: `0[xob][0-9a-fA-F_]+|[0-9][0-9_]*(?:\.[0-9][0-9_]*)?(?:[eE][-+]?[0-9]+)?`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Operator", Pattern: `[-+*/%^|~]+`},
	{Name: "Punct", Pattern: "[(){}\\[\\]<>,:;.?!&=@#\\\\'`]"},
	{Name: "Whitespace", Pattern: `\s+`},
})

// elided token types never reach the grammar
var elided = []string{"Comment", "Whitespace"}
