package annotations

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/models"
)

// ParticipleParser parses marker comments using alecthomas/participle
type ParticipleParser struct {
	parser *participle.Parser[markerComment]
}

// markerComment represents the root of a marker comment
type markerComment struct {
	Comment   string `parser:"@Comment"`
	Tool      string `parser:"@Tool"`
	Separator string `parser:"@Separator"`
	Verb      string `parser:"@Ident"`
}

// NewParticipleParser creates a new marker parser
func NewParticipleParser() *ParticipleParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Tool", Pattern: `decoratable\b`},
		{Name: "Separator", Pattern: `:`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[^\sa-zA-Z0-9_]`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
	})

	parser := participle.MustBuild[markerComment](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &ParticipleParser{parser: parser}
}

// IsMarkerComment reports whether a comment line is meant as a marker. It
// is a cheap check used to decide whether ParseMarker should run at all.
func IsMarkerComment(comment string) bool {
	return strings.HasPrefix(strings.TrimSpace(comment), GoMarkerPrefix)
}

// ParseMarker parses a single marker comment line
func (p *ParticipleParser) ParseMarker(comment string, location models.SourceLocation) (*Marker, error) {
	raw := strings.TrimSpace(comment)

	parsed, err := p.parser.ParseString(location.File, raw)
	if err != nil {
		return nil, markerError(raw, location, err)
	}

	verb, err := ParseMarkerVerb(parsed.Verb)
	if err != nil {
		return nil, errors.New(errors.AnnotationErrorCode, err.Error()).
			WithLocation(location).
			WithContext("marker", raw).
			WithSuggestions(fmt.Sprintf("Use %sgenerate on the interface to decorate", GoMarkerPrefix))
	}

	return &Marker{Verb: verb, Location: location, Raw: raw}, nil
}

// FindMarker returns the first marker among the lines of a doc comment, or
// nil when there is none. Lines that look like markers but do not parse are
// reported rather than skipped.
func (p *ParticipleParser) FindMarker(lines []string, location models.SourceLocation) (*Marker, error) {
	for i, line := range lines {
		if !IsMarkerComment(line) {
			continue
		}
		loc := location
		if loc.Line > 0 {
			loc.Line += i
		}
		return p.ParseMarker(line, loc)
	}
	return nil, nil
}

func markerError(raw string, location models.SourceLocation, cause error) error {
	message := fmt.Sprintf("invalid marker %q", raw)
	var perr participle.Error
	if stderrors.As(cause, &perr) {
		message = fmt.Sprintf("invalid marker %q: %s", raw, perr.Message())
	}
	return errors.New(errors.AnnotationErrorCode, message).WithCause(cause).
		WithLocation(location).
		WithSuggestions(fmt.Sprintf("Markers take the form %sgenerate with nothing after the verb", GoMarkerPrefix))
}
