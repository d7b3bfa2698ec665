package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer maps the raw string tokens out for our AST definitions.
// Basic whitespace elision is enough for our grammar.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(?:vs|start|npcs?|pcs?|apt|hp|dt|atk|def|target|lowest_dt|random)\b`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// Build creates our parser based on the struct tags in `ast.go`
func Build() *participle.Parser[Matchup] {
	return participle.MustBuild[Matchup](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Keyword"),
	)
}
