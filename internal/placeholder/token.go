// Package placeholder substitutes package name, author and year placeholders
// in template paths and file contents.
//
// Text is first split into a token stream (Tokenize) and then rendered in a
// single pass (Render), so no replacement can be re-scanned by another.
package placeholder

import (
	"strings"

	"github.com/pkginit/cli/internal/naming"
)

// Placeholder spellings recognised in templates.
const (
	DashNameToken   = "__package-name__"
	LowerCamelToken = "__packageName__"
	UpperCamelToken = "__PackageName__"
	SnakeNameToken  = "__package_name__"
	AuthorToken     = "__package-author__"
	YearToken       = "__current_year__"
)

// TemplateSuffix marks template paths whose suffix is dropped on output.
const TemplateSuffix = ".template"

// Kind identifies the variant of a Token.
type Kind int

const (
	// Literal is text copied verbatim.
	Literal Kind = iota

	// DashName renders the canonical name in dash-case.
	DashName

	// CamelName renders the canonical name in camel or Pascal case,
	// according to Token.Leading.
	CamelName

	// SnakeName renders the canonical name in snake_case.
	SnakeName

	// Author renders the package author.
	Author

	// Year renders the four-digit generation year.
	Year
)

var kindNames = map[Kind]string{
	Literal:   "literal",
	DashName:  "dash-name",
	CamelName: "camel-name",
	SnakeName: "snake-name",
	Author:    "author",
	Year:      "year",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is one element of a tokenized template string.
type Token struct {
	Kind Kind

	// Text holds the verbatim text of a Literal token.
	Text string

	// Leading selects camelCase or PascalCase for CamelName tokens.
	Leading naming.Leading
}

// grammar maps each placeholder spelling to the token it produces.
var grammar = []struct {
	text  string
	token Token
}{
	{DashNameToken, Token{Kind: DashName}},
	{LowerCamelToken, Token{Kind: CamelName, Leading: naming.Lower}},
	{UpperCamelToken, Token{Kind: CamelName, Leading: naming.Upper}},
	{SnakeNameToken, Token{Kind: SnakeName}},
	{AuthorToken, Token{Kind: Author}},
	{YearToken, Token{Kind: Year}},
}

// Tokenize splits s into literal text and placeholder tokens. Adjacent
// literal text is merged into a single Literal token.
func Tokenize(s string) []Token {
	var tokens []Token
	start := 0 // start of the pending literal
	i := 0

	for {
		next := strings.Index(s[i:], "__")
		if next < 0 {
			break
		}
		i += next

		matched := false
		for _, g := range grammar {
			if strings.HasPrefix(s[i:], g.text) {
				if start < i {
					tokens = append(tokens, Token{Kind: Literal, Text: s[start:i]})
				}
				tokens = append(tokens, g.token)
				i += len(g.text)
				start = i
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}

	if start < len(s) {
		tokens = append(tokens, Token{Kind: Literal, Text: s[start:]})
	}
	return tokens
}
