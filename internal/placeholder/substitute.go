package placeholder

import (
	"strconv"
	"strings"

	"github.com/pkginit/cli/internal/naming"
)

// Context holds the values placeholders resolve to during one generation run.
// It is built once and treated as read-only.
type Context struct {
	// Name is the canonical package name every name placeholder derives from.
	Name string

	// Author replaces __package-author__.
	Author string

	// Year replaces __current_year__.
	Year int
}

// Render writes the token stream with every placeholder resolved against ctx.
func Render(tokens []Token, ctx Context) string {
	var b strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case Literal:
			b.WriteString(tok.Text)
		case DashName:
			b.WriteString(naming.ToDashCase(ctx.Name))
		case CamelName:
			b.WriteString(naming.ToCamelCase(ctx.Name, tok.Leading))
		case SnakeName:
			b.WriteString(naming.ToSnakeCase(ctx.Name))
		case Author:
			b.WriteString(ctx.Author)
		case Year:
			b.WriteString(strconv.Itoa(ctx.Year))
		}
	}
	return b.String()
}

// Substitute replaces every placeholder occurrence in text.
func Substitute(text string, ctx Context) string {
	return Render(Tokenize(text), ctx)
}

// SubstitutePath substitutes placeholders in a template-relative path and
// strips a trailing .template suffix.
func SubstitutePath(rel string, ctx Context) string {
	return strings.TrimSuffix(Substitute(rel, ctx), TemplateSuffix)
}

// HasPlaceholders reports whether text contains any placeholder token.
func HasPlaceholders(text string) bool {
	for _, tok := range Tokenize(text) {
		if tok.Kind != Literal {
			return true
		}
	}
	return false
}
