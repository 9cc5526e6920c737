// Package naming converts a canonical package name between the dash-case,
// camelCase/PascalCase and snake_case spellings used in templates.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Leading selects the case of the first letter produced by ToCamelCase.
type Leading int

const (
	// Lower produces camelCase ("myPackage").
	Lower Leading = iota

	// Upper produces PascalCase ("MyPackage").
	Upper
)

// String returns the name of the leading case.
func (l Leading) String() string {
	if l == Upper {
		return "upper"
	}
	return "lower"
}

// ToDashCase lower-cases the first character, replaces every interior
// uppercase letter X with "-x" and every underscore with "-".
//
//	ToDashCase("MyPackage")  // "my-package"
//	ToDashCase("my_package") // "my-package"
func ToDashCase(s string) string {
	return separate(s, '-', '_')
}

// ToSnakeCase lower-cases the first character, replaces every interior
// uppercase letter X with "_x" and every dash with "_".
//
//	ToSnakeCase("MyPackage")  // "my_package"
//	ToSnakeCase("my-package") // "my_package"
func ToSnakeCase(s string) string {
	return separate(s, '_', '-')
}

// ToCamelCase sets the case of the first character according to leading and
// collapses every run of '-' or '_' followed by a letter or digit into that
// character upper-cased.
//
//	ToCamelCase("my-package", Lower) // "myPackage"
//	ToCamelCase("my_package", Upper) // "MyPackage"
func ToCamelCase(s string, leading Leading) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	if leading == Upper {
		runes[0] = unicode.ToUpper(runes[0])
	} else {
		runes[0] = unicode.ToLower(runes[0])
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); i++ {
		if !isSeparator(runes[i]) {
			b.WriteRune(runes[i])
			continue
		}

		j := i
		for j < len(runes) && isSeparator(runes[j]) {
			j++
		}
		if j < len(runes) && isWordRune(runes[j]) {
			b.WriteRune(unicode.ToUpper(runes[j]))
		} else {
			// A separator run with no word character after it is kept.
			b.WriteString(string(runes[i:j]))
			j--
		}
		i = j
	}

	return b.String()
}

// separate implements the shared dash/snake conversion: the first character
// is lower-cased, uppercase letters become sep+lower and every occurrence of
// replaced becomes sep.
func separate(s string, sep, replaced rune) string {
	if s == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(s)

	var b strings.Builder
	b.Grow(len(s) + 4)
	if first == replaced {
		b.WriteRune(sep)
	} else {
		b.WriteRune(unicode.ToLower(first))
	}

	for _, r := range s[size:] {
		switch {
		case unicode.IsUpper(r):
			b.WriteRune(sep)
			b.WriteRune(unicode.ToLower(r))
		case r == replaced:
			b.WriteRune(sep)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
