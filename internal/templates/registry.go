package templates

import (
	"fmt"
	"slices"
	"strings"
)

// Built-in template root names.
const (
	PackageJavaScript   = "package-javascript"
	PackageCoffeeScript = "package-coffeescript"
	Theme               = "theme"
	Language            = "language"
	Bundle              = "bundle"
)

// DefaultSyntax is the package syntax used when --syntax is not specified.
const DefaultSyntax = "coffeescript"

// supportedSyntaxes lists package syntaxes in display order.
var supportedSyntaxes = []string{"coffeescript", "javascript"}

// templates is the internal registry of built-in templates.
var templates = map[string]Template{
	PackageCoffeeScript: {
		Name:        PackageCoffeeScript,
		Kind:        KindPackage,
		Description: "Package with a toggle command, view, keymap and menu in CoffeeScript",
		Default:     true,
	},
	PackageJavaScript: {
		Name:        PackageJavaScript,
		Kind:        KindPackage,
		Description: "Package with a toggle command, view, keymap and menu in JavaScript",
	},
	Theme: {
		Name:        Theme,
		Kind:        KindTheme,
		Description: "Syntax theme with color variables and base styles",
		Default:     true,
	},
	Language: {
		Name:        Language,
		Kind:        KindLanguage,
		Description: "Language grammar with settings, snippets and a grammar spec",
		Default:     true,
	},
	Bundle: {
		Name:        Bundle,
		Kind:        KindPackage,
		Description: "Package metadata laid over a converted TextMate bundle",
	},
}

// order is the listing order of built-in templates.
var order = []string{PackageCoffeeScript, PackageJavaScript, Theme, Language, Bundle}

// Get returns a built-in template by name.
func Get(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: %s", name, strings.Join(order, ", "))
	}
	return t, nil
}

// List returns all built-in templates.
func List() []Template {
	list := make([]Template, 0, len(order))
	for _, name := range order {
		list = append(list, templates[name])
	}
	return list
}

// Names returns all built-in template names.
func Names() []string {
	return slices.Clone(order)
}

// Syntaxes returns the supported package syntaxes.
func Syntaxes() []string {
	return slices.Clone(supportedSyntaxes)
}

// IsSupportedSyntax reports whether syntax names a package template.
func IsSupportedSyntax(syntax string) bool {
	return slices.Contains(supportedSyntaxes, syntax)
}

// PackageTemplate returns the built-in package root for syntax.
func PackageTemplate(syntax string) string {
	return "package-" + syntax
}
