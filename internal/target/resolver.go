// Package target turns a user-supplied destination into the generation
// target directory and the canonical package name.
package target

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Mode is the kind of package being generated.
type Mode string

const (
	// ModePackage generates a regular package.
	ModePackage Mode = "package"

	// ModeTheme generates a theme.
	ModeTheme Mode = "theme"

	// ModeLanguage generates a language grammar package.
	ModeLanguage Mode = "language"
)

// LanguagePrefix is the directory prefix every language package carries.
const LanguagePrefix = "language-"

// ValidModes returns all generation modes.
func ValidModes() []string {
	return []string{string(ModePackage), string(ModeTheme), string(ModeLanguage)}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePackage, ModeTheme, ModeLanguage:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q; valid modes: %s", s, strings.Join(ValidModes(), ", "))
	}
}

// Target is a resolved generation destination.
type Target struct {
	// Path is the absolute directory the package is generated in.
	Path string

	// Name is the canonical name placeholders are derived from.
	Name string
}

// Resolve resolves raw against the working directory and derives the
// canonical name for mode.
//
// In package and theme mode the name is the base name of the absolute path.
// In language mode a leading "language-" is stripped from the base name and
// the path is rebuilt as <parent>/language-<name>, so the directory always
// carries the prefix whether or not it was typed.
//
// Resolve does not reject an empty raw path; callers validate that.
func Resolve(raw string, mode Mode) (Target, error) {
	abs, err := filepath.Abs(raw)
	if err != nil {
		return Target{}, fmt.Errorf("resolving %s: %w", raw, err)
	}

	base := filepath.Base(abs)
	if mode != ModeLanguage {
		return Target{Path: abs, Name: base}, nil
	}

	name := strings.TrimPrefix(base, LanguagePrefix)
	return Target{
		Path: filepath.Join(filepath.Dir(abs), LanguagePrefix+name),
		Name: name,
	}, nil
}
