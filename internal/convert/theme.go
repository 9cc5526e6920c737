package convert

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pkginit/cli/internal/plist"
)

// Files written by the theme converter, relative to the destination.
const (
	SyntaxVariablesFile = "styles/syntax-variables.less"
	BaseStylesFile      = "styles/base.less"
)

// ThemeConverter converts a TextMate .tmTheme into syntax theme styles.
type ThemeConverter struct {
	// Source is a local .tmTheme path or an http(s) URL.
	Source string

	// Destination is the theme package directory.
	Destination string

	// Sources reads local source files.
	Sources afero.Fs

	// Target receives the generated styles.
	Target afero.Fs

	// Client downloads URL sources.
	Client *http.Client
}

// NewThemeConverter creates a ThemeConverter reading local files from
// sources and writing into target.
func NewThemeConverter(source, destination string, sources, target afero.Fs) *ThemeConverter {
	return &ThemeConverter{
		Source:      source,
		Destination: destination,
		Sources:     sources,
		Target:      target,
		Client:      http.DefaultClient,
	}
}

// Convert reads the theme and writes styles/syntax-variables.less and
// styles/base.less under the destination.
func (c *ThemeConverter) Convert(ctx context.Context) error {
	data, err := c.read(ctx)
	if err != nil {
		return err
	}

	dict, err := plist.DecodeDict(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("theme %s: %w", c.Source, err)
	}

	theme, err := parseTheme(dict, c.fallbackName())
	if err != nil {
		return fmt.Errorf("theme %s: %w", c.Source, err)
	}

	if err := writeFile(c.Target, filepath.Join(c.Destination, filepath.FromSlash(SyntaxVariablesFile)), []byte(theme.syntaxVariables())); err != nil {
		return err
	}
	return writeFile(c.Target, filepath.Join(c.Destination, filepath.FromSlash(BaseStylesFile)), []byte(theme.baseStyles()))
}

func (c *ThemeConverter) read(ctx context.Context) ([]byte, error) {
	if IsURL(c.Source) {
		client := c.Client
		if client == nil {
			client = http.DefaultClient
		}
		return fetch(ctx, client, c.Source)
	}

	data, err := afero.ReadFile(c.Sources, c.Source)
	if err != nil {
		return nil, fmt.Errorf("reading theme: %w", err)
	}
	return data, nil
}

// fallbackName derives a display name from the source file name, used when
// the theme does not declare one.
func (c *ThemeConverter) fallbackName() string {
	base := path.Base(filepath.ToSlash(c.Source))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(base)
}

// textMateTheme holds the parts of a tmTheme that map onto editor styles.
type textMateTheme struct {
	name   string
	global map[string]string
	scoped []scopedStyle
}

type scopedStyle struct {
	name      string
	selectors []string
	props     []cssProperty
}

type cssProperty struct {
	name  string
	value string
}

func parseTheme(dict map[string]any, fallbackName string) (*textMateTheme, error) {
	t := &textMateTheme{global: map[string]string{}}

	if name, ok := dict["name"].(string); ok && strings.TrimSpace(name) != "" {
		t.name = name
	} else {
		t.name = fallbackName
	}

	settings, ok := dict["settings"].([]any)
	if !ok {
		return nil, fmt.Errorf("missing settings array")
	}

	for _, raw := range settings {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		values, _ := entry["settings"].(map[string]any)
		scope, _ := entry["scope"].(string)

		// The entry without a scope holds the editor-wide colors.
		if scope == "" {
			for k, v := range values {
				if s, ok := v.(string); ok {
					t.global[k] = translateColor(s)
				}
			}
			continue
		}

		selectors := scopeSelectorsToCSS(scope)
		props := styleProperties(values)
		if len(selectors) == 0 || len(props) == 0 {
			continue
		}
		name, _ := entry["name"].(string)
		t.scoped = append(t.scoped, scopedStyle{name: name, selectors: selectors, props: props})
	}

	if len(t.global) == 0 {
		return nil, fmt.Errorf("no global settings found")
	}
	return t, nil
}

// variableSettings maps each editor variable to a global tmTheme setting and
// the value used when the theme does not set it.
var variableSettings = []struct {
	variable string
	setting  string
	fallback string
}{
	{"syntax-text-color", "foreground", "#ffffff"},
	{"syntax-cursor-color", "caret", "@syntax-text-color"},
	{"syntax-selection-color", "selection", "rgba(128, 128, 128, 0.4)"},
	{"syntax-selection-flash-color", "selection", "@syntax-selection-color"},
	{"syntax-background-color", "background", "#000000"},
	{"syntax-wrap-guide-color", "invisibles", "rgba(128, 128, 128, 0.3)"},
	{"syntax-indent-guide-color", "invisibles", "rgba(128, 128, 128, 0.3)"},
	{"syntax-invisible-character-color", "invisibles", "rgba(128, 128, 128, 0.3)"},
	{"syntax-result-marker-color", "findHighlight", "@syntax-selection-color"},
	{"syntax-result-marker-color-selected", "caret", "@syntax-cursor-color"},
	{"syntax-gutter-text-color", "foreground", "@syntax-text-color"},
	{"syntax-gutter-text-color-selected", "foreground", "@syntax-text-color"},
	{"syntax-gutter-background-color", "background", "@syntax-background-color"},
	{"syntax-gutter-background-color-selected", "lineHighlight", "@syntax-background-color"},
}

// Fixed git diff colors; tmThemes have no equivalent settings.
var diffVariables = []cssProperty{
	{"syntax-color-renamed", "#96CBFE"},
	{"syntax-color-added", "#A8FF60"},
	{"syntax-color-modified", "#E9C062"},
	{"syntax-color-removed", "#CC6666"},
}

func (t *textMateTheme) syntaxVariables() string {
	var b strings.Builder
	fmt.Fprintf(&b, "// %s syntax variables, converted from a TextMate theme.\n\n", t.name)

	for _, v := range variableSettings {
		value, ok := t.global[v.setting]
		if !ok {
			value = v.fallback
		}
		fmt.Fprintf(&b, "@%s: %s;\n", v.variable, value)
	}

	b.WriteString("\n")
	for _, p := range diffVariables {
		fmt.Fprintf(&b, "@%s: %s;\n", p.name, p.value)
	}
	return b.String()
}

func (t *textMateTheme) baseStyles() string {
	var b strings.Builder
	b.WriteString("@import \"syntax-variables\";\n\n")

	b.WriteString("atom-text-editor {\n")
	b.WriteString("  background-color: @syntax-background-color;\n")
	b.WriteString("  color: @syntax-text-color;\n")
	b.WriteString("}\n\n")

	b.WriteString("atom-text-editor .gutter {\n")
	b.WriteString("  background-color: @syntax-gutter-background-color;\n")
	b.WriteString("  color: @syntax-gutter-text-color;\n")
	b.WriteString("}\n\n")

	b.WriteString("atom-text-editor .invisible-character {\n")
	b.WriteString("  color: @syntax-invisible-character-color;\n")
	b.WriteString("}\n\n")

	b.WriteString("atom-text-editor .indent-guide {\n")
	b.WriteString("  color: @syntax-indent-guide-color;\n")
	b.WriteString("}\n\n")

	b.WriteString("atom-text-editor .wrap-guide {\n")
	b.WriteString("  background-color: @syntax-wrap-guide-color;\n")
	b.WriteString("}\n\n")

	if lineHighlight, ok := t.global["lineHighlight"]; ok {
		b.WriteString("atom-text-editor .line.cursor-line {\n")
		fmt.Fprintf(&b, "  background-color: %s;\n", lineHighlight)
		b.WriteString("}\n\n")
	}

	b.WriteString("atom-text-editor .cursor {\n")
	b.WriteString("  color: @syntax-cursor-color;\n")
	b.WriteString("}\n\n")

	b.WriteString("atom-text-editor .selection .region {\n")
	b.WriteString("  background-color: @syntax-selection-color;\n")
	b.WriteString("}\n")

	for _, s := range t.scoped {
		b.WriteString("\n")
		if s.name != "" {
			fmt.Fprintf(&b, "// %s\n", s.name)
		}
		b.WriteString(strings.Join(s.selectors, ",\n"))
		b.WriteString(" {\n")
		for _, p := range s.props {
			fmt.Fprintf(&b, "  %s: %s;\n", p.name, p.value)
		}
		b.WriteString("}\n")
	}

	return b.String()
}

// styleProperties turns tmTheme scope settings into CSS properties in a
// stable order.
func styleProperties(values map[string]any) []cssProperty {
	var props []cssProperty

	if fg, ok := values["foreground"].(string); ok && fg != "" {
		props = append(props, cssProperty{"color", translateColor(fg)})
	}
	if bg, ok := values["background"].(string); ok && bg != "" {
		props = append(props, cssProperty{"background-color", translateColor(bg)})
	}
	if style, ok := values["fontStyle"].(string); ok {
		for _, word := range strings.Fields(style) {
			switch word {
			case "italic":
				props = append(props, cssProperty{"font-style", "italic"})
			case "bold":
				props = append(props, cssProperty{"font-weight", "bold"})
			case "underline":
				props = append(props, cssProperty{"text-decoration", "underline"})
			}
		}
	}

	return props
}

// scopeSelectorsToCSS converts a TextMate scope selector list such as
// "string, meta.tag entity" into editor CSS selectors. Selectors using
// exclusions or grouping have no CSS equivalent and are dropped.
func scopeSelectorsToCSS(scope string) []string {
	var out []string

	for _, sel := range strings.Split(scope, ",") {
		sel = strings.TrimSpace(sel)
		if sel == "" || strings.ContainsAny(sel, "()|&") || strings.Contains(sel, " - ") || strings.HasPrefix(sel, "-") {
			continue
		}

		var parts []string
		for _, scopeName := range strings.Fields(sel) {
			var classes strings.Builder
			for _, segment := range strings.Split(scopeName, ".") {
				if segment == "" {
					continue
				}
				classes.WriteString(".syntax--")
				classes.WriteString(segment)
			}
			if classes.Len() > 0 {
				parts = append(parts, classes.String())
			}
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, " "))
		}
	}

	return out
}

// translateColor converts #RRGGBBAA to rgba(); other values pass through.
func translateColor(color string) string {
	color = strings.TrimSpace(color)
	if len(color) != 9 || color[0] != '#' {
		return color
	}

	var rgba [4]uint64
	for i := range rgba {
		n, err := strconv.ParseUint(color[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return color
		}
		rgba[i] = n
	}

	alpha := strconv.FormatFloat(float64(rgba[3])/255, 'f', 2, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgba[0], rgba[1], rgba[2], alpha)
}
