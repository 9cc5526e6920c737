package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pkginit/cli/internal/output"
	"github.com/pkginit/cli/internal/plist"
)

// Output directories written by the bundle converter.
const (
	GrammarsDir = "grammars"
	SnippetsDir = "snippets"
	SettingsDir = "settings"
)

// bundle directory names, in the spellings TextMate bundles use.
var (
	syntaxDirs      = []string{"Syntaxes", "syntaxes"}
	snippetDirs     = []string{"Snippets", "snippets"}
	preferenceDirs  = []string{"Preferences", "preferences"}
	syntaxExts      = []string{".tmLanguage", ".plist", ".tmlanguage"}
	snippetExts     = []string{".tmSnippet", ".plist"}
	preferenceExts  = []string{".tmPreferences", ".plist"}
	bundleExtension = ".tmbundle"
)

// PackageConverter converts a local TextMate bundle directory into
// grammars, snippets and settings.
type PackageConverter struct {
	// Source is the bundle directory.
	Source string

	// Destination is the package directory.
	Destination string

	// Sources reads the bundle.
	Sources afero.Fs

	// Target receives the converted files.
	Target afero.Fs
}

// NewPackageConverter creates a PackageConverter.
func NewPackageConverter(source, destination string, sources, target afero.Fs) *PackageConverter {
	return &PackageConverter{
		Source:      source,
		Destination: destination,
		Sources:     sources,
		Target:      target,
	}
}

// Convert writes grammars/<name>.json for every grammar,
// snippets/language-<bundle>.json for all snippets and settings/<name>.json
// for every preferences file that carries editor settings.
func (c *PackageConverter) Convert(ctx context.Context) error {
	if isRemote(c.Source) {
		return fmt.Errorf("bundle %s: only local bundle directories can be converted", c.Source)
	}

	info, err := c.Sources.Stat(c.Source)
	if err != nil {
		return fmt.Errorf("reading bundle: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("bundle %s: not a directory", c.Source)
	}

	log := output.PackageLogger(BundleName(c.Source))

	grammars, err := c.convertGrammars(ctx)
	if err != nil {
		return err
	}
	snippets, err := c.convertSnippets(ctx)
	if err != nil {
		return err
	}
	settings, err := c.convertPreferences(ctx)
	if err != nil {
		return err
	}

	if grammars+snippets+settings == 0 {
		return fmt.Errorf("bundle %s: no grammars, snippets or preferences found", c.Source)
	}

	log.Debug("converted bundle", "grammars", grammars, "snippets", snippets, "settings", settings)
	return nil
}

func (c *PackageConverter) convertGrammars(ctx context.Context) (int, error) {
	files, err := c.listFiles(syntaxDirs, syntaxExts)
	if err != nil {
		return 0, err
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		grammar, err := c.decode(f)
		if err != nil {
			return 0, err
		}
		// TextMate-only bookkeeping with no meaning in the editor.
		delete(grammar, "uuid")

		name := slug(stem(f))
		dest := filepath.Join(c.Destination, GrammarsDir, name+".json")
		if err := writeJSON(c.Target, dest, grammar); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

func (c *PackageConverter) convertSnippets(ctx context.Context) (int, error) {
	files, err := c.listFiles(snippetDirs, snippetExts)
	if err != nil {
		return 0, err
	}

	// selector -> snippet name -> snippet
	out := map[string]map[string]map[string]string{}
	count := 0

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		snippet, err := c.decode(f)
		if err != nil {
			return 0, err
		}

		prefix, _ := snippet["tabTrigger"].(string)
		body, _ := snippet["content"].(string)
		if prefix == "" || body == "" {
			continue
		}
		name, _ := snippet["name"].(string)
		if name == "" {
			name = stem(f)
		}
		scope, _ := snippet["scope"].(string)

		for _, selector := range scopeToSelectors(scope) {
			if out[selector] == nil {
				out[selector] = map[string]map[string]string{}
			}
			out[selector][name] = map[string]string{"prefix": prefix, "body": body}
		}
		count++
	}

	if count == 0 {
		return 0, nil
	}

	dest := filepath.Join(c.Destination, SnippetsDir, "language-"+BundleName(c.Source)+".json")
	if err := writeJSON(c.Target, dest, out); err != nil {
		return 0, err
	}
	return count, nil
}

// shellVariableSettings maps TextMate shell variables to editor settings.
var shellVariableSettings = map[string]string{
	"TM_COMMENT_START": "commentStart",
	"TM_COMMENT_END":   "commentEnd",
}

// indentSettings are copied verbatim into editor settings.
var indentSettings = []string{"increaseIndentPattern", "decreaseIndentPattern", "foldEndPattern"}

func (c *PackageConverter) convertPreferences(ctx context.Context) (int, error) {
	files, err := c.listFiles(preferenceDirs, preferenceExts)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		prefs, err := c.decode(f)
		if err != nil {
			return 0, err
		}

		values, _ := prefs["settings"].(map[string]any)
		editor := editorSettings(values)
		if len(editor) == 0 {
			continue
		}

		scope, _ := prefs["scope"].(string)
		out := map[string]any{}
		for _, selector := range scopeToSelectors(scope) {
			out[selector] = map[string]any{"editor": editor}
		}

		dest := filepath.Join(c.Destination, SettingsDir, slug(stem(f))+".json")
		if err := writeJSON(c.Target, dest, out); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func editorSettings(values map[string]any) map[string]string {
	editor := map[string]string{}

	if vars, ok := values["shellVariables"].([]any); ok {
		for _, raw := range vars {
			v, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			name, _ := v["name"].(string)
			value, _ := v["value"].(string)
			if key, ok := shellVariableSettings[name]; ok {
				editor[key] = value
			}
		}
	}

	for _, key := range indentSettings {
		if v, ok := values[key].(string); ok {
			editor[key] = v
		}
	}

	return editor
}

// listFiles returns the files with one of exts in the first of dirs that
// exists under the bundle, sorted by name.
func (c *PackageConverter) listFiles(dirs, exts []string) ([]string, error) {
	for _, dir := range dirs {
		p := filepath.Join(c.Source, dir)
		entries, err := afero.ReadDir(c.Sources, p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}

		var files []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			for _, ext := range exts {
				if strings.HasSuffix(e.Name(), ext) {
					files = append(files, filepath.Join(p, e.Name()))
					break
				}
			}
		}
		return files, nil
	}
	return nil, nil
}

func (c *PackageConverter) decode(p string) (map[string]any, error) {
	data, err := afero.ReadFile(c.Sources, p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	dict, err := plist.DecodeDict(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return dict, nil
}

// BundleName derives the package-facing bundle name from its directory,
// e.g. "Go.tmbundle" becomes "go".
func BundleName(source string) string {
	base := path.Base(filepath.ToSlash(filepath.Clean(source)))
	base = strings.TrimSuffix(base, bundleExtension)
	base = strings.TrimPrefix(base, "language-")
	return slug(base)
}

// slug lower-cases s and joins its words with dashes.
func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}

// scopeToSelectors turns a comma-separated TextMate scope list into
// editor selectors. An empty scope applies everywhere.
func scopeToSelectors(scope string) []string {
	var out []string
	for _, s := range strings.Split(scope, ",") {
		s = strings.TrimSpace(s)
		if s == "" || strings.ContainsAny(s, " ()|&") {
			continue
		}
		out = append(out, "."+s)
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
