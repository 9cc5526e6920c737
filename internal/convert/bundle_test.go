package convert

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkginit/cli/internal/testutil"
)

const sampleGrammar = `<plist version="1.0"><dict>
	<key>name</key><string>Go</string>
	<key>scopeName</key><string>source.go</string>
	<key>fileTypes</key><array><string>go</string></array>
	<key>uuid</key><string>33100200-8916-4F78-8522-4362628C6889</string>
	<key>patterns</key><array>
		<dict><key>match</key><string>//.*$</string><key>name</key><string>comment.line.double-slash.go</string></dict>
	</array>
</dict></plist>`

const sampleSnippet = `<plist version="1.0"><dict>
	<key>name</key><string>func</string>
	<key>tabTrigger</key><string>func</string>
	<key>content</key><string>func ${1:name}() {
	$0
}</string>
	<key>scope</key><string>source.go</string>
</dict></plist>`

const sampleSnippetNoTrigger = `<plist version="1.0"><dict>
	<key>name</key><string>menu only</string>
	<key>content</key><string>x</string>
</dict></plist>`

const samplePreferences = `<plist version="1.0"><dict>
	<key>name</key><string>Comments</string>
	<key>scope</key><string>source.go</string>
	<key>settings</key><dict>
		<key>shellVariables</key><array>
			<dict><key>name</key><string>TM_COMMENT_START</string><key>value</key><string>// </string></dict>
			<dict><key>name</key><string>TM_OTHER</string><key>value</key><string>x</string></dict>
		</array>
		<key>increaseIndentPattern</key><string>\{$</string>
	</dict>
</dict></plist>`

const sampleSymbolPreferences = `<plist version="1.0"><dict>
	<key>scope</key><string>source.go</string>
	<key>settings</key><dict><key>showInSymbolList</key><integer>1</integer></dict>
</dict></plist>`

func writeBundle(t *testing.T, fsys afero.Fs) {
	t.Helper()
	files := map[string]string{
		"/bundles/Go.tmbundle/Syntaxes/Go.tmLanguage":                sampleGrammar,
		"/bundles/Go.tmbundle/Snippets/func.tmSnippet":               sampleSnippet,
		"/bundles/Go.tmbundle/Snippets/menu.tmSnippet":               sampleSnippetNoTrigger,
		"/bundles/Go.tmbundle/Snippets/notes.txt":                    "ignored",
		"/bundles/Go.tmbundle/Preferences/Comments.tmPreferences":    samplePreferences,
		"/bundles/Go.tmbundle/Preferences/Symbol List.tmPreferences": sampleSymbolPreferences,
	}
	testutil.WriteTree(t, fsys, "/", files)
}

func readJSON(t *testing.T, fsys afero.Fs, p string) map[string]any {
	t.Helper()
	data, err := afero.ReadFile(fsys, p)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestPackageConverter_Convert(t *testing.T) {
	sources := afero.NewMemMapFs()
	target := afero.NewMemMapFs()
	writeBundle(t, sources)

	c := NewPackageConverter("/bundles/Go.tmbundle", "/out/language-go", sources, target)
	require.NoError(t, c.Convert(context.Background()))

	grammar := readJSON(t, target, "/out/language-go/grammars/go.json")
	assert.Equal(t, "source.go", grammar["scopeName"])
	assert.Equal(t, []any{"go"}, grammar["fileTypes"])
	assert.NotContains(t, grammar, "uuid")

	snippets := readJSON(t, target, "/out/language-go/snippets/language-go.json")
	goSnippets, ok := snippets[".source.go"].(map[string]any)
	require.True(t, ok)
	fn, ok := goSnippets["func"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "func", fn["prefix"])
	assert.Equal(t, "func ${1:name}() {\n\t$0\n}", fn["body"])
	assert.NotContains(t, snippets, "*", "snippets without a trigger are dropped")

	settings := readJSON(t, target, "/out/language-go/settings/comments.json")
	editor := settings[".source.go"].(map[string]any)["editor"].(map[string]any)
	assert.Equal(t, "// ", editor["commentStart"])
	assert.Equal(t, `\{$`, editor["increaseIndentPattern"])
	assert.NotContains(t, editor, "TM_OTHER")

	// Preferences without editor settings produce no file.
	exists, err := afero.Exists(target, "/out/language-go/settings/symbol-list.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPackageConverter_Errors(t *testing.T) {
	sources := afero.NewMemMapFs()
	require.NoError(t, sources.MkdirAll("/empty.tmbundle", 0o755))
	require.NoError(t, afero.WriteFile(sources, "/file.tmbundle", []byte("x"), 0o644))
	require.NoError(t, sources.MkdirAll("/broken.tmbundle/Syntaxes", 0o755))
	require.NoError(t, afero.WriteFile(sources, "/broken.tmbundle/Syntaxes/x.tmLanguage", []byte("<plist><dict><key>a</key></dict></plist>"), 0o644))

	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"https url", "https://github.com/textmate/go.tmbundle", "only local bundle directories"},
		{"git remote", "git@github.com:textmate/go.tmbundle.git", "only local bundle directories"},
		{"missing", "/missing.tmbundle", "reading bundle"},
		{"not a directory", "/file.tmbundle", "not a directory"},
		{"empty bundle", "/empty.tmbundle", "no grammars, snippets or preferences"},
		{"broken plist", "/broken.tmbundle", "has no value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPackageConverter(tt.source, "/out", sources, afero.NewMemMapFs())
			err := c.Convert(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestPackageConverter_Cancelled(t *testing.T) {
	sources := afero.NewMemMapFs()
	writeBundle(t, sources)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewPackageConverter("/bundles/Go.tmbundle", "/out", sources, afero.NewMemMapFs())
	assert.ErrorIs(t, c.Convert(ctx), context.Canceled)
}

func TestBundleName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"/bundles/Go.tmbundle", "go"},
		{"/bundles/Go.tmbundle/", "go"},
		{"language-ruby", "ruby"},
		{"Objective C.tmbundle", "objective-c"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, BundleName(tt.source))
		})
	}
}

func TestScopeToSelectors(t *testing.T) {
	assert.Equal(t, []string{".source.go"}, scopeToSelectors("source.go"))
	assert.Equal(t, []string{".source.c-sharp", ".text.html"}, scopeToSelectors("source.c-sharp, text.html"))
	assert.Equal(t, []string{"*"}, scopeToSelectors(""))
	assert.Equal(t, []string{"*"}, scopeToSelectors("source.go string"))
}
