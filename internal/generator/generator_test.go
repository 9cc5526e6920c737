package generator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkginit/cli/internal/convert"
	oerrors "github.com/pkginit/cli/internal/errors"
	"github.com/pkginit/cli/internal/templates"
	"github.com/pkginit/cli/internal/testutil"
)

// converterFunc adapts a function to convert.Converter.
type converterFunc func(ctx context.Context) error

func (f converterFunc) Convert(ctx context.Context) error { return f(ctx) }

func fixedNow() time.Time {
	return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func newTestGenerator(t *testing.T, target afero.Fs) *Generator {
	t.Helper()
	return New(Options{
		Author:     "alice",
		Now:        fixedNow,
		TargetFS:   target,
		TemplateFS: afero.NewMemMapFs(),
		NewPackageConverter: func(source, destination string) convert.Converter {
			return converterFunc(func(context.Context) error {
				t.Fatalf("unexpected package conversion of %s", source)
				return nil
			})
		},
		NewThemeConverter: func(source, destination string) convert.Converter {
			return converterFunc(func(context.Context) error {
				t.Fatalf("unexpected theme conversion of %s", source)
				return nil
			})
		},
	})
}

func writeConverted(fsys afero.Fs, p, content string) error {
	if err := fsys.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, p, []byte(content), 0o644)
}

func TestInitPackage_Builtin(t *testing.T) {
	target := afero.NewMemMapFs()
	g := newTestGenerator(t, target)

	result, err := g.InitPackage(context.Background(), Request{Destination: "/work/CoolThing"})
	require.NoError(t, err)

	assert.Equal(t, templates.PackageCoffeeScript, result.Template)
	assert.Equal(t, filepath.FromSlash("/work/CoolThing"), result.TargetRoot)
	assert.Contains(t, testutil.ReadFile(t, target, "/work/CoolThing/lib/cool-thing.coffee"), "module.exports = CoolThing =")
	assert.Contains(t, testutil.ReadFile(t, target, "/work/CoolThing/LICENSE.md"), "Copyright (c) 2024 alice")
	assert.Contains(t, testutil.ReadFile(t, target, "/work/CoolThing/package.json"), `"name": "cool-thing"`)
}

func TestInitPackage_Syntax(t *testing.T) {
	target := afero.NewMemMapFs()
	g := newTestGenerator(t, target)

	result, err := g.InitPackage(context.Background(), Request{Destination: "/work/my-pkg", Syntax: "javascript"})
	require.NoError(t, err)

	assert.Equal(t, templates.PackageJavaScript, result.Template)
	assert.Contains(t, testutil.ReadFile(t, target, "/work/my-pkg/lib/my-pkg.js"), "import MyPkgView from './my-pkg-view';")
}

func TestInitPackage_UnsupportedSyntax(t *testing.T) {
	target := afero.NewMemMapFs()
	g := newTestGenerator(t, target)

	_, err := g.InitPackage(context.Background(), Request{Destination: "/work/pkg", Syntax: "typescript"})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
	assert.Contains(t, err.Error(), "You must specify one of coffeescript, javascript after the --syntax argument")

	testutil.AssertMissing(t, target, "/work/pkg")
}

func TestInitPackage_ReadOnlyTarget(t *testing.T) {
	target := afero.NewReadOnlyFs(afero.NewMemMapFs())
	g := newTestGenerator(t, target)

	_, err := g.InitPackage(context.Background(), Request{Destination: "/work/pkg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrFilesystem)
	assert.Equal(t, oerrors.ExitFilesystemError, oerrors.ExitCodeFromError(err))
}

func TestInit_MissingDestination(t *testing.T) {
	g := newTestGenerator(t, afero.NewMemMapFs())
	ctx := context.Background()

	tests := []struct {
		name    string
		run     func() (*templates.Result, error)
		wantMsg string
	}{
		{
			name:    "package",
			run:     func() (*templates.Result, error) { return g.InitPackage(ctx, Request{}) },
			wantMsg: "You must specify a path after the --package argument",
		},
		{
			name:    "package with conversion",
			run:     func() (*templates.Result, error) { return g.InitPackage(ctx, Request{Convert: "/bundle"}) },
			wantMsg: "You must specify a path after the --package argument",
		},
		{
			name:    "theme",
			run:     func() (*templates.Result, error) { return g.InitTheme(ctx, Request{}) },
			wantMsg: "You must specify a path after the --theme argument",
		},
		{
			name:    "language",
			run:     func() (*templates.Result, error) { return g.InitLanguage(ctx, Request{}) },
			wantMsg: "You must specify a path after the --language argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.run()
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, oerrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestInitPackage_TemplateOverride(t *testing.T) {
	target := afero.NewMemMapFs()
	tmplFS := afero.NewMemMapFs()
	require.NoError(t, tmplFS.MkdirAll("/tmpl", 0o755))
	require.NoError(t, afero.WriteFile(tmplFS, "/tmpl/__package-name__.js.template",
		[]byte(`module.exports = "__packageName__ by __package-author__ in __current_year__";`), 0o644))

	g := New(Options{Author: "alice", Now: fixedNow, TargetFS: target, TemplateFS: tmplFS})

	result, err := g.InitPackage(context.Background(), Request{Destination: "/work/CoolThing", Template: "/tmpl"})
	require.NoError(t, err)

	assert.Equal(t, []string{"cool-thing.js"}, result.Created)
	assert.Equal(t, `module.exports = "coolThing by alice in 2024";`, testutil.ReadFile(t, target, "/work/CoolThing/cool-thing.js"))
}

func TestInitPackage_MissingTemplateOverride(t *testing.T) {
	g := newTestGenerator(t, afero.NewMemMapFs())

	_, err := g.InitPackage(context.Background(), Request{Destination: "/work/pkg", Template: "/nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestInitPackage_Idempotent(t *testing.T) {
	target := afero.NewMemMapFs()
	g := newTestGenerator(t, target)
	req := Request{Destination: "/work/CoolThing"}

	first, err := g.InitPackage(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, first.Created)

	before := testutil.ReadFile(t, target, "/work/CoolThing/lib/cool-thing.js")

	second, err := g.InitPackage(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.ElementsMatch(t, first.Created, second.Skipped)
	assert.Equal(t, before, testutil.ReadFile(t, target, "/work/CoolThing/lib/cool-thing.js"))
}

func TestInitPackage_NonDestructive(t *testing.T) {
	target := afero.NewMemMapFs()
	require.NoError(t, target.MkdirAll("/work/CoolThing", 0o755))
	require.NoError(t, afero.WriteFile(target, "/work/CoolThing/README.md", []byte("mine"), 0o644))

	g := newTestGenerator(t, target)
	result, err := g.InitPackage(context.Background(), Request{Destination: "/work/CoolThing"})
	require.NoError(t, err)

	assert.Equal(t, "mine", testutil.ReadFile(t, target, "/work/CoolThing/README.md"))
	assert.Contains(t, result.Skipped, "README.md")
}

func TestInitPackage_DefaultAuthor(t *testing.T) {
	target := afero.NewMemMapFs()
	g := New(Options{Now: fixedNow, TargetFS: target})

	_, err := g.InitPackage(context.Background(), Request{Destination: "/work/pkg"})
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, target, "/work/pkg/LICENSE.md"), "Copyright (c) 2024 atom")
}

func TestInitPackage_Conversion(t *testing.T) {
	target := afero.NewMemMapFs()
	var gotSource, gotDestination string

	g := New(Options{
		Author:   "alice",
		Now:      fixedNow,
		TargetFS: target,
		NewPackageConverter: func(source, destination string) convert.Converter {
			gotSource, gotDestination = source, destination
			return converterFunc(func(context.Context) error {
				return writeConverted(target, filepath.Join(destination, "grammars", "go.json"), "{}")
			})
		},
	})

	// The override is ignored for conversions, so a missing one is fine.
	result, err := g.InitPackage(context.Background(), Request{
		Destination: "/work/language-go",
		Convert:     "/bundles/Go.tmbundle",
		Template:    "/nope",
		Syntax:      "not-checked",
	})
	require.NoError(t, err)

	assert.Equal(t, "/bundles/Go.tmbundle", gotSource)
	assert.Equal(t, filepath.FromSlash("/work/language-go"), gotDestination)
	assert.Equal(t, templates.Bundle, result.Template)
	assert.Equal(t, "{}", testutil.ReadFile(t, target, "/work/language-go/grammars/go.json"))
	assert.Contains(t, testutil.ReadFile(t, target, "/work/language-go/package.json"), `"name": "language-go"`)
}

func TestInitTheme_Builtin(t *testing.T) {
	target := afero.NewMemMapFs()
	g := newTestGenerator(t, target)

	result, err := g.InitTheme(context.Background(), Request{Destination: "/work/night-owl-syntax"})
	require.NoError(t, err)

	assert.Equal(t, templates.Theme, result.Template)
	assert.Contains(t, testutil.ReadFile(t, target, "/work/night-owl-syntax/index.less"), "Atom Syntax Theme: NightOwlSyntax")
	assert.Contains(t, result.Created, "styles/colors.less")
	assert.Contains(t, result.Created, "LICENSE.md")
	assert.Empty(t, result.Removed)
}

func TestInitTheme_ConversionRemovesLeftovers(t *testing.T) {
	target := afero.NewMemMapFs()

	// A license left from an earlier run is removed too.
	require.NoError(t, target.MkdirAll("/work/owl", 0o755))
	require.NoError(t, afero.WriteFile(target, "/work/owl/LICENSE.md", []byte("old"), 0o644))

	g := New(Options{
		Author:   "alice",
		Now:      fixedNow,
		TargetFS: target,
		NewThemeConverter: func(source, destination string) convert.Converter {
			return converterFunc(func(context.Context) error {
				return writeConverted(target, filepath.Join(destination, "styles", "base.less"), "converted")
			})
		},
	})

	result, err := g.InitTheme(context.Background(), Request{Destination: "/work/owl", Convert: "/themes/owl.tmTheme"})
	require.NoError(t, err)

	testutil.AssertMissing(t, target, "/work/owl/styles/colors.less")
	testutil.AssertMissing(t, target, "/work/owl/LICENSE.md")
	assert.Equal(t, "converted", testutil.ReadFile(t, target, "/work/owl/styles/base.less"))
	assert.Contains(t, testutil.ReadFile(t, target, "/work/owl/index.less"), `@import "./styles/base.less";`)

	assert.ElementsMatch(t, []string{"styles/colors.less", "LICENSE.md"}, result.Removed)
	assert.NotContains(t, result.Created, "styles/colors.less")
	assert.NotContains(t, result.Skipped, "LICENSE.md")
	assert.Contains(t, result.Skipped, "styles/base.less")
}

func TestInit_ConversionFailure(t *testing.T) {
	convErr := errors.New("bad plist")
	failing := func(source, destination string) convert.Converter {
		return converterFunc(func(context.Context) error { return convErr })
	}

	target := afero.NewMemMapFs()
	g := New(Options{
		TargetFS:            target,
		NewPackageConverter: failing,
		NewThemeConverter:   failing,
	})

	_, err := g.InitTheme(context.Background(), Request{Destination: "/work/theme", Convert: "/x.tmTheme"})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrConversion)
	assert.ErrorIs(t, err, convErr)

	_, err = g.InitPackage(context.Background(), Request{Destination: "/work/pkg", Convert: "/x.tmbundle"})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrConversion)

	// Nothing is materialized after a failed conversion.
	testutil.AssertMissing(t, target, "/work/theme")
	testutil.AssertMissing(t, target, "/work/pkg")
}

func TestInitLanguage(t *testing.T) {
	for _, dest := range []string{"/work/foo", "/work/language-foo"} {
		t.Run(dest, func(t *testing.T) {
			target := afero.NewMemMapFs()
			g := newTestGenerator(t, target)

			// Conversion is not supported and must not run.
			result, err := g.InitLanguage(context.Background(), Request{Destination: dest, Convert: "/bundle"})
			require.NoError(t, err)

			assert.Equal(t, filepath.FromSlash("/work/language-foo"), result.TargetRoot)
			assert.Contains(t, result.Created, "grammars/foo.cson")
			assert.Contains(t, testutil.ReadFile(t, target, "/work/language-foo/package.json"), `"name": "language-foo"`)
			assert.Contains(t, testutil.ReadFile(t, target, "/work/language-foo/grammars/foo.cson"), "'scopeName': 'source.foo'")
		})
	}
}
