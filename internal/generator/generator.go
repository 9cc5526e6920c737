// Package generator drives package, theme and language generation: it
// resolves the target, runs an optional conversion and materializes the
// selected template.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/pkginit/cli/internal/config"
	"github.com/pkginit/cli/internal/convert"
	oerrors "github.com/pkginit/cli/internal/errors"
	"github.com/pkginit/cli/internal/output"
	"github.com/pkginit/cli/internal/placeholder"
	"github.com/pkginit/cli/internal/target"
	"github.com/pkginit/cli/internal/templates"
)

// themeLeftovers are removed after a converted theme is materialized; the
// converted styles replace them.
var themeLeftovers = []string{"styles/colors.less", "LICENSE.md"}

// ConverterFactory builds a converter for source writing into destination.
type ConverterFactory func(source, destination string) convert.Converter

// Options configures a Generator. Zero fields get defaults in New.
type Options struct {
	// Author fills __package-author__. Default: "atom".
	Author string

	// Now supplies the generation year. Default: time.Now.
	Now func() time.Time

	// BuiltinFS holds the built-in template roots.
	BuiltinFS afero.Fs

	// TemplateFS reads --template override directories.
	TemplateFS afero.Fs

	// TargetFS receives generated packages.
	TargetFS afero.Fs

	// NewPackageConverter converts TextMate bundles.
	NewPackageConverter ConverterFactory

	// NewThemeConverter converts TextMate themes.
	NewThemeConverter ConverterFactory
}

// Request is a single generation request.
type Request struct {
	// Destination is the path given on the command line.
	Destination string

	// Template is an optional template directory overriding the built-in.
	Template string

	// Convert is an optional TextMate source to convert first.
	Convert string

	// Syntax selects the package template. Packages only.
	Syntax string
}

// Generator runs generation requests.
type Generator struct {
	opts Options
}

// New creates a Generator with defaults filled in.
func New(opts Options) *Generator {
	if opts.Author == "" {
		opts.Author = config.DefaultAuthor
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BuiltinFS == nil {
		opts.BuiltinFS = templates.BuiltinFS()
	}
	if opts.TemplateFS == nil {
		opts.TemplateFS = afero.NewOsFs()
	}
	if opts.TargetFS == nil {
		opts.TargetFS = afero.NewOsFs()
	}
	if opts.NewPackageConverter == nil {
		targetFS := opts.TargetFS
		opts.NewPackageConverter = func(source, destination string) convert.Converter {
			return convert.NewPackageConverter(source, destination, afero.NewOsFs(), targetFS)
		}
	}
	if opts.NewThemeConverter == nil {
		targetFS := opts.TargetFS
		opts.NewThemeConverter = func(source, destination string) convert.Converter {
			return convert.NewThemeConverter(source, destination, afero.NewOsFs(), targetFS)
		}
	}
	return &Generator{opts: opts}
}

// InitPackage generates a package at req.Destination.
func (g *Generator) InitPackage(ctx context.Context, req Request) (*templates.Result, error) {
	if req.Destination == "" {
		return nil, missingPathError(target.ModePackage)
	}

	if req.Convert != "" {
		return g.convertAndMaterialize(ctx, target.ModePackage, req, g.opts.NewPackageConverter, templates.Bundle)
	}

	syntax := req.Syntax
	if syntax == "" {
		syntax = templates.DefaultSyntax
	}
	if !templates.IsSupportedSyntax(syntax) {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("You must specify one of %s after the --syntax argument", strings.Join(templates.Syntaxes(), ", ")),
			"--syntax "+syntax,
			"",
		)
	}

	return g.materialize(target.ModePackage, req.Destination, req.Template, templates.PackageTemplate(syntax))
}

// InitTheme generates a syntax theme at req.Destination.
func (g *Generator) InitTheme(ctx context.Context, req Request) (*templates.Result, error) {
	if req.Destination == "" {
		return nil, missingPathError(target.ModeTheme)
	}

	if req.Convert != "" {
		result, err := g.convertAndMaterialize(ctx, target.ModeTheme, req, g.opts.NewThemeConverter, templates.Theme)
		if err != nil {
			return result, err
		}
		return result, g.removeLeftovers(result)
	}

	return g.materialize(target.ModeTheme, req.Destination, req.Template, templates.Theme)
}

// InitLanguage generates a language grammar package. The directory always
// carries the language- prefix and the name placeholders use the name
// without it.
func (g *Generator) InitLanguage(_ context.Context, req Request) (*templates.Result, error) {
	if req.Destination == "" {
		return nil, missingPathError(target.ModeLanguage)
	}

	if req.Convert != "" {
		output.Warn("conversion is not supported for languages, ignoring", "convert", req.Convert)
	}

	return g.materialize(target.ModeLanguage, req.Destination, req.Template, templates.Language)
}

// convertAndMaterialize runs the converter into the resolved target and
// then lays the fixed template root over it. Template overrides are not
// applied to converted packages.
func (g *Generator) convertAndMaterialize(ctx context.Context, mode target.Mode, req Request, factory ConverterFactory, root string) (*templates.Result, error) {
	tgt, err := g.resolve(req.Destination, mode)
	if err != nil {
		return nil, err
	}

	if req.Template != "" {
		output.Debug("template override ignored for conversion", "template", req.Template)
	}

	conv := factory(req.Convert, tgt.Path)
	err = output.RunWithSpinner(ctx, "Converting "+req.Convert, conv.Convert)
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrConversion, err, "converting "+req.Convert)
	}

	return g.run(g.opts.BuiltinFS, root, tgt)
}

// materialize resolves the target and materializes the override template
// if given, else the built-in root.
func (g *Generator) materialize(mode target.Mode, destination, override, builtin string) (*templates.Result, error) {
	tgt, err := g.resolve(destination, mode)
	if err != nil {
		return nil, err
	}

	if override == "" {
		return g.run(g.opts.BuiltinFS, builtin, tgt)
	}

	root, err := filepath.Abs(override)
	if err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrFilesystem, err, "resolving template "+override)
	}
	return g.run(g.opts.TemplateFS, root, tgt)
}

func (g *Generator) resolve(destination string, mode target.Mode) (target.Target, error) {
	tgt, err := target.Resolve(destination, mode)
	if err != nil {
		return target.Target{}, oerrors.WrapCause(oerrors.ErrFilesystem, err, "resolving destination")
	}
	output.Debug("resolved target", "mode", mode, "path", tgt.Path, "name", tgt.Name)
	return tgt, nil
}

func (g *Generator) run(source afero.Fs, root string, tgt target.Target) (*templates.Result, error) {
	m := templates.NewMaterializer(source, g.opts.TargetFS)
	return m.Materialize(root, templates.Request{
		TargetRoot: tgt.Path,
		Context: placeholder.Context{
			Name:   tgt.Name,
			Author: g.opts.Author,
			Year:   g.opts.Now().Year(),
		},
	})
}

// removeLeftovers deletes the theme template files a converted theme does
// not use. Paths that do not exist are not an error.
func (g *Generator) removeLeftovers(result *templates.Result) error {
	for _, rel := range themeLeftovers {
		p := filepath.Join(result.TargetRoot, filepath.FromSlash(rel))
		err := g.opts.TargetFS.Remove(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return oerrors.WrapCause(oerrors.ErrFilesystem, err, "removing "+p)
		}
		result.Removed = append(result.Removed, rel)
		result.Created = slices.DeleteFunc(result.Created, func(c string) bool { return c == rel })
		result.Skipped = slices.DeleteFunc(result.Skipped, func(s string) bool { return s == rel })
	}
	return nil
}

func missingPathError(mode target.Mode) error {
	return oerrors.NewValidationError(
		fmt.Sprintf("You must specify a path after the --%s argument", mode),
		"",
		fmt.Sprintf("Specify directory to create %s in using --%s", mode, mode),
	)
}
