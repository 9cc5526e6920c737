package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkginit/cli/internal/config"
	oerrors "github.com/pkginit/cli/internal/errors"
	"github.com/pkginit/cli/internal/generator"
	"github.com/pkginit/cli/internal/output"
	"github.com/pkginit/cli/internal/target"
	"github.com/pkginit/cli/internal/templates"
)

// initFlags holds the flags of the init command.
type initFlags struct {
	pkg      string
	theme    string
	language string
	syntax   string
	convert  string
	template string
	author   string
	output   string
}

// NewInitCmd creates the init command.
func NewInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var flags initFlags

	c := &cobra.Command{
		Use:   "init",
		Short: "Generate a package, theme or language package",
		Long: `Generate a package, syntax theme or language grammar package from a
template. Exactly one of --package, --theme or --language selects what is
generated and where.

Name placeholders are filled from the destination directory name. Files
that already exist in the destination are left untouched.

Examples:
  # Create a CoffeeScript package in ./my-package
  pkginit init --package my-package

  # Create a JavaScript package
  pkginit init -p my-package --syntax javascript

  # Convert a TextMate theme into a syntax theme
  pkginit init --theme night-owl-syntax --convert ~/Downloads/NightOwl.tmTheme

  # Convert a local TextMate bundle into a package
  pkginit init --package language-go --convert ./Go.tmbundle

  # Create ./language-toml with the name "toml"
  pkginit init --language toml

  # Use your own template directory
  pkginit init --package my-package --template ~/templates/react-package`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, flags)
		},
	}

	c.Flags().StringVarP(&flags.pkg, "package", "p", "", "Generate a package in this directory")
	c.Flags().StringVarP(&flags.theme, "theme", "t", "", "Generate a syntax theme in this directory")
	c.Flags().StringVarP(&flags.language, "language", "l", "", "Generate a language package in language-<name>")
	c.Flags().StringVarP(&flags.syntax, "syntax", "s", "",
		fmt.Sprintf("Package syntax (%s) (env: PKGINIT_SYNTAX)", strings.Join(templates.Syntaxes(), ", ")))
	c.Flags().StringVarP(&flags.convert, "convert", "c", "",
		"TextMate bundle directory (package) or .tmTheme file or URL (theme) to convert")
	c.Flags().StringVar(&flags.template, "template", "",
		"Template directory, or the name of a template in the user templates directory")
	c.Flags().StringVar(&flags.author, "author", "", "Package author (env: PKGINIT_AUTHOR, GITHUB_USER)")
	c.Flags().StringVarP(&flags.output, "output", "o", "text",
		fmt.Sprintf("Output format (%s)", strings.Join(output.ValidFormats(), ", ")))

	return c
}

// initReport is the structured form of an init run.
type initReport struct {
	Mode target.Mode `json:"mode"`
	templates.Result
}

func runInit(c *cobra.Command, cfg *config.GlobalConfig, flags initFlags) error {
	format, ok := output.ParseOutputFormat(flags.output)
	if !ok {
		return validationExit(
			fmt.Sprintf("unknown output format %q", flags.output),
			"--output",
			fmt.Sprintf("Valid formats: %s", strings.Join(output.ValidFormats(), ", ")),
		)
	}

	mode, destination, err := selectMode(c, flags)
	if err != nil {
		return err
	}

	fileCfg := cfg.FileConfig()
	author := config.ResolveAuthor(config.ResolveAuthorOptions{
		FlagValue:   flags.author,
		ConfigValue: fileCfg.Author,
	})
	syntax := config.ResolveSyntax(config.ResolveSyntaxOptions{
		FlagValue:    flags.syntax,
		ConfigValue:  fileCfg.Syntax,
		DefaultValue: templates.DefaultSyntax,
	})
	config.LogResolvedValues(author, syntax)

	templatePath, err := resolveTemplateFlag(flags.template)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitGeneralError)
	}

	gen := generator.New(generator.Options{Author: author.Value})
	req := generator.Request{
		Destination: destination,
		Template:    templatePath,
		Convert:     flags.convert,
		Syntax:      syntax.Value,
	}

	ctx := c.Context()
	var result *templates.Result
	switch mode {
	case target.ModeTheme:
		result, err = gen.InitTheme(ctx, req)
	case target.ModeLanguage:
		result, err = gen.InitLanguage(ctx, req)
	default:
		result, err = gen.InitPackage(ctx, req)
	}
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	w := c.OutOrStdout()
	if format != output.FormatText {
		return output.WriteStructured(w, format, initReport{Mode: mode, Result: *result})
	}
	printInitResult(w, mode, result)
	return nil
}

// selectMode returns the mode and destination of the single mode flag
// given. A flag given with an empty value still selects its mode; the
// generator reports the missing path.
func selectMode(c *cobra.Command, flags initFlags) (target.Mode, string, error) {
	candidates := []struct {
		mode  target.Mode
		value string
	}{
		{target.ModePackage, flags.pkg},
		{target.ModeTheme, flags.theme},
		{target.ModeLanguage, flags.language},
	}

	var selected []target.Mode
	var destination string
	for _, cand := range candidates {
		if c.Flags().Changed(string(cand.mode)) {
			selected = append(selected, cand.mode)
			destination = cand.value
		}
	}

	switch len(selected) {
	case 1:
		return selected[0], destination, nil
	case 0:
		return "", "", validationExit(
			"You must specify either --package, --theme or --language to `pkginit init`",
			"",
			"Run 'pkginit init --help' for examples",
		)
	default:
		return "", "", validationExit(
			"only one of --package, --theme or --language may be given",
			"",
			"Run pkginit init once per package",
		)
	}
}

// resolveTemplateFlag returns the template directory for value. A path that
// exists is used as given; otherwise a bare name is looked up in the user
// templates directory.
func resolveTemplateFlag(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	expanded, err := config.ExpandPath(value)
	if err != nil {
		return "", fmt.Errorf("expanding template path: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return expanded, nil
	}

	userPath, err := config.UserTemplatePath(expanded)
	if err != nil {
		return "", fmt.Errorf("looking up user template: %w", err)
	}
	if userPath != "" {
		output.Debug("using user template", "name", value, "path", userPath)
		return userPath, nil
	}
	return expanded, nil
}

func printInitResult(w io.Writer, mode target.Mode, result *templates.Result) {
	root := filepath.Base(result.TargetRoot)

	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Generated %s %s in %s",
		mode, output.StyleNoun.Render(root), result.TargetRoot)))

	entries := make(map[string]string, len(result.Created)+len(result.Skipped))
	for _, p := range result.Created {
		entries[p] = ""
	}
	for _, p := range result.Skipped {
		entries[p] = output.StatusSkipped
	}
	if tree := output.RenderFileTree(root+"/", entries); tree != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, tree)
	}

	if len(result.Removed) > 0 || len(result.Ignored) > 0 {
		fmt.Fprintln(w)
	}
	removed := append([]string(nil), result.Removed...)
	sort.Strings(removed)
	for _, p := range removed {
		fmt.Fprintln(w, output.FormatEntryLine(p, output.StatusRemoved))
	}
	for _, p := range result.Ignored {
		fmt.Fprintln(w, output.FormatEntryLine(p, output.StatusIgnored))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, output.StyleSummary.Render(fmt.Sprintf("%d created, %d skipped", len(result.Created), len(result.Skipped))))
}

// validationExit builds an ExitError for an invalid invocation.
func validationExit(message, location, hint string) error {
	return oerrors.NewExitError(
		oerrors.NewValidationError(message, location, hint),
		oerrors.ExitValidationError,
	)
}
