package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkginit/cli/internal/config"
	oerrors "github.com/pkginit/cli/internal/errors"
	"github.com/pkginit/cli/internal/output"
	"github.com/pkginit/cli/internal/templates"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the pkginit configuration file",
		Long: `Validate the pkginit configuration file.

Unknown keys, an unsupported syntax and a blank or multi-line author are
reported. The file at ~/.pkginit/config.yaml is checked by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *config.GlobalConfig) error {
	expandedPath, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return oerrors.NewExitError(
			fmt.Errorf("config file not found: %s", expandedPath),
			oerrors.ExitNotFound,
		)
	}

	validator := config.NewValidator(templates.Syntaxes())
	vetted, err := validator.ValidateFile(expandedPath)
	if err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			stderr := c.ErrOrStderr()
			fmt.Fprintln(stderr, "Error: config validation failed")
			fmt.Fprintf(stderr, "  File: %s\n\n", expandedPath)
			for _, e := range validationErrs {
				fmt.Fprintf(stderr, "  %s: %s\n", e.Field, e.Message)
			}
			return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
		}
		return oerrors.NewExitError(fmt.Errorf("validating config: %w", err), oerrors.ExitValidationError)
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatVetCheck("Config file found", expandedPath))
	fmt.Fprintln(w, output.FormatVetCheck("Config file is valid", ""))
	if vetted.Syntax != "" {
		fmt.Fprintln(w, output.FormatVetCheck("Syntax supported", vetted.Syntax))
	}
	if vetted.Author != "" {
		fmt.Fprintln(w, output.FormatVetCheck("Author set", vetted.Author))
	}
	return nil
}
