package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pkginit/cli/internal/config"
	oerrors "github.com/pkginit/cli/internal/errors"
	"github.com/pkginit/cli/internal/output"
)

// configHeader is written above the generated config file.
const configHeader = `# pkginit configuration
#
# author: fills __package-author__ (overridden by --author, PKGINIT_AUTHOR
#         and GITHUB_USER)
# syntax: default package syntax (overridden by --syntax, PKGINIT_SYNTAX)

`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new pkginit configuration file",
		Long: `Create a new pkginit configuration file with default values.

The configuration file is created at ~/.pkginit/config.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runConfigInit(c *cobra.Command, cfg *config.GlobalConfig, force bool) error {
	expandedPath, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}

	if exists && !force {
		return oerrors.NewExitError(
			fmt.Errorf("config file already exists at %s (use --force to overwrite)", expandedPath),
			oerrors.ExitGeneralError,
		)
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o755); err != nil {
		return oerrors.NewExitError(
			fmt.Errorf("creating config directory: %w", err),
			oerrors.ExitFilesystemError,
		)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(expandedPath, data, 0o644); err != nil {
		return oerrors.NewExitError(
			fmt.Errorf("writing config file: %w", err),
			oerrors.ExitFilesystemError,
		)
	}

	output.Debug("config file written", "path", expandedPath, "force", force)
	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+expandedPath))
	return nil
}
