package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkginit/cli/internal/config"
	"github.com/pkginit/cli/internal/output"
	"github.com/pkginit/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *config.GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show pkginit version information.

Displays the CLI version, commit, build date and Go version.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, ok := output.ParseOutputFormat(outputFlag)
			if !ok {
				return validationExit(
					fmt.Sprintf("unknown output format %q", outputFlag),
					"--output",
					fmt.Sprintf("Valid formats: %s", strings.Join(output.ValidFormats(), ", ")),
				)
			}

			info := version.GetInfo()
			if format != output.FormatText {
				return output.WriteStructured(c.OutOrStdout(), format, info)
			}
			fmt.Fprintln(c.OutOrStdout(), info.String())
			return nil
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "text",
		fmt.Sprintf("Output format (%s)", strings.Join(output.ValidFormats(), ", ")))

	return c
}
