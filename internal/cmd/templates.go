package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkginit/cli/internal/config"
	"github.com/pkginit/cli/internal/output"
	"github.com/pkginit/cli/internal/templates"
)

// templateRow is one listed template.
type templateRow struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
	Default     bool   `json:"default"`
}

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd(_ *config.GlobalConfig) *cobra.Command {
	var outputFlag string

	c := &cobra.Command{
		Use:   "templates",
		Short: "List available templates",
		Long: `List the built-in templates and the templates found in the user
templates directory ($XDG_DATA_HOME/pkginit/templates).

A user template can be passed to 'pkginit init --template' by name.`,
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

			rows, err := collectTemplates()
			if err != nil {
				return err
			}

			if format != output.FormatText {
				return output.WriteStructured(c.OutOrStdout(), format, rows)
			}

			tbl := output.NewTable("NAME", "KIND", "SOURCE", "DESCRIPTION")
			for _, r := range rows {
				name := r.Name
				if r.Default {
					name += " (default)"
				}
				tbl.Row(name, r.Kind, r.Source, r.Description)
			}
			fmt.Fprintln(c.OutOrStdout(), tbl.String())
			return nil
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "text",
		fmt.Sprintf("Output format (%s)", strings.Join(output.ValidFormats(), ", ")))

	return c
}

// collectTemplates lists built-in templates followed by user templates.
func collectTemplates() ([]templateRow, error) {
	var rows []templateRow
	for _, t := range templates.List() {
		rows = append(rows, templateRow{
			Name:        t.Name,
			Kind:        string(t.Kind),
			Source:      "builtin",
			Description: t.Description,
			Default:     t.Default,
		})
	}

	userNames, err := config.ListUserTemplates()
	if err != nil {
		return nil, fmt.Errorf("listing user templates: %w", err)
	}
	for _, name := range userNames {
		rows = append(rows, templateRow{
			Name:   name,
			Kind:   "-",
			Source: "user",
		})
	}
	return rows, nil
}
