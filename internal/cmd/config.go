package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkginit/cli/internal/config"
	"github.com/pkginit/cli/internal/output"
	"github.com/pkginit/cli/internal/templates"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the pkginit CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(cfg))
	c.AddCommand(NewConfigVetCmd(cfg))
	c.AddCommand(NewConfigShowCmd(cfg))

	return c
}

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolved configuration values",
		Long: `Show the values init would use and where each one comes from.

Sources, highest precedence first: flag, env, config, default.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			configPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
				FlagValue: c.Flag("config").Value.String(),
			})
			if err != nil {
				return err
			}

			fileCfg := cfg.FileConfig()
			values := []config.ResolvedValue{
				configPath,
				config.ResolveAuthor(config.ResolveAuthorOptions{ConfigValue: fileCfg.Author}),
				config.ResolveSyntax(config.ResolveSyntaxOptions{
					ConfigValue:  fileCfg.Syntax,
					DefaultValue: templates.DefaultSyntax,
				}),
			}

			tbl := output.NewTable("KEY", "VALUE", "SOURCE", "SHADOWED")
			for _, v := range values {
				tbl.Row(v.Key, v.Value, string(v.Source), formatShadowed(v.Shadowed))
			}
			fmt.Fprintln(c.OutOrStdout(), tbl.String())
			return nil
		},
	}
}

func formatShadowed(shadowed map[config.ConfigSource]string) string {
	if len(shadowed) == 0 {
		return ""
	}
	parts := make([]string, 0, len(shadowed))
	for source, value := range shadowed {
		parts = append(parts, fmt.Sprintf("%s=%s", source, value))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
