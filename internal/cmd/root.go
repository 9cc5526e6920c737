// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pkginit/cli/internal/config"
	"github.com/pkginit/cli/internal/output"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	config     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the pkginit CLI.
func NewRootCmd() *cobra.Command {
	var flags globalFlags
	cfg := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "pkginit",
		Short: "Generate packages, themes and language grammars from templates",
		Long: `pkginit scaffolds editor packages, syntax themes and language grammar
packages from directory-tree templates. Names, author and year are
substituted into file paths and contents; existing files are never
overwritten.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, cfg, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: PKGINIT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewInitCmd(cfg))
	rootCmd.AddCommand(NewTemplatesCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals resolves the config path, loads the config file and
// sets up logging.
func initializeGlobals(c *cobra.Command, cfg *config.GlobalConfig, flags globalFlags) error {
	configPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: flags.config,
	})
	if err != nil {
		return err
	}

	cfg.ConfigPath = configPath.Value
	cfg.Verbose = flags.verbose

	loaded, loadErr := config.NewLoader().Load(configPath.Value)
	if loadErr == nil {
		cfg.Config = loaded
	}

	// Build LogConfig with precedence: flag > config > default(true)
	logCfg := output.LogConfig{
		Verbose: flags.verbose,
	}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Config != nil && cfg.Config.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Config.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	// Don't fail here - commands that don't need the config still work.
	if loadErr != nil {
		output.Warn("could not load config file", "path", configPath.Value, "error", loadErr)
	}
	config.LogResolvedValues(configPath)

	return nil
}
