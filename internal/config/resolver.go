package config

import (
	"os"

	"github.com/pkginit/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue tracks a configuration value and where it came from.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// candidate is one step in a precedence chain.
type candidate struct {
	source ConfigSource
	value  string
}

// resolve picks the first non-empty candidate and records every later
// non-empty candidate as shadowed.
func resolve(key string, chain []candidate) ResolvedValue {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}

	for _, c := range chain {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		// Two env candidates may compete; keep the first shadowed one.
		if _, seen := result.Shadowed[c.source]; !seen {
			result.Shadowed[c.source] = c.value
		}
	}

	return result
}

// ResolveAuthorOptions contains options for author resolution.
type ResolveAuthorOptions struct {
	// FlagValue is the --author flag value (empty if not set).
	FlagValue string
	// ConfigValue is the author from the config file (empty if not set).
	ConfigValue string
}

// ResolveAuthor resolves the package author using precedence:
// (1) --author flag, (2) PKGINIT_AUTHOR env, (3) GITHUB_USER env,
// (4) config.author, (5) "atom".
func ResolveAuthor(opts ResolveAuthorOptions) ResolvedValue {
	return resolve("author", []candidate{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, os.Getenv("PKGINIT_AUTHOR")},
		{SourceEnv, os.Getenv("GITHUB_USER")},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, DefaultAuthor},
	})
}

// ResolveSyntaxOptions contains options for syntax resolution.
type ResolveSyntaxOptions struct {
	// FlagValue is the --syntax flag value (empty if not set).
	FlagValue string
	// ConfigValue is the syntax from the loaded config (empty if not set).
	// The loader already folds PKGINIT_SYNTAX into it.
	ConfigValue string
	// DefaultValue is the built-in default syntax.
	DefaultValue string
}

// ResolveSyntax resolves the package syntax using precedence:
// (1) --syntax flag, (2) PKGINIT_SYNTAX env or config.syntax, (3) default.
func ResolveSyntax(opts ResolveSyntaxOptions) ResolvedValue {
	return resolve("syntax", []candidate{
		{SourceFlag, opts.FlagValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	})
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) PKGINIT_CONFIG env, (3) ~/.pkginit/config.yaml.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{Key: "config"}, err
	}

	return resolve("config", []candidate{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, os.Getenv("PKGINIT_CONFIG")},
		{SourceDefault, paths.ConfigFile},
	}), nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
