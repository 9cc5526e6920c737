// Package config provides configuration loading and management.
package config

// Built-in defaults.
const (
	// DefaultAuthor is used when no author is configured anywhere.
	DefaultAuthor = "atom"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the pkginit configuration file.
// Loaded from ~/.pkginit/config.yaml.
type Config struct {
	// Author fills __package-author__ placeholders.
	// Env: PKGINIT_AUTHOR, then GITHUB_USER. Default: "atom".
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Syntax is the default package syntax when --syntax is omitted.
	// Env: PKGINIT_SYNTAX. Default: "coffeescript".
	Syntax string `json:"syntax,omitempty" yaml:"syntax,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `pkginit config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Author: DefaultAuthor,
		Syntax: "coffeescript",
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// WithDefaults returns a copy of c with empty fields set to defaults.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.Author == "" {
		out.Author = def.Author
	}
	if out.Syntax == "" {
		out.Syntax = def.Syntax
	}
	if out.Log.Timestamps == nil {
		out.Log.Timestamps = def.Log.Timestamps
	}
	return &out
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration file, nil if loading failed.
	Config *Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// Verbose mirrors the --verbose flag.
	Verbose bool
}

// FileConfig returns the loaded file config or an empty one.
func (g *GlobalConfig) FileConfig() *Config {
	if g == nil || g.Config == nil {
		return &Config{}
	}
	return g.Config
}
